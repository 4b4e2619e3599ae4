// =============================================================================
// Sales Analytics CLI - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - parser
//   - validation
//   - analytics
//   - enrichment
//   - report
//
// =============================================================================

package types

import "github.com/shopspring/decimal"

// =============================================================================
// TRANSACTION TYPES
// =============================================================================

// Transaction represents a single parsed sales line item.
// A Transaction is created once by the record parser and never mutated.
type Transaction struct {
	// TransactionID is the unique transaction identifier (expected to start with "T").
	TransactionID string

	// Date is an ISO-like YYYY-MM-DD date string. It is treated as an opaque
	// sortable value; no calendar validation is performed.
	Date string

	// ProductID is the product identifier (expected to start with "P").
	ProductID string

	// ProductName is the cleaned product name (embedded commas removed).
	ProductName string

	// Quantity is the number of units sold.
	Quantity int64

	// UnitPrice is the price per unit.
	UnitPrice decimal.Decimal

	// CustomerID is the customer identifier (expected to start with "C").
	CustomerID string

	// Region is the sales region the transaction belongs to.
	Region string
}

// Amount returns the transaction value (Quantity × UnitPrice).
// It is derived on demand and never stored.
func (t Transaction) Amount() decimal.Decimal {
	return t.UnitPrice.Mul(decimal.NewFromInt(t.Quantity))
}

// =============================================================================
// ENRICHMENT TYPES
// =============================================================================

// ProductMeta holds the product metadata obtained from the external catalog.
type ProductMeta struct {
	Title    string
	Category string
	Brand    string
	Rating   float64
}

// EnrichedTransaction is a Transaction augmented with catalog metadata.
// The API fields are nil when no catalog entry matched; APIMatch records
// whether the join succeeded. Created once by the enricher, never mutated.
type EnrichedTransaction struct {
	Transaction

	APICategory *string
	APIBrand    *string
	APIRating   *float64
	APIMatch    bool
}

// =============================================================================
// FILTERING TYPES
// =============================================================================

// FilterOptions holds the optional user-supplied filters applied after
// structural validation. A zero value means no filtering at all.
type FilterOptions struct {
	// Region keeps only transactions with an exact, case-sensitive region
	// match. An empty string disables the region filter.
	Region string

	// MinAmount and MaxAmount bound the transaction amount (inclusive).
	// A nil pointer leaves that side of the range unenforced.
	MinAmount *decimal.Decimal
	MaxAmount *decimal.Decimal
}

// HasAmountBounds reports whether at least one amount bound is set.
func (f FilterOptions) HasAmountBounds() bool {
	return f.MinAmount != nil || f.MaxAmount != nil
}

// FilterSummary describes what happened to the input set during validation
// and filtering. The counters follow the fixed filter order: structural
// validity, then region, then amount.
type FilterSummary struct {
	TotalInput       int
	Invalid          int
	FilteredByRegion int
	FilteredByAmount int
	FinalCount       int
}
