// =============================================================================
// Sales Analytics CLI - Validation Engine
// =============================================================================
//
// This module validates parsed transactions and applies the user-supplied
// filters. Validation runs in a fixed order:
//   1. Structural validity (positive quantities and prices, non-empty and
//      correctly prefixed identifiers)
//   2. Region filter (exact, case-sensitive match; survivors only)
//   3. Amount filter (inclusive bounds on Quantity × UnitPrice)
//
// ERROR HANDLING:
//   Invalid and filtered records are counted, never turned into errors.
//   The caller receives the surviving transactions together with a summary
//   of how many records each stage removed.
//
// =============================================================================

package validation

import (
	"log/slog"
	"strings"

	"salescli/internal/types"
)

// =============================================================================
// VALIDATOR
// =============================================================================

// Validator applies structural validation and optional filters to a set of
// parsed transactions.
type Validator struct {
	opts   types.FilterOptions
	logger *slog.Logger
}

// New creates a Validator with the given filter options.
// logger may be nil, in which case slog.Default() is used.
func New(opts types.FilterOptions, logger *slog.Logger) *Validator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Validator{opts: opts, logger: logger}
}

// Run validates and filters the transactions. The returned slice preserves
// input order. The summary records how many transactions each stage removed;
// its counters always satisfy:
//
//	TotalInput == Invalid + FilteredByRegion + FilteredByAmount + FinalCount
func (v *Validator) Run(txs []types.Transaction) ([]types.Transaction, types.FilterSummary) {
	summary := types.FilterSummary{TotalInput: len(txs)}

	// Stage 1: structural validity.
	valid := make([]types.Transaction, 0, len(txs))
	for _, tx := range txs {
		if !isStructurallyValid(tx) {
			summary.Invalid++
			v.logger.Debug("rejecting invalid transaction",
				"transaction_id", tx.TransactionID)
			continue
		}
		valid = append(valid, tx)
	}

	// Stage 2: region filter, applied only to structurally valid records.
	if v.opts.Region != "" {
		filtered := valid[:0]
		for _, tx := range valid {
			if tx.Region != v.opts.Region {
				summary.FilteredByRegion++
				continue
			}
			filtered = append(filtered, tx)
		}
		valid = filtered
	}

	// Stage 3: amount filter on survivors of the region filter.
	if v.opts.HasAmountBounds() {
		filtered := valid[:0]
		for _, tx := range valid {
			if !v.amountInRange(tx) {
				summary.FilteredByAmount++
				continue
			}
			filtered = append(filtered, tx)
		}
		valid = filtered
	}

	summary.FinalCount = len(valid)
	return valid, summary
}

// amountInRange checks the transaction amount against the inclusive bounds.
func (v *Validator) amountInRange(tx types.Transaction) bool {
	amount := tx.Amount()
	if v.opts.MinAmount != nil && amount.LessThan(*v.opts.MinAmount) {
		return false
	}
	if v.opts.MaxAmount != nil && amount.GreaterThan(*v.opts.MaxAmount) {
		return false
	}
	return true
}

// =============================================================================
// STRUCTURAL RULES
// =============================================================================

// isStructurallyValid checks the record-level business rules. A transaction
// failing any single rule is invalid; the rules are not reported
// individually because downstream consumers only need the count.
func isStructurallyValid(tx types.Transaction) bool {
	if tx.Quantity <= 0 {
		return false
	}
	if tx.UnitPrice.Sign() <= 0 {
		return false
	}
	if tx.CustomerID == "" || tx.Region == "" {
		return false
	}
	if !strings.HasPrefix(tx.TransactionID, "T") {
		return false
	}
	if !strings.HasPrefix(tx.ProductID, "P") {
		return false
	}
	if !strings.HasPrefix(tx.CustomerID, "C") {
		return false
	}
	return true
}
