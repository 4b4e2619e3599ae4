// =============================================================================
// Sales Analytics CLI - Transaction Enricher
// =============================================================================
//
// Joins validated transactions against the product catalog mapping. The join
// key is derived from the transaction's ProductID, not looked up directly:
// internal product IDs ("P101", "P2003") and catalog IDs (1..100) live in
// different ranges, so the numeric part of the product ID is folded into the
// catalog's ID space with a modulus.
//
// KEY DERIVATION:
//   1. Strip every non-digit character from the ProductID.
//   2. Parse the remaining digits as an integer.
//   3. Take the value modulo 100; a result of 0 maps to 100.
//   A ProductID with no digits at all yields no key and the transaction is
//   marked unmatched. Enrichment never rejects or drops a transaction.
//
// =============================================================================

package enrichment

import (
	"sort"
	"strconv"
	"strings"

	"salescli/internal/types"
)

// =============================================================================
// KEY DERIVATION
// =============================================================================

// DeriveProductKey maps a transaction's ProductID onto the catalog ID space.
// ok is false when the ProductID contains no digits.
func DeriveProductKey(productID string) (int, bool) {
	var digits strings.Builder
	for _, r := range productID {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0, false
	}

	n, err := strconv.ParseInt(digits.String(), 10, 64)
	if err != nil {
		// Digit strings long enough to overflow int64 do not occur in real
		// product IDs; treat them as unmatchable rather than guessing.
		return 0, false
	}

	key := int(n % 100)
	if key == 0 {
		key = 100
	}
	return key, true
}

// =============================================================================
// ENRICHMENT
// =============================================================================

// Enrich joins each transaction with catalog metadata via the derived key.
// Unmatched transactions carry nil metadata fields and APIMatch=false.
// Output order matches input order.
func Enrich(txs []types.Transaction, mapping map[int]types.ProductMeta) []types.EnrichedTransaction {
	enriched := make([]types.EnrichedTransaction, 0, len(txs))
	for _, tx := range txs {
		e := types.EnrichedTransaction{Transaction: tx}

		if key, ok := DeriveProductKey(tx.ProductID); ok {
			if meta, found := mapping[key]; found {
				category := meta.Category
				brand := meta.Brand
				rating := meta.Rating
				e.APICategory = &category
				e.APIBrand = &brand
				e.APIRating = &rating
				e.APIMatch = true
			}
		}

		enriched = append(enriched, e)
	}
	return enriched
}

// =============================================================================
// SUMMARY
// =============================================================================

// Summary describes the outcome of an enrichment run.
type Summary struct {
	Total   int
	Matched int

	// SuccessRate is Matched/Total as a percentage (0 for an empty run).
	SuccessRate float64

	// FailedProducts holds the sorted distinct product names that could not
	// be enriched.
	FailedProducts []string
}

// Summarize computes the enrichment outcome for a set of enriched
// transactions.
func Summarize(enriched []types.EnrichedTransaction) Summary {
	s := Summary{Total: len(enriched)}

	failed := make(map[string]struct{})
	for _, e := range enriched {
		if e.APIMatch {
			s.Matched++
		} else {
			failed[e.ProductName] = struct{}{}
		}
	}

	if s.Total > 0 {
		s.SuccessRate = float64(s.Matched) / float64(s.Total) * 100
	}

	s.FailedProducts = make([]string, 0, len(failed))
	for name := range failed {
		s.FailedProducts = append(s.FailedProducts, name)
	}
	sort.Strings(s.FailedProducts)

	return s
}
