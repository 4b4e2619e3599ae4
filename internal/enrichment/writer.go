// =============================================================================
// Sales Analytics CLI - Enriched Data Writer
// =============================================================================
//
// Persists enriched transactions as a pipe-delimited flat file so downstream
// tooling can consume the joined data without re-running the pipeline.
//
// FILE FORMAT (12 columns, header row first):
//   TransactionID|Date|ProductID|ProductName|Quantity|UnitPrice|CustomerID|
//   Region|API_Category|API_Brand|API_Rating|API_Match
//
// Missing metadata renders as an empty string; API_Match renders as
// true/false.
//
// =============================================================================

package enrichment

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"salescli/internal/types"
)

// enrichedHeader is the fixed column header of the enriched output file.
const enrichedHeader = "TransactionID|Date|ProductID|ProductName|Quantity|UnitPrice|CustomerID|Region|API_Category|API_Brand|API_Rating|API_Match"

// WriteEnriched writes the enriched transactions to path, one pipe-delimited
// row per transaction, in slice order.
func WriteEnriched(path string, enriched []types.EnrichedTransaction) error {
	var sb strings.Builder
	sb.WriteString(enrichedHeader)
	sb.WriteString("\n")

	for _, e := range enriched {
		sb.WriteString(formatRow(e))
		sb.WriteString("\n")
	}

	if err := os.WriteFile(path, []byte(sb.String()), 0644); err != nil {
		return fmt.Errorf("failed to write enriched data file: %w", err)
	}
	return nil
}

// formatRow renders one enriched transaction as a pipe-delimited row.
func formatRow(e types.EnrichedTransaction) string {
	fields := []string{
		e.TransactionID,
		e.Date,
		e.ProductID,
		e.ProductName,
		strconv.FormatInt(e.Quantity, 10),
		e.UnitPrice.String(),
		e.CustomerID,
		e.Region,
		stringOrEmpty(e.APICategory),
		stringOrEmpty(e.APIBrand),
		ratingOrEmpty(e.APIRating),
		strconv.FormatBool(e.APIMatch),
	}
	return strings.Join(fields, "|")
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func ratingOrEmpty(r *float64) string {
	if r == nil {
		return ""
	}
	return strconv.FormatFloat(*r, 'f', -1, 64)
}
