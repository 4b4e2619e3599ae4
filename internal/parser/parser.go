// =============================================================================
// Sales Analytics CLI - Record Parser
// =============================================================================
//
// This package converts raw pipe-delimited sales lines into Transaction
// values. Parsing is deliberately forgiving at the record level: a line that
// cannot be parsed is skipped and counted, never turned into an error. The
// caller receives every transaction that could be parsed, in input order,
// together with statistics describing what was dropped and why.
//
// EXPECTED LINE FORMAT (8 fields):
//   TransactionID|Date|ProductID|ProductName|Quantity|UnitPrice|CustomerID|Region
//
// =============================================================================

package parser

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"salescli/internal/types"
)

// =============================================================================
// CONSTANTS AND TYPES
// =============================================================================

// fieldCount is the exact number of pipe-separated fields a valid line has.
const fieldCount = 8

// SkipReason classifies why a line was discarded during parsing.
type SkipReason string

const (
	// SkipFieldCount means the line did not split into exactly 8 fields.
	SkipFieldCount SkipReason = "wrong_field_count"

	// SkipBadQuantity means the quantity field was not a parseable integer.
	SkipBadQuantity SkipReason = "bad_quantity"

	// SkipBadUnitPrice means the unit price field was not a parseable number.
	SkipBadUnitPrice SkipReason = "bad_unit_price"
)

// ParseStats summarizes a ParseLines run.
type ParseStats struct {
	// TotalLines is the number of lines handed to the parser.
	TotalLines int

	// Parsed is the number of lines successfully converted to transactions.
	Parsed int

	// Skipped is the number of lines discarded.
	Skipped int

	// SkippedByReason breaks Skipped down by SkipReason.
	SkippedByReason map[SkipReason]int
}

// =============================================================================
// PARSING FUNCTIONS
// =============================================================================

// ParseLines converts raw sales lines into transactions.
//
// Lines that cannot be parsed are skipped and counted in the returned stats;
// each skip is logged at debug level. The returned slice preserves input
// order and contains no deduplication.
//
// logger may be nil, in which case slog.Default() is used.
func ParseLines(lines []string, logger *slog.Logger) ([]types.Transaction, ParseStats) {
	if logger == nil {
		logger = slog.Default()
	}

	stats := ParseStats{
		TotalLines:      len(lines),
		SkippedByReason: make(map[SkipReason]int),
	}

	transactions := make([]types.Transaction, 0, len(lines))
	for i, line := range lines {
		tx, reason, ok := parseLine(line)
		if !ok {
			stats.Skipped++
			stats.SkippedByReason[reason]++
			logger.Debug("skipping malformed line",
				"line_number", i+1,
				"reason", string(reason))
			continue
		}
		transactions = append(transactions, tx)
		stats.Parsed++
	}

	return transactions, stats
}

// parseLine parses a single pipe-delimited line. When the line is malformed
// it returns ok=false together with the reason; no partial transaction is
// ever returned.
func parseLine(line string) (types.Transaction, SkipReason, bool) {
	fields := strings.Split(line, "|")
	if len(fields) != fieldCount {
		return types.Transaction{}, SkipFieldCount, false
	}

	quantity, err := strconv.ParseInt(stripThousands(fields[4]), 10, 64)
	if err != nil {
		return types.Transaction{}, SkipBadQuantity, false
	}

	unitPrice, err := decimal.NewFromString(stripThousands(fields[5]))
	if err != nil {
		return types.Transaction{}, SkipBadUnitPrice, false
	}

	// Product names may contain embedded commas from upstream exports;
	// they are removed so the name is safe in delimited output.
	productName := strings.TrimSpace(strings.ReplaceAll(fields[3], ",", ""))

	return types.Transaction{
		TransactionID: strings.TrimSpace(fields[0]),
		Date:          strings.TrimSpace(fields[1]),
		ProductID:     strings.TrimSpace(fields[2]),
		ProductName:   productName,
		Quantity:      quantity,
		UnitPrice:     unitPrice,
		CustomerID:    strings.TrimSpace(fields[6]),
		Region:        strings.TrimSpace(fields[7]),
	}, "", true
}

// stripThousands removes thousands separators and surrounding whitespace
// from a numeric field ("1,200.50" → "1200.50").
func stripThousands(field string) string {
	return strings.ReplaceAll(strings.TrimSpace(field), ",", "")
}
