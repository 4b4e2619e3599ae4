// =============================================================================
// Sales Analytics CLI - Report Assembler
// =============================================================================
//
// Builds the final report from the validated and enriched data sets and
// renders it as a formatted text file. The assembler itself is pure: Build
// computes a Report value, WriteText serializes it. The XLSX export lives in
// xlsx.go.
//
// =============================================================================

package report

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"salescli/internal/analytics"
	"salescli/internal/enrichment"
	"salescli/internal/types"
)

// =============================================================================
// TYPES
// =============================================================================

// Options controls the analysis parameters of a report build.
type Options struct {
	// TopN bounds the product and customer leaderboards.
	TopN int

	// LowPerformerThreshold is the quantity below which a product counts as
	// low performing.
	LowPerformerThreshold int64
}

// DefaultOptions returns the standard analysis parameters.
func DefaultOptions() Options {
	return Options{TopN: 5, LowPerformerThreshold: 10}
}

// RegionAverage is the average order value for one region, kept in the same
// order as the region performance table.
type RegionAverage struct {
	Region        string
	AvgOrderValue decimal.Decimal
}

// Report is the fully assembled analytics result, ready for rendering.
type Report struct {
	RunID       string
	GeneratedAt time.Time

	TotalTransactions int
	TotalRevenue      decimal.Decimal
	AvgOrderValue     decimal.Decimal
	DateRange         string

	Regions        []analytics.RegionStat
	RegionAverages []RegionAverage
	TopProducts    []analytics.ProductStat
	TopCustomers   []analytics.CustomerStat
	DailyTrend     []analytics.DailyStat
	Peak           analytics.PeakDay
	HasPeak        bool
	LowPerformers  []analytics.ProductStat
	Enrichment     enrichment.Summary
}

// =============================================================================
// BUILD
// =============================================================================

// Build assembles the report from the validated transaction set and its
// enriched counterpart. It runs the full aggregation battery and derives the
// summary metrics; no files are touched.
func Build(valid []types.Transaction, enriched []types.EnrichedTransaction, runID string, opts Options) Report {
	r := Report{
		RunID:             runID,
		GeneratedAt:       time.Now(),
		TotalTransactions: len(valid),
		TotalRevenue:      analytics.TotalRevenue(valid),
		DateRange:         "N/A",
	}

	if len(valid) > 0 {
		r.AvgOrderValue = r.TotalRevenue.
			Div(decimal.NewFromInt(int64(len(valid)))).
			RoundBank(2)

		minDate, maxDate := valid[0].Date, valid[0].Date
		for _, tx := range valid[1:] {
			if tx.Date < minDate {
				minDate = tx.Date
			}
			if tx.Date > maxDate {
				maxDate = tx.Date
			}
		}
		r.DateRange = fmt.Sprintf("%s to %s", minDate, maxDate)
	}

	r.Regions = analytics.RegionWiseSales(valid)
	for _, region := range r.Regions {
		avg := region.TotalSales.
			Div(decimal.NewFromInt(int64(region.TransactionCount))).
			RoundBank(2)
		r.RegionAverages = append(r.RegionAverages, RegionAverage{
			Region:        region.Region,
			AvgOrderValue: avg,
		})
	}

	r.TopProducts = analytics.TopSellingProducts(valid, opts.TopN)

	customers := analytics.CustomerAnalysis(valid)
	if opts.TopN < len(customers) {
		customers = customers[:opts.TopN]
	}
	r.TopCustomers = customers

	r.DailyTrend = analytics.DailySalesTrend(valid)
	r.Peak, r.HasPeak = analytics.FindPeakSalesDay(valid)
	r.LowPerformers = analytics.LowPerformingProducts(valid, opts.LowPerformerThreshold)
	r.Enrichment = enrichment.Summarize(enriched)

	return r
}

// =============================================================================
// TEXT RENDERING
// =============================================================================

// WriteText renders the report as a formatted text file. currency is the
// symbol prefixed to every monetary value.
func WriteText(path string, r Report, currency string) error {
	if err := os.WriteFile(path, []byte(RenderText(r, currency)), 0644); err != nil {
		return fmt.Errorf("failed to write report file: %w", err)
	}
	return nil
}

// RenderText produces the report text. Split out from WriteText so tests can
// inspect the output without touching the filesystem.
func RenderText(r Report, currency string) string {
	var sb strings.Builder
	rule := strings.Repeat("=", 60)
	line := strings.Repeat("-", 60)

	// Header.
	sb.WriteString(rule + "\n")
	sb.WriteString("           SALES ANALYTICS REPORT\n")
	sb.WriteString(fmt.Sprintf("     Generated: %s\n", r.GeneratedAt.Format("2006-01-02 15:04:05")))
	sb.WriteString(fmt.Sprintf("     Run ID: %s\n", r.RunID))
	sb.WriteString(fmt.Sprintf("     Records Processed: %d\n", r.TotalTransactions))
	sb.WriteString(rule + "\n\n")

	// Overall summary.
	sb.WriteString("OVERALL SUMMARY\n")
	sb.WriteString(line + "\n")
	sb.WriteString(fmt.Sprintf("Total Revenue:        %s%s\n", currency, money(r.TotalRevenue)))
	sb.WriteString(fmt.Sprintf("Total Transactions:   %d\n", r.TotalTransactions))
	sb.WriteString(fmt.Sprintf("Average Order Value:  %s%s\n", currency, money(r.AvgOrderValue)))
	sb.WriteString(fmt.Sprintf("Date Range:           %s\n\n", r.DateRange))

	// Region-wise performance.
	sb.WriteString("REGION-WISE PERFORMANCE\n")
	sb.WriteString(line + "\n")
	sb.WriteString(fmt.Sprintf("%-10s%15s%15s%15s\n", "Region", "Sales", "% of Total", "Transactions"))
	for _, region := range r.Regions {
		sb.WriteString(fmt.Sprintf("%-10s%s%14s%13s%%%15d\n",
			region.Region,
			currency, money(region.TotalSales),
			region.Percentage.StringFixed(2),
			region.TransactionCount))
	}
	sb.WriteString("\n")

	// Top products.
	sb.WriteString(fmt.Sprintf("TOP %d PRODUCTS\n", len(r.TopProducts)))
	sb.WriteString(line + "\n")
	sb.WriteString(fmt.Sprintf("%-6s%-25s%10s%15s\n", "Rank", "Product Name", "Qty Sold", "Revenue"))
	for i, p := range r.TopProducts {
		sb.WriteString(fmt.Sprintf("%-6d%-25s%10d%s%14s\n",
			i+1, p.Name, p.Quantity, currency, money(p.Revenue)))
	}
	sb.WriteString("\n")

	// Top customers.
	sb.WriteString(fmt.Sprintf("TOP %d CUSTOMERS\n", len(r.TopCustomers)))
	sb.WriteString(line + "\n")
	sb.WriteString(fmt.Sprintf("%-6s%-15s%15s%10s\n", "Rank", "Customer ID", "Total Spent", "Orders"))
	for i, c := range r.TopCustomers {
		sb.WriteString(fmt.Sprintf("%-6d%-15s%s%14s%10d\n",
			i+1, c.CustomerID, currency, money(c.TotalSpent), c.PurchaseCount))
	}
	sb.WriteString("\n")

	// Daily trend.
	sb.WriteString("DAILY SALES TREND\n")
	sb.WriteString(line + "\n")
	sb.WriteString(fmt.Sprintf("%-12s%15s%15s%15s\n", "Date", "Revenue", "Transactions", "Customers"))
	for _, d := range r.DailyTrend {
		sb.WriteString(fmt.Sprintf("%-12s%s%14s%15d%15d\n",
			d.Date, currency, money(d.Revenue), d.TransactionCount, d.UniqueCustomers))
	}
	sb.WriteString("\n")

	// Product performance analysis.
	sb.WriteString("PRODUCT PERFORMANCE ANALYSIS\n")
	sb.WriteString(line + "\n")
	if r.HasPeak {
		sb.WriteString(fmt.Sprintf("Best Selling Day: %s (%s%s, %d transactions)\n\n",
			r.Peak.Date, currency, money(r.Peak.Revenue), r.Peak.TransactionCount))
	} else {
		sb.WriteString("Best Selling Day: N/A\n\n")
	}

	sb.WriteString("Low Performing Products:\n")
	if len(r.LowPerformers) > 0 {
		for _, p := range r.LowPerformers {
			sb.WriteString(fmt.Sprintf(" - %s: Qty=%d, Revenue=%s%s\n",
				p.Name, p.Quantity, currency, money(p.Revenue)))
		}
	} else {
		sb.WriteString(" - None\n")
	}

	sb.WriteString("\nAverage Transaction Value per Region:\n")
	for _, ra := range r.RegionAverages {
		sb.WriteString(fmt.Sprintf(" - %s: %s%s\n", ra.Region, currency, money(ra.AvgOrderValue)))
	}
	sb.WriteString("\n")

	// API enrichment summary.
	sb.WriteString("API ENRICHMENT SUMMARY\n")
	sb.WriteString(line + "\n")
	sb.WriteString(fmt.Sprintf("Total Transactions Enriched: %d\n", r.Enrichment.Total))
	sb.WriteString(fmt.Sprintf("Successful Enrichments:      %d\n", r.Enrichment.Matched))
	sb.WriteString(fmt.Sprintf("Success Rate:                %.2f%%\n\n", r.Enrichment.SuccessRate))

	sb.WriteString("Products Not Enriched:\n")
	if len(r.Enrichment.FailedProducts) > 0 {
		for _, p := range r.Enrichment.FailedProducts {
			sb.WriteString(fmt.Sprintf(" - %s\n", p))
		}
	} else {
		sb.WriteString(" - None\n")
	}

	return sb.String()
}

// =============================================================================
// FORMATTING HELPERS
// =============================================================================

// money renders a decimal with two fixed places and thousands separators
// ("1234567.5" → "1,234,567.50").
func money(d decimal.Decimal) string {
	fixed := d.StringFixed(2)

	negative := strings.HasPrefix(fixed, "-")
	if negative {
		fixed = fixed[1:]
	}

	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var groups []string
	for len(intPart) > 3 {
		groups = append([]string{intPart[len(intPart)-3:]}, groups...)
		intPart = intPart[:len(intPart)-3]
	}
	groups = append([]string{intPart}, groups...)

	out := strings.Join(groups, ",") + "." + fracPart
	if negative {
		out = "-" + out
	}
	return out
}
