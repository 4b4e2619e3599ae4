// =============================================================================
// Sales Analytics CLI - XLSX Report Export
// =============================================================================
//
// Writes the assembled report as a multi-sheet Excel workbook for consumers
// who want the numbers in spreadsheet form rather than the formatted text
// report. Sheet layout:
//   Summary   - headline metrics and enrichment outcome
//   Regions   - region-wise performance table
//   Products  - top sellers and low performers
//   Customers - top customers
//   Daily     - daily sales trend
//
// =============================================================================

package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// WriteWorkbook writes the report as an XLSX workbook at path.
func WriteWorkbook(path string, r Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeSummarySheet(f, r); err != nil {
		return fmt.Errorf("failed to build summary sheet: %w", err)
	}
	if err := writeRegionsSheet(f, r); err != nil {
		return fmt.Errorf("failed to build regions sheet: %w", err)
	}
	if err := writeProductsSheet(f, r); err != nil {
		return fmt.Errorf("failed to build products sheet: %w", err)
	}
	if err := writeCustomersSheet(f, r); err != nil {
		return fmt.Errorf("failed to build customers sheet: %w", err)
	}
	if err := writeDailySheet(f, r); err != nil {
		return fmt.Errorf("failed to build daily sheet: %w", err)
	}

	// Drop the default sheet excelize creates.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to remove default sheet: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeSummarySheet(f *excelize.File, r Report) error {
	const sheet = "Summary"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	rows := [][]interface{}{
		{"Run ID", r.RunID},
		{"Generated", r.GeneratedAt.Format("2006-01-02 15:04:05")},
		{"Total Transactions", r.TotalTransactions},
		{"Total Revenue", r.TotalRevenue.InexactFloat64()},
		{"Average Order Value", r.AvgOrderValue.InexactFloat64()},
		{"Date Range", r.DateRange},
		{"Enriched Transactions", r.Enrichment.Total},
		{"Successful Enrichments", r.Enrichment.Matched},
		{"Enrichment Success Rate %", r.Enrichment.SuccessRate},
	}
	return writeRows(f, sheet, rows)
}

func writeRegionsSheet(f *excelize.File, r Report) error {
	const sheet = "Regions"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	rows := [][]interface{}{
		{"Region", "Total Sales", "% of Total", "Transactions", "Avg Order Value"},
	}
	for i, region := range r.Regions {
		avg := 0.0
		if i < len(r.RegionAverages) {
			avg = r.RegionAverages[i].AvgOrderValue.InexactFloat64()
		}
		rows = append(rows, []interface{}{
			region.Region,
			region.TotalSales.InexactFloat64(),
			region.Percentage.InexactFloat64(),
			region.TransactionCount,
			avg,
		})
	}
	return writeRows(f, sheet, rows)
}

func writeProductsSheet(f *excelize.File, r Report) error {
	const sheet = "Products"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	rows := [][]interface{}{
		{"Segment", "Product Name", "Quantity", "Revenue"},
	}
	for _, p := range r.TopProducts {
		rows = append(rows, []interface{}{"Top Seller", p.Name, p.Quantity, p.Revenue.InexactFloat64()})
	}
	for _, p := range r.LowPerformers {
		rows = append(rows, []interface{}{"Low Performer", p.Name, p.Quantity, p.Revenue.InexactFloat64()})
	}
	return writeRows(f, sheet, rows)
}

func writeCustomersSheet(f *excelize.File, r Report) error {
	const sheet = "Customers"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	rows := [][]interface{}{
		{"Customer ID", "Total Spent", "Orders", "Avg Order Value"},
	}
	for _, c := range r.TopCustomers {
		rows = append(rows, []interface{}{
			c.CustomerID,
			c.TotalSpent.InexactFloat64(),
			c.PurchaseCount,
			c.AvgOrderValue.InexactFloat64(),
		})
	}
	return writeRows(f, sheet, rows)
}

func writeDailySheet(f *excelize.File, r Report) error {
	const sheet = "Daily"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	rows := [][]interface{}{
		{"Date", "Revenue", "Transactions", "Unique Customers"},
	}
	for _, d := range r.DailyTrend {
		rows = append(rows, []interface{}{
			d.Date,
			d.Revenue.InexactFloat64(),
			d.TransactionCount,
			d.UniqueCustomers,
		})
	}
	return writeRows(f, sheet, rows)
}

// writeRows writes rows starting at A1, one slice per spreadsheet row.
func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
