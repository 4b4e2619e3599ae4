// =============================================================================
// Sales Analytics CLI - Analyze Command
// =============================================================================
//
// This file defines the 'analyze' command, which runs the full analytics
// pipeline end to end.
//
// COMMAND USAGE:
//   salescli analyze [flags]
//
// FLAGS:
//   --input           : Override the input file from the configuration
//   --region          : Keep only transactions from this region
//   --min-amount      : Keep only transactions with amount >= this value
//   --max-amount      : Keep only transactions with amount <= this value
//   --skip-enrichment : Skip the catalog fetch and mark all rows unmatched
//   --dry-run         : Compute everything but write no files
//
// PIPELINE:
//   1. Load configuration
//   2. Read the sales data file
//   3. Parse records
//   4. Validate and filter
//   5. Fetch the product catalog
//   6. Enrich transactions
//   7. Write the enriched data file
//   8. Generate the reports
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"salescli/internal/catalog"
	"salescli/internal/config"
	"salescli/internal/enrichment"
	"salescli/internal/parser"
	"salescli/internal/report"
	"salescli/internal/types"
	"salescli/internal/validation"
	"salescli/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// inputOverride replaces the configured input file when set.
var inputOverride string

// filterRegion keeps only transactions from this region.
var filterRegion string

// filterMinAmount and filterMaxAmount bound the transaction amount.
// Empty string means the bound is not applied.
var filterMinAmount string
var filterMaxAmount string

// skipEnrichment disables the catalog fetch.
var skipEnrichment bool

// dryRun computes everything but writes no files.
var dryRun bool

// =============================================================================
// ANALYZE COMMAND DEFINITION
// =============================================================================

// analyzeCmd represents the 'analyze' command.
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run the full sales analytics pipeline",
	Long: `The analyze command reads the sales data file, parses and validates the
records, applies any region and amount filters, aggregates the results,
enriches the transactions against the product catalog, and writes the
enriched data file plus the text and XLSX reports.

Per-record problems never stop the run: malformed lines are skipped and
counted, invalid records are rejected and counted, and a failed catalog
fetch simply leaves every transaction unmatched.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runAnalyze()
	},
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init registers the analyze command with the root command and sets up flags.
func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(
		&inputOverride,
		"input",
		"",
		"Path to the sales data file (overrides the configured input)",
	)

	analyzeCmd.Flags().StringVar(
		&filterRegion,
		"region",
		"",
		"Keep only transactions from this region (exact match)",
	)

	analyzeCmd.Flags().StringVar(
		&filterMinAmount,
		"min-amount",
		"",
		"Keep only transactions with amount at or above this value",
	)

	analyzeCmd.Flags().StringVar(
		&filterMaxAmount,
		"max-amount",
		"",
		"Keep only transactions with amount at or below this value",
	)

	analyzeCmd.Flags().BoolVar(
		&skipEnrichment,
		"skip-enrichment",
		false,
		"Skip the catalog fetch and mark all transactions unmatched",
	)

	analyzeCmd.Flags().BoolVar(
		&dryRun,
		"dry-run",
		false,
		"Compute and print the summary without writing any files",
	)
}

// =============================================================================
// MAIN PIPELINE FUNCTION
// =============================================================================

// runAnalyze orchestrates the analytics pipeline.
func runAnalyze() error {
	startTime := time.Now()
	runID := uuid.New().String()

	fmt.Println("=== Sales Analytics CLI ===")

	// =========================================================================
	// STEP 1: LOAD CONFIGURATION
	// =========================================================================

	fmt.Println("[1/8] Loading configuration...")

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if inputOverride != "" {
		cfg.InputFile = inputOverride
	}

	logger := setupLogger(cfg.LogLevel)
	logger.Debug("starting analysis run", "run_id", runID, "input", cfg.InputFile)

	opts, err := buildFilterOptions()
	if err != nil {
		return err
	}

	fm := utils.NewFileManager(cfg.OutputDirs(), cfg.ArchiveDir, cfg.ArchiveProcessedInput)
	if !dryRun {
		if err := fm.EnsureDirectories(); err != nil {
			return fmt.Errorf("failed to prepare output directories: %w", err)
		}
	}
	fmt.Println("  ✓ Configuration loaded")

	// =========================================================================
	// STEP 2: READ INPUT FILE
	// =========================================================================

	fmt.Println("[2/8] Reading sales data...")

	lines, err := utils.ReadSalesData(cfg.InputFile, logger)
	if err != nil {
		return fmt.Errorf("failed to read sales data: %w", err)
	}
	fmt.Printf("  ✓ %d data line(s) read\n", len(lines))

	// =========================================================================
	// STEP 3: PARSE RECORDS
	// =========================================================================

	fmt.Println("[3/8] Parsing records...")

	txs, parseStats := parser.ParseLines(lines, logger)
	fmt.Printf("  ✓ %d record(s) parsed, %d skipped\n", parseStats.Parsed, parseStats.Skipped)

	// =========================================================================
	// STEP 4: VALIDATE AND FILTER
	// =========================================================================

	fmt.Println("[4/8] Validating and filtering...")

	valid, filterSummary := validation.New(opts, logger).Run(txs)
	fmt.Printf("  ✓ %d valid record(s) (%d invalid, %d filtered by region, %d filtered by amount)\n",
		filterSummary.FinalCount,
		filterSummary.Invalid,
		filterSummary.FilteredByRegion,
		filterSummary.FilteredByAmount)

	// =========================================================================
	// STEP 5: FETCH PRODUCT CATALOG
	// =========================================================================

	var mapping map[int]types.ProductMeta
	if skipEnrichment {
		fmt.Println("[5/8] Skipping catalog fetch (--skip-enrichment)")
	} else {
		fmt.Println("[5/8] Fetching product catalog...")

		client := catalog.NewClient(
			cfg.Catalog.BaseURL,
			time.Duration(cfg.Catalog.TimeoutSeconds)*time.Second,
			cfg.Catalog.Limit,
			logger,
		)
		products := client.FetchAllProducts(context.Background())
		mapping = catalog.CreateProductMapping(products)

		if len(mapping) == 0 {
			fmt.Println("  ✗ Catalog unavailable, continuing without enrichment data")
		} else {
			fmt.Printf("  ✓ %d catalog product(s) fetched\n", len(mapping))
		}
	}

	// =========================================================================
	// STEP 6: ENRICH TRANSACTIONS
	// =========================================================================

	fmt.Println("[6/8] Enriching transactions...")

	enriched := enrichment.Enrich(valid, mapping)
	enrichSummary := enrichment.Summarize(enriched)
	fmt.Printf("  ✓ %d of %d transaction(s) enriched (%.2f%%)\n",
		enrichSummary.Matched, enrichSummary.Total, enrichSummary.SuccessRate)

	// =========================================================================
	// STEP 7: WRITE ENRICHED DATA FILE
	// =========================================================================

	if dryRun {
		fmt.Println("[7/8] Skipping enriched data file (--dry-run)")
	} else {
		fmt.Println("[7/8] Writing enriched data file...")

		if err := enrichment.WriteEnriched(cfg.EnrichedOutputFile, enriched); err != nil {
			return fmt.Errorf("failed to write enriched data: %w", err)
		}
		fmt.Printf("  ✓ Enriched data written to %s\n", cfg.EnrichedOutputFile)
	}

	// =========================================================================
	// STEP 8: GENERATE REPORTS
	// =========================================================================

	fmt.Println("[8/8] Generating reports...")

	rpt := report.Build(valid, enriched, runID, report.Options{
		TopN:                  cfg.Analysis.TopN,
		LowPerformerThreshold: cfg.Analysis.LowPerformerThreshold,
	})

	if dryRun {
		fmt.Println("  ✓ Report computed (files skipped, --dry-run)")
	} else {
		if err := report.WriteText(cfg.ReportFile, rpt, cfg.CurrencySymbol); err != nil {
			return fmt.Errorf("failed to write text report: %w", err)
		}
		fmt.Printf("  ✓ Text report written to %s\n", cfg.ReportFile)

		if err := report.WriteWorkbook(cfg.WorkbookFile, rpt); err != nil {
			return fmt.Errorf("failed to write report workbook: %w", err)
		}
		fmt.Printf("  ✓ Workbook written to %s\n", cfg.WorkbookFile)

		if cfg.ArchiveProcessedInput && utils.FileExists(cfg.InputFile) {
			archived, err := fm.ArchiveInputFile(cfg.InputFile)
			if err != nil {
				return fmt.Errorf("failed to archive input file: %w", err)
			}
			fmt.Printf("  ✓ Input archived to %s\n", archived)
		}
	}

	// =========================================================================
	// SUMMARY
	// =========================================================================

	elapsed := time.Since(startTime)
	fmt.Println("\n=== Analysis Complete ===")
	fmt.Printf("Run ID:           %s\n", runID)
	fmt.Printf("Input lines:      %d\n", parseStats.TotalLines)
	fmt.Printf("Valid records:    %d\n", filterSummary.FinalCount)
	fmt.Printf("Total revenue:    %s%s\n", cfg.CurrencySymbol, rpt.TotalRevenue.StringFixed(2))
	fmt.Printf("Enriched:         %d/%d\n", enrichSummary.Matched, enrichSummary.Total)
	fmt.Printf("Time elapsed:     %s\n", elapsed)

	return nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// buildFilterOptions converts the filter flags into FilterOptions, rejecting
// unparseable amounts with a friendly error.
func buildFilterOptions() (types.FilterOptions, error) {
	opts := types.FilterOptions{Region: filterRegion}

	if filterMinAmount != "" {
		min, err := decimal.NewFromString(filterMinAmount)
		if err != nil {
			return opts, fmt.Errorf("invalid --min-amount %q: %w", filterMinAmount, err)
		}
		opts.MinAmount = &min
	}

	if filterMaxAmount != "" {
		max, err := decimal.NewFromString(filterMaxAmount)
		if err != nil {
			return opts, fmt.Errorf("invalid --max-amount %q: %w", filterMaxAmount, err)
		}
		opts.MaxAmount = &max
	}

	if opts.MinAmount != nil && opts.MaxAmount != nil && opts.MinAmount.GreaterThan(*opts.MaxAmount) {
		return opts, fmt.Errorf("--min-amount (%s) is greater than --max-amount (%s)",
			filterMinAmount, filterMaxAmount)
	}

	return opts, nil
}
