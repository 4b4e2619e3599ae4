// =============================================================================
// Sales Analytics CLI - Validate Command
// =============================================================================
//
// This file defines the 'validate' command, which parses and validates a
// sales data file without running the full pipeline. It is the quick way to
// check a new export before analyzing it.
//
// COMMAND USAGE:
//   salescli validate [--input path]
//
// Invalid records are counted and reported, never treated as an error; the
// command exits non-zero only when the file itself cannot be read.
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"salescli/internal/config"
	"salescli/internal/parser"
	"salescli/internal/types"
	"salescli/internal/validation"
	"salescli/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// validateInput replaces the configured input file when set.
var validateInput string

// =============================================================================
// VALIDATE COMMAND DEFINITION
// =============================================================================

// validateCmd represents the 'validate' command.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Parse and validate a sales data file without reporting",
	Long: `The validate command reads the sales data file, parses every line, and
runs the structural validation rules. It prints a breakdown of parse
skips and validation rejections so data problems can be found before a
full analysis run.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate()
	},
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init registers the validate command with the root command and sets up flags.
func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(
		&validateInput,
		"input",
		"",
		"Path to the sales data file (overrides the configured input)",
	)
}

// =============================================================================
// VALIDATION FUNCTION
// =============================================================================

// runValidate reads, parses and validates the input file and prints the
// summary.
func runValidate() error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if validateInput != "" {
		cfg.InputFile = validateInput
	}

	logger := setupLogger(cfg.LogLevel)

	fmt.Println("=== Sales Data Validation ===")
	fmt.Printf("Input: %s\n\n", cfg.InputFile)

	lines, err := utils.ReadSalesData(cfg.InputFile, logger)
	if err != nil {
		return fmt.Errorf("failed to read sales data: %w", err)
	}

	txs, parseStats := parser.ParseLines(lines, logger)
	_, summary := validation.New(types.FilterOptions{}, logger).Run(txs)

	fmt.Printf("Data lines:          %d\n", parseStats.TotalLines)
	fmt.Printf("Parsed records:      %d\n", parseStats.Parsed)
	fmt.Printf("Skipped lines:       %d\n", parseStats.Skipped)
	for _, reason := range []parser.SkipReason{
		parser.SkipFieldCount, parser.SkipBadQuantity, parser.SkipBadUnitPrice,
	} {
		if count := parseStats.SkippedByReason[reason]; count > 0 {
			fmt.Printf("  - %s: %d\n", reason, count)
		}
	}
	fmt.Printf("Valid records:       %d\n", summary.FinalCount)
	fmt.Printf("Invalid records:     %d\n", summary.Invalid)

	return nil
}
