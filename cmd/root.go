// =============================================================================
// Sales Analytics CLI - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands (like 'analyze', 'validate') are
// attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (salescli)
//   ├── analyzeCmd (salescli analyze)
//   ├── validateCmd (salescli validate)
//   └── versionCmd (salescli version)
//
// CONFIGURATION:
//   The root command is responsible for:
//   1. Setting up global flags (--config, --verbose)
//   2. Initializing structured logging
//
// =============================================================================

package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use: "salescli",

	Short: "Sales Analytics CLI - Analyze pipe-delimited sales exports",

	Long: `Sales Analytics CLI reads pipe-delimited sales transaction exports,
validates and filters the records, aggregates revenue and customer metrics,
enriches the data against an external product catalog, and produces a
formatted analytics report.

Key Features:
  - Forgiving record parsing: malformed rows are counted, never fatal
  - Region and amount filtering with per-stage rejection counters
  - Revenue, product, customer and daily-trend aggregation
  - Product catalog enrichment with graceful degradation
  - Text and XLSX report output

Example Usage:
  salescli analyze                          # Full pipeline with defaults
  salescli analyze --region North           # Only the North region
  salescli analyze --min-amount 500         # Only orders of 500 and above
  salescli validate --input data/raw.txt    # Check a file without reporting`,

	// Print help when invoked without a subcommand.
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// LOGGING
// =============================================================================

// setupLogger installs the process-wide slog logger. The --verbose flag
// forces debug level regardless of the configured level.
func setupLogger(configLevel string) *slog.Logger {
	level := slog.LevelInfo
	switch configLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if verbose {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init sets up the persistent flags shared by every subcommand.
func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the configuration file",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}
