// =============================================================================
// Sales Analytics CLI - Configuration Module
// =============================================================================
//
// This module is responsible for loading and managing the application
// configuration. Settings come from a single YAML file (config.yaml by
// default); every value has a sensible default so the application also runs
// with no config file at all.
//
// PRECEDENCE:
//   command-line flags > config file > built-in defaults
//
// =============================================================================

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the application configuration.
type Config struct {
	// =========================================================================
	// FILE SETTINGS
	// =========================================================================

	// InputFile is the pipe-delimited sales data file to analyze.
	// Default: "data/sales_data.txt"
	InputFile string `yaml:"input_file"`

	// EnrichedOutputFile is where the enriched transaction file is written.
	// Default: "data/enriched_sales_data.txt"
	EnrichedOutputFile string `yaml:"enriched_output_file"`

	// ReportFile is where the formatted text report is written.
	// Default: "output/sales_report.txt"
	ReportFile string `yaml:"report_file"`

	// WorkbookFile is where the XLSX report workbook is written.
	// Default: "output/sales_report.xlsx"
	WorkbookFile string `yaml:"workbook_file"`

	// ArchiveDir is where processed input files are moved when archival is
	// enabled.
	// Default: "data/archive"
	ArchiveDir string `yaml:"archive_dir"`

	// ArchiveProcessedInput moves the input file to ArchiveDir after a
	// successful run.
	// Default: false
	ArchiveProcessedInput bool `yaml:"archive_processed_input"`

	// =========================================================================
	// REPORT SETTINGS
	// =========================================================================

	// CurrencySymbol is prefixed to every monetary value in the report.
	// Default: "₹"
	CurrencySymbol string `yaml:"currency_symbol"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// =========================================================================
	// CATALOG SETTINGS
	// =========================================================================

	// Catalog configures the external product catalog API.
	Catalog CatalogConfig `yaml:"catalog"`

	// =========================================================================
	// ANALYSIS SETTINGS
	// =========================================================================

	// Analysis configures the aggregation parameters.
	Analysis AnalysisConfig `yaml:"analysis"`
}

// CatalogConfig configures the product catalog API client.
type CatalogConfig struct {
	// BaseURL is the catalog API endpoint.
	// Default: "https://dummyjson.com"
	BaseURL string `yaml:"base_url"`

	// TimeoutSeconds is the HTTP timeout for catalog requests.
	// Default: 10
	TimeoutSeconds int `yaml:"timeout_seconds"`

	// Limit is the number of products to request.
	// Default: 100
	Limit int `yaml:"limit"`
}

// AnalysisConfig configures the aggregation parameters.
type AnalysisConfig struct {
	// TopN bounds the product and customer leaderboards.
	// Default: 5
	TopN int `yaml:"top_n"`

	// LowPerformerThreshold is the quantity below which a product counts as
	// low performing.
	// Default: 10
	LowPerformerThreshold int64 `yaml:"low_performer_threshold"`
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Default returns the built-in configuration, used when no config file is
// present.
func Default() *Config {
	config := &Config{}
	applyDefaults(config)
	return config
}

// Load loads the configuration from a YAML file.
//
// A missing file is not an error: the built-in defaults are returned so the
// application runs without any configuration. A file that exists but cannot
// be parsed is an error.
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&config)

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(config *Config) {
	if config.InputFile == "" {
		config.InputFile = "data/sales_data.txt"
	}
	if config.EnrichedOutputFile == "" {
		config.EnrichedOutputFile = "data/enriched_sales_data.txt"
	}
	if config.ReportFile == "" {
		config.ReportFile = "output/sales_report.txt"
	}
	if config.WorkbookFile == "" {
		config.WorkbookFile = "output/sales_report.xlsx"
	}
	if config.ArchiveDir == "" {
		config.ArchiveDir = "data/archive"
	}
	if config.CurrencySymbol == "" {
		config.CurrencySymbol = "₹"
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.Catalog.BaseURL == "" {
		config.Catalog.BaseURL = "https://dummyjson.com"
	}
	if config.Catalog.TimeoutSeconds == 0 {
		config.Catalog.TimeoutSeconds = 10
	}
	if config.Catalog.Limit == 0 {
		config.Catalog.Limit = 100
	}
	if config.Analysis.TopN == 0 {
		config.Analysis.TopN = 5
	}
	if config.Analysis.LowPerformerThreshold == 0 {
		config.Analysis.LowPerformerThreshold = 10
	}
}

// validate checks the configuration and prepares the output directories.
func validate(config *Config) error {
	if config.Catalog.TimeoutSeconds < 0 {
		return fmt.Errorf("catalog timeout_seconds must not be negative")
	}
	if config.Analysis.TopN < 1 {
		return fmt.Errorf("analysis top_n must be at least 1")
	}
	return nil
}

// OutputDirs returns the directories output files are written into, for
// directory setup before the pipeline runs.
func (c *Config) OutputDirs() []string {
	dirs := make([]string, 0, 3)
	seen := make(map[string]struct{})
	for _, path := range []string{c.EnrichedOutputFile, c.ReportFile, c.WorkbookFile} {
		dir := filepath.Dir(path)
		if dir == "" || dir == "." {
			continue
		}
		if _, ok := seen[dir]; ok {
			continue
		}
		seen[dir] = struct{}{}
		dirs = append(dirs, dir)
	}
	return dirs
}
