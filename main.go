// =============================================================================
// Sales Analytics CLI - Main Entry Point
// =============================================================================
//
// This is the main entry point for the sales analytics CLI application.
// It initializes the Cobra CLI framework and delegates command execution to
// the cmd package.
//
// USAGE:
//   salescli analyze        - Run the full analytics pipeline on the input file
//   salescli validate       - Parse and validate the input file without reporting
//   salescli version        - Display the application version
//
// ARCHITECTURE:
//   This application follows a modular design where:
//   - cmd/           : Contains all CLI command definitions (Cobra)
//   - internal/      : Contains core business logic (not for external import)
//   - pkg/           : Contains shared utilities
//
// =============================================================================

package main

import (
	"salescli/cmd"
)

// main is the entry point of the application.
// It simply calls the Execute function from the cmd package, which
// initializes and runs the Cobra CLI.
func main() {
	cmd.Execute()
}
