// =============================================================================
// EPOS Data Generator - Main Entry Point
// =============================================================================
//
// This is the main entry point for the EPOS Data Generator CLI. It
// initializes the Cobra CLI framework and delegates command execution to
// the cmd package.
//
// USAGE:
//   epos-datagen generate      - Generate the dataset and export artifacts
//   epos-datagen verify        - Print a verification report for exported data
//   epos-datagen quality-test  - Run the data quality check battery
//   epos-datagen version       - Display the application version
//
// ARCHITECTURE:
//   - cmd/       : CLI command definitions (Cobra)
//   - internal/  : core generation, validation and export logic
//   - pkg/       : shared utilities
//
// =============================================================================

package main

import (
	"github.com/eposforge/epos-datagen/cmd"
)

// main simply calls Execute from the cmd package, which initializes and
// runs the Cobra CLI.
func main() {
	cmd.Execute()
}
