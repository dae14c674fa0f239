// =============================================================================
// EPOS Data Generator - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. All other commands
// (generate, verify, quality-test, version) are attached to it.
//
// COBRA CLI STRUCTURE:
//   rootCmd (epos-datagen)
//   ├── generateCmd    (epos-datagen generate)
//   ├── verifyCmd      (epos-datagen verify)
//   ├── qualityTestCmd (epos-datagen quality-test)
//   └── versionCmd     (epos-datagen version)
//
// The root command owns the global flags (--config, --verbose) and the
// shared configuration/logging bootstrap every subcommand runs through.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/eposforge/epos-datagen/internal/config"
	"github.com/eposforge/epos-datagen/internal/logging"
)

// cfgFile holds the path to the configuration file.
// Overridden with the --config flag.
var cfgFile string

// verbose enables debug logging when set.
var verbose bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "epos-datagen",
	Short: "EPOS Data Generator - Synthetic point-of-sale datasets for analytics pipelines",
	Long: `EPOS Data Generator produces large, internally consistent point-of-sale
datasets: one organization, its locations and staff, a product catalog, and
transactions with line items, all obeying configurable statistical
distributions while preserving exact referential and arithmetic integrity.

Example Usage:
  epos-datagen generate                      # Generate and export the dataset
  epos-datagen generate --config ./my.yaml   # Use a custom configuration file
  epos-datagen verify                        # Print a verification report for exported data
  epos-datagen quality-test                  # Run the data quality check battery`,

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. Called once by main.main(). Any fatal configuration or
// validation failure surfaces here as a non-zero exit.
func Execute() {
	defer logging.Sync()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the configuration file (default is config.yaml)",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}

// =============================================================================
// SHARED BOOTSTRAP
// =============================================================================

// loadConfig is the shared startup path for all subcommands: honor a .env
// file when present, load and validate the configuration, and install the
// logger. A *config.ConfigurationError returned here aborts the command
// before any generation work starts.
func loadConfig() (*config.Config, error) {
	// A missing .env is the normal case, not an error.
	_ = godotenv.Load()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if err := logging.Init(cfg.LogLevel, cfg.LogFile, verbose); err != nil {
		return nil, err
	}
	return cfg, nil
}
