// =============================================================================
// EPOS Data Generator - Quality Test Command
// =============================================================================
//
// This file defines the 'quality-test' command: load the exported artifacts
// back from disk, run the full quality check battery against them, print the
// structured report, and exit non-zero when any check fails. Checking the
// files on disk (rather than an in-memory regeneration) means the battery
// covers the export round trip too.
//
// =============================================================================

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/eposforge/epos-datagen/internal/export"
	"github.com/eposforge/epos-datagen/internal/quality"
)

// qualityTestCmd represents the 'quality-test' command.
var qualityTestCmd = &cobra.Command{
	Use:   "quality-test",
	Short: "Run the data quality check battery against exported artifacts",
	Long: `The quality-test command reads the exported dataset from the output
directory and runs every quality check over it:

  1. no_negative_completed_totals
  2. business_hours_window
  3. referential_integrity
  4. line_total_sum
  5. unique_transaction_ids
  6. distribution_convergence
  7. date_range

All checks run even if one fails. The command prints the structured report
and exits non-zero when any check fails, so downstream loads never silently
consume invalid data.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runQualityTest()
	},
}

func init() {
	rootCmd.AddCommand(qualityTestCmd)

	qualityTestCmd.Flags().StringVar(
		&outputFlag,
		"output",
		"",
		"Override the configured output directory",
	)
}

// runQualityTest loads the artifacts and runs the battery.
func runQualityTest() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if outputFlag != "" {
		cfg.OutputDir = outputFlag
	}

	ds, err := export.ReadDataset(cfg.OutputDir)
	if err != nil {
		return fmt.Errorf("failed to load dataset from %s: %w", cfg.OutputDir, err)
	}
	zap.L().Named("quality-test").Info("dataset loaded",
		zap.Int("transactions", len(ds.Transactions)),
		zap.Int("items", ds.ItemCount()))

	report := quality.NewValidator(cfg).Run(ds)
	printReport(report)

	if !report.Passed() {
		return fmt.Errorf("%d quality check(s) failed", report.FailedCount())
	}
	return nil
}

// printReport renders the structured quality report to stdout.
func printReport(report *quality.Report) {
	fmt.Println("\n=== Data Quality Report ===")
	for _, res := range report.Results {
		mark := "PASS"
		if !res.Passed {
			mark = "FAIL"
		}
		fmt.Printf("  [%s] %-30s violations: %d\n", mark, res.CheckName, res.ViolatingCount)
		for _, sample := range res.SampleViolations {
			fmt.Printf("         - %s\n", sample)
		}
	}
	fmt.Println(strings.Repeat("=", 27))
	if report.Passed() {
		fmt.Println("All quality checks passed")
	} else {
		fmt.Printf("%d of %d checks failed\n", report.FailedCount(), len(report.Results))
	}
}
