// =============================================================================
// EPOS Data Generator - Generate Command
// =============================================================================
//
// This file defines the 'generate' command, the main entry point of the
// pipeline. It orchestrates the full run:
//
//   1. Load and validate configuration (fatal ConfigurationError aborts)
//   2. Generate master data (organization, locations, employees, products)
//   3. Assemble transactions (parallel per location, deterministic by seed)
//   4. Export artifacts (CSV tables, Parquet tables, XLSX workbook)
//   5. Run the quality check battery over what was generated
//   6. Print the generation summary
//
// The command exits non-zero when configuration is invalid, when assembly
// hits a consistency error, or when any quality check fails, so a broken
// dataset is never silently handed downstream.
//
// =============================================================================

package cmd

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/eposforge/epos-datagen/internal/assembler"
	"github.com/eposforge/epos-datagen/internal/export"
	"github.com/eposforge/epos-datagen/internal/masterdata"
	"github.com/eposforge/epos-datagen/internal/model"
	"github.com/eposforge/epos-datagen/internal/quality"
	"github.com/eposforge/epos-datagen/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// seedFlag overrides the configured random seed when >= 0.
var seedFlag int64

// transactionsFlag overrides num_transactions when >= 0.
var transactionsFlag int

// outputFlag overrides the configured output directory when non-empty.
var outputFlag string

// skipChecks disables the post-generation quality battery.
var skipChecks bool

// =============================================================================
// GENERATE COMMAND DEFINITION
// =============================================================================

// generateCmd represents the 'generate' command.
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the synthetic EPOS dataset and export it",
	Long: `The generate command produces a complete synthetic EPOS dataset: master
data first (so every later stage reads immutable reference tables), then the
transaction set, assembled in parallel per location from a seeded random
source so identical configurations yield byte-identical datasets.

Artifacts written to the output directory:
  organizations.csv, locations.csv, employees.csv, products.csv
  transactions.csv, transaction_items.csv
  transactions.parquet, transaction_items.parquet
  epos_dataset.xlsx (master data + summary workbook)

After export the quality check battery runs over the generated dataset; any
failing check makes the command exit non-zero.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate()
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().Int64Var(
		&seedFlag,
		"seed",
		-1,
		"Override the configured random seed",
	)
	generateCmd.Flags().IntVar(
		&transactionsFlag,
		"transactions",
		-1,
		"Override the configured number of transactions",
	)
	generateCmd.Flags().StringVar(
		&outputFlag,
		"output",
		"",
		"Override the configured output directory",
	)
	generateCmd.Flags().BoolVar(
		&skipChecks,
		"skip-checks",
		false,
		"Skip the post-generation quality check battery",
	)
}

// =============================================================================
// MAIN GENERATION FUNCTION
// =============================================================================

// runGenerate orchestrates the full generation pipeline.
func runGenerate() error {
	startTime := time.Now()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if seedFlag >= 0 {
		cfg.Seed = seedFlag
	}
	if transactionsFlag >= 0 {
		cfg.NumTransactions = transactionsFlag
		if err := cfg.Resolve(); err != nil {
			return err
		}
	}
	if outputFlag != "" {
		cfg.OutputDir = outputFlag
	}

	runID := uuid.NewString()
	log := zap.L().Named("generate").With(zap.String("run_id", runID))
	log.Info("starting generation",
		zap.Int64("seed", cfg.Seed),
		zap.Int("transactions", cfg.NumTransactions),
		zap.Int("locations", cfg.NumLocations))

	// =========================================================================
	// STEP 1: MASTER DATA
	// =========================================================================

	rng := rand.New(rand.NewSource(cfg.Seed))
	master, err := masterdata.Generate(cfg, rng)
	if err != nil {
		return fmt.Errorf("master data generation failed: %w", err)
	}
	log.Info("master data ready",
		zap.Int("locations", len(master.Locations)),
		zap.Int("employees", len(master.Employees)),
		zap.Int("products", len(master.Products)))

	// =========================================================================
	// STEP 2: TRANSACTION ASSEMBLY
	// =========================================================================

	asm, err := assembler.New(cfg, master)
	if err != nil {
		return fmt.Errorf("assembler setup failed: %w", err)
	}
	ds, err := asm.Run()
	if err != nil {
		return fmt.Errorf("assembly failed: %w", err)
	}

	// =========================================================================
	// STEP 3: EXPORT ARTIFACTS
	// =========================================================================

	if err := utils.EnsureDir(cfg.OutputDir); err != nil {
		return err
	}
	if err := export.WriteCSV(cfg.OutputDir, ds); err != nil {
		return err
	}
	if err := export.WriteParquet(cfg.OutputDir, ds); err != nil {
		return err
	}
	if err := export.WriteWorkbook(cfg.OutputDir, ds); err != nil {
		return err
	}
	log.Info("artifacts exported", zap.String("dir", cfg.OutputDir))

	// =========================================================================
	// STEP 4: QUALITY CHECKS
	// =========================================================================

	if !skipChecks {
		report := quality.NewValidator(cfg).Run(ds)
		printReport(report)
		if !report.Passed() {
			return fmt.Errorf("%d quality check(s) failed", report.FailedCount())
		}
	}

	// =========================================================================
	// STEP 5: SUMMARY
	// =========================================================================

	printGenerateSummary(ds, time.Since(startTime))
	return nil
}

// printGenerateSummary prints the run totals the way the verification report
// does, so operators can eyeball a run straight from the terminal.
func printGenerateSummary(ds *model.Dataset, elapsed time.Duration) {
	completedRevenue := 0.0
	statusCounts := make(map[model.TransactionStatus]int)
	for i := range ds.Transactions {
		tx := &ds.Transactions[i]
		statusCounts[tx.Status]++
		if tx.Status == model.StatusCompleted {
			completedRevenue += tx.TotalAmount
		}
	}

	fmt.Println("\n=== Generation Complete ===")
	fmt.Printf("Transactions:      %d\n", len(ds.Transactions))
	fmt.Printf("Line items:        %d\n", ds.ItemCount())
	fmt.Printf("Locations:         %d\n", len(ds.Master.Locations))
	fmt.Printf("Employees:         %d\n", len(ds.Master.Employees))
	fmt.Printf("Products:          %d\n", len(ds.Master.Products))
	fmt.Printf("Completed revenue: £%.2f\n", completedRevenue)
	fmt.Println("Status mix:")
	for _, s := range model.TransactionStatuses {
		fmt.Printf("  %-10s %d\n", s, statusCounts[s])
	}
	fmt.Printf("Time elapsed:      %s\n", elapsed)
}
