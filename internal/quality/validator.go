// =============================================================================
// EPOS Data Generator - Quality Validator
// =============================================================================
//
// This module runs a fixed battery of invariant checks over a complete
// generated dataset and produces a structured report. It follows the same
// strategy as the rest of the pipeline's validation: findings are collected,
// never thrown, and a single failing check does not stop the others.
//
// CHECKS (fixed order):
//   1. no_negative_completed_totals
//   2. business_hours_window
//   3. referential_integrity
//   4. line_total_sum
//   5. unique_transaction_ids
//   6. distribution_convergence
//   7. date_range
//
// PROPERTIES:
//   - read-only: the dataset is never mutated
//   - idempotent: two runs over the same dataset yield identical reports
//   - parallel: checks are independent and run concurrently, but results
//     are aggregated in fixed check order so the report is deterministic
//
// =============================================================================

package quality

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/eposforge/epos-datagen/internal/config"
	"github.com/eposforge/epos-datagen/internal/model"
)

// maxSamples caps how many violating records a check quotes in its result.
const maxSamples = 5

// =============================================================================
// REPORT STRUCTURES
// =============================================================================

// CheckResult is the outcome of a single check.
type CheckResult struct {
	CheckName        string
	Passed           bool
	ViolatingCount   int
	SampleViolations []string
}

// Report is the full validation report, one result per check in fixed order.
type Report struct {
	Results []CheckResult
}

// Passed reports whether every check passed.
func (r *Report) Passed() bool {
	for _, res := range r.Results {
		if !res.Passed {
			return false
		}
	}
	return true
}

// FailedCount returns the number of failing checks.
func (r *Report) FailedCount() int {
	n := 0
	for _, res := range r.Results {
		if !res.Passed {
			n++
		}
	}
	return n
}

// =============================================================================
// VALIDATOR
// =============================================================================

// checkFunc inspects the dataset and returns the violating record
// descriptions (empty means the check passed).
type checkFunc func(*config.Config, *model.Dataset) []string

type namedCheck struct {
	name string
	fn   checkFunc
}

// checks is the fixed battery, in report order.
var checks = []namedCheck{
	{"no_negative_completed_totals", checkNoNegativeCompletedTotals},
	{"business_hours_window", checkBusinessHours},
	{"referential_integrity", checkReferentialIntegrity},
	{"line_total_sum", checkLineTotalSum},
	{"unique_transaction_ids", checkUniqueIDs},
	{"distribution_convergence", checkDistributions},
	{"date_range", checkDateRange},
}

// Validator runs the check battery against datasets generated (or loaded)
// under a given configuration.
type Validator struct {
	cfg *config.Config
}

// NewValidator creates a validator bound to the configuration whose targets
// the dataset is checked against.
func NewValidator(cfg *config.Config) *Validator {
	return &Validator{cfg: cfg}
}

// Run executes every check and returns the aggregated report. Checks run
// concurrently; the report order is the fixed check order regardless of
// which goroutine finishes first.
func (v *Validator) Run(ds *model.Dataset) *Report {
	results := make([]CheckResult, len(checks))

	var wg sync.WaitGroup
	for i, chk := range checks {
		wg.Add(1)
		go func(slot int, chk namedCheck) {
			defer wg.Done()
			violations := chk.fn(v.cfg, ds)
			sample := violations
			if len(sample) > maxSamples {
				sample = sample[:maxSamples]
			}
			results[slot] = CheckResult{
				CheckName:        chk.name,
				Passed:           len(violations) == 0,
				ViolatingCount:   len(violations),
				SampleViolations: sample,
			}
		}(i, chk)
	}
	wg.Wait()

	return &Report{Results: results}
}

// =============================================================================
// CHECK IMPLEMENTATIONS
// =============================================================================

// checkNoNegativeCompletedTotals: completed transactions never carry a
// negative total. (Refunds do, deliberately; they are not inspected here.)
func checkNoNegativeCompletedTotals(_ *config.Config, ds *model.Dataset) []string {
	var violations []string
	for i := range ds.Transactions {
		tx := &ds.Transactions[i]
		if tx.Status == model.StatusCompleted && tx.TotalAmount < 0 {
			violations = append(violations,
				fmt.Sprintf("%s: completed with total %.2f", tx.ID, tx.TotalAmount))
		}
	}
	return violations
}

// checkBusinessHours: every timestamp's clock time falls in [open, close).
func checkBusinessHours(cfg *config.Config, ds *model.Dataset) []string {
	var violations []string
	for i := range ds.Transactions {
		tx := &ds.Transactions[i]
		h := tx.Timestamp.Hour()
		if h < cfg.BusinessHours.Open || h >= cfg.BusinessHours.Close {
			violations = append(violations,
				fmt.Sprintf("%s: %s outside %02d:00-%02d:00",
					tx.ID, tx.Timestamp.Format("15:04:05"),
					cfg.BusinessHours.Open, cfg.BusinessHours.Close))
		}
	}
	return violations
}

// checkReferentialIntegrity: every location, employee and product reference
// resolves to an existing master record.
func checkReferentialIntegrity(_ *config.Config, ds *model.Dataset) []string {
	locations := make(map[string]bool, len(ds.Master.Locations))
	for _, l := range ds.Master.Locations {
		locations[l.ID] = true
	}
	employees := make(map[string]bool, len(ds.Master.Employees))
	for _, e := range ds.Master.Employees {
		employees[e.ID] = true
	}
	products := make(map[string]bool, len(ds.Master.Products))
	for _, p := range ds.Master.Products {
		products[p.ID] = true
	}

	var violations []string
	for i := range ds.Transactions {
		tx := &ds.Transactions[i]
		if !locations[tx.LocationID] {
			violations = append(violations, fmt.Sprintf("%s: unknown location %s", tx.ID, tx.LocationID))
		}
		if !employees[tx.EmployeeID] {
			violations = append(violations, fmt.Sprintf("%s: unknown employee %s", tx.ID, tx.EmployeeID))
		}
		for _, item := range tx.Items {
			if !products[item.ProductID] {
				violations = append(violations,
					fmt.Sprintf("%s line %d: unknown product %s", tx.ID, item.LineNumber, item.ProductID))
			}
		}
	}
	return violations
}

// checkLineTotalSum: subtotal equals the sum of line totals within the fixed
// monetary tolerance.
func checkLineTotalSum(_ *config.Config, ds *model.Dataset) []string {
	var violations []string
	for i := range ds.Transactions {
		tx := &ds.Transactions[i]
		sum := 0.0
		for _, item := range tx.Items {
			sum += item.LineTotal
		}
		if !model.MoneyEqual(tx.Subtotal, model.RoundMoney(sum)) {
			violations = append(violations,
				fmt.Sprintf("%s: subtotal %.2f != line sum %.2f", tx.ID, tx.Subtotal, sum))
		}
	}
	return violations
}

// checkUniqueIDs: transaction ids are unique across the whole dataset.
func checkUniqueIDs(_ *config.Config, ds *model.Dataset) []string {
	seen := make(map[string]bool, len(ds.Transactions))
	var violations []string
	for i := range ds.Transactions {
		id := ds.Transactions[i].ID
		if seen[id] {
			violations = append(violations, fmt.Sprintf("duplicate transaction id %s", id))
		}
		seen[id] = true
	}
	return violations
}

// checkDistributions: empirical status and payment-method proportions fall
// within tolerance of the configured targets. This is a distributional
// property: the tolerance band is the wider of one percentage point and
// three standard errors, so small datasets are not flagged for ordinary
// sampling noise. Payment proportions are measured over non-error
// transactions, which are the only ones that carry a method.
func checkDistributions(cfg *config.Config, ds *model.Dataset) []string {
	var violations []string

	total := len(ds.Transactions)
	if total == 0 {
		return nil
	}

	statusCounts := make(map[string]int)
	paymentCounts := make(map[string]int)
	nonError := 0
	for i := range ds.Transactions {
		tx := &ds.Transactions[i]
		statusCounts[string(tx.Status)]++
		if tx.Status != model.StatusError {
			nonError++
			paymentCounts[string(tx.PaymentMethod)]++
		}
	}

	violations = append(violations,
		compareMix("status", cfg.StatusWeights, statusCounts, total)...)
	if nonError > 0 {
		violations = append(violations,
			compareMix("payment", cfg.PaymentWeights, paymentCounts, nonError)...)
	}
	return violations
}

// compareMix reports every outcome whose empirical proportion strays outside
// the tolerance band around its target.
func compareMix(kind string, targets map[string]float64, counts map[string]int, n int) []string {
	keys := make([]string, 0, len(targets))
	for k := range targets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var violations []string
	for _, k := range keys {
		target := targets[k]
		actual := float64(counts[k]) / float64(n)
		tolerance := math.Max(0.01, 3*math.Sqrt(target*(1-target)/float64(n)))
		if math.Abs(actual-target) > tolerance {
			violations = append(violations,
				fmt.Sprintf("%s %q: got %.4f, want %.4f ± %.4f", kind, k, actual, target, tolerance))
		}
	}
	return violations
}

// checkDateRange: every transaction date lies within the configured
// inclusive calendar range.
func checkDateRange(cfg *config.Config, ds *model.Dataset) []string {
	// End of the last trading day, since End() is midnight of end_date.
	rangeEnd := cfg.End().AddDate(0, 0, 1)

	var violations []string
	for i := range ds.Transactions {
		tx := &ds.Transactions[i]
		if tx.Timestamp.Before(cfg.Start()) || !tx.Timestamp.Before(rangeEnd) {
			violations = append(violations,
				fmt.Sprintf("%s: %s outside %s..%s", tx.ID,
					tx.Timestamp.Format("2006-01-02"),
					cfg.Start().Format("2006-01-02"),
					cfg.End().Format("2006-01-02")))
		}
	}
	return violations
}
