package quality

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eposforge/epos-datagen/internal/assembler"
	"github.com/eposforge/epos-datagen/internal/config"
	"github.com/eposforge/epos-datagen/internal/masterdata"
	"github.com/eposforge/epos-datagen/internal/model"
)

func generateDataset(t *testing.T) (*config.Config, *model.Dataset) {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.NumTransactions = 20000
	require.NoError(t, cfg.Resolve())

	master, err := masterdata.Generate(cfg, rand.New(rand.NewSource(cfg.Seed)))
	require.NoError(t, err)
	a, err := assembler.New(cfg, master)
	require.NoError(t, err)
	ds, err := a.Run()
	require.NoError(t, err)
	return cfg, ds
}

func checkByName(t *testing.T, report *Report, name string) CheckResult {
	t.Helper()
	for _, res := range report.Results {
		if res.CheckName == name {
			return res
		}
	}
	t.Fatalf("no check named %s in report", name)
	return CheckResult{}
}

func TestGeneratedDatasetPassesAllChecks(t *testing.T) {
	cfg, ds := generateDataset(t)
	report := NewValidator(cfg).Run(ds)

	require.Len(t, report.Results, len(checks))
	for _, res := range report.Results {
		assert.True(t, res.Passed, "check %s failed: %v", res.CheckName, res.SampleViolations)
	}
	assert.True(t, report.Passed())
	assert.Zero(t, report.FailedCount())
}

func TestReportOrderIsFixed(t *testing.T) {
	cfg, ds := generateDataset(t)
	report := NewValidator(cfg).Run(ds)

	for i, res := range report.Results {
		assert.Equal(t, checks[i].name, res.CheckName)
	}
}

func TestRunIsIdempotent(t *testing.T) {
	cfg, ds := generateDataset(t)
	v := NewValidator(cfg)

	first := v.Run(ds)
	second := v.Run(ds)
	assert.Equal(t, first, second)
}

func TestEmptyDatasetPasses(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	ds := &model.Dataset{}
	report := NewValidator(cfg).Run(ds)
	assert.True(t, report.Passed())
}

func TestNegativeCompletedTotalCaught(t *testing.T) {
	cfg, ds := generateDataset(t)
	for i := range ds.Transactions {
		if ds.Transactions[i].Status == model.StatusCompleted {
			ds.Transactions[i].TotalAmount = -9.99
			break
		}
	}

	res := checkByName(t, NewValidator(cfg).Run(ds), "no_negative_completed_totals")
	assert.False(t, res.Passed)
	assert.Equal(t, 1, res.ViolatingCount)
	require.Len(t, res.SampleViolations, 1)
	assert.Contains(t, res.SampleViolations[0], "-9.99")
}

func TestAfterHoursTimestampCaught(t *testing.T) {
	cfg, ds := generateDataset(t)
	ts := ds.Transactions[0].Timestamp
	ds.Transactions[0].Timestamp = time.Date(ts.Year(), ts.Month(), ts.Day(), 3, 0, 0, 0, ts.Location())

	res := checkByName(t, NewValidator(cfg).Run(ds), "business_hours_window")
	assert.False(t, res.Passed)
	assert.Equal(t, 1, res.ViolatingCount)
}

func TestDanglingReferencesCaught(t *testing.T) {
	cfg, ds := generateDataset(t)
	ds.Transactions[0].LocationID = "LOC-999"
	ds.Transactions[1].EmployeeID = "EMP-9999"

	res := checkByName(t, NewValidator(cfg).Run(ds), "referential_integrity")
	assert.False(t, res.Passed)
	assert.Equal(t, 2, res.ViolatingCount)
}

func TestSubtotalMismatchCaught(t *testing.T) {
	cfg, ds := generateDataset(t)
	for i := range ds.Transactions {
		if len(ds.Transactions[i].Items) > 0 {
			ds.Transactions[i].Subtotal += 1.00
			break
		}
	}

	res := checkByName(t, NewValidator(cfg).Run(ds), "line_total_sum")
	assert.False(t, res.Passed)
	assert.Equal(t, 1, res.ViolatingCount)
}

func TestDuplicateIDCaught(t *testing.T) {
	cfg, ds := generateDataset(t)
	ds.Transactions[1].ID = ds.Transactions[0].ID

	res := checkByName(t, NewValidator(cfg).Run(ds), "unique_transaction_ids")
	assert.False(t, res.Passed)
	assert.Equal(t, 1, res.ViolatingCount)
}

func TestSkewedStatusMixCaught(t *testing.T) {
	cfg, ds := generateDataset(t)
	// Force one quarter of the dataset to voided, far outside tolerance.
	for i := 0; i < len(ds.Transactions)/4; i++ {
		ds.Transactions[i].Status = model.StatusVoided
	}

	res := checkByName(t, NewValidator(cfg).Run(ds), "distribution_convergence")
	assert.False(t, res.Passed)
}

func TestOutOfRangeDateCaught(t *testing.T) {
	cfg, ds := generateDataset(t)
	ds.Transactions[0].Timestamp = cfg.Start().AddDate(-1, 0, 0)
	ds.Transactions[1].Timestamp = cfg.End().AddDate(0, 0, 2)

	res := checkByName(t, NewValidator(cfg).Run(ds), "date_range")
	assert.False(t, res.Passed)
	assert.Equal(t, 2, res.ViolatingCount)
}

func TestSampleViolationsCapped(t *testing.T) {
	cfg, ds := generateDataset(t)
	for i := 0; i < 20; i++ {
		ds.Transactions[i].LocationID = "LOC-999"
	}

	res := checkByName(t, NewValidator(cfg).Run(ds), "referential_integrity")
	assert.Equal(t, 20, res.ViolatingCount)
	assert.Len(t, res.SampleViolations, maxSamples)
}
