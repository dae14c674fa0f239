package assembler

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eposforge/epos-datagen/internal/config"
	"github.com/eposforge/epos-datagen/internal/masterdata"
	"github.com/eposforge/epos-datagen/internal/model"
)

func generate(t *testing.T, mutate func(*config.Config)) *model.Dataset {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.NumTransactions = 10000
	if mutate != nil {
		mutate(cfg)
	}
	require.NoError(t, cfg.Resolve())

	master, err := masterdata.Generate(cfg, rand.New(rand.NewSource(cfg.Seed)))
	require.NoError(t, err)

	a, err := New(cfg, master)
	require.NoError(t, err)
	ds, err := a.Run()
	require.NoError(t, err)
	return ds
}

func TestRunProducesRequestedCount(t *testing.T) {
	ds := generate(t, nil)
	assert.Len(t, ds.Transactions, 10000)
}

func TestTransactionIDsAreUnique(t *testing.T) {
	ds := generate(t, nil)
	seen := make(map[string]bool, len(ds.Transactions))
	for _, tx := range ds.Transactions {
		assert.False(t, seen[tx.ID], "duplicate id %s", tx.ID)
		seen[tx.ID] = true
	}
}

func TestArithmeticHoldsPerStatus(t *testing.T) {
	ds := generate(t, nil)
	for _, tx := range ds.Transactions {
		switch tx.Status {
		case model.StatusError:
			assert.Empty(t, tx.Items)
			assert.Zero(t, tx.Subtotal)
			assert.Zero(t, tx.TotalAmount)
			assert.Empty(t, tx.PaymentMethod)
			continue
		case model.StatusRefunded:
			assert.Negative(t, tx.TotalAmount)
		default:
			assert.Positive(t, tx.TotalAmount)
		}

		lineSum := 0.0
		for _, item := range tx.Items {
			assert.True(t, model.MoneyEqual(item.LineTotal,
				model.RoundMoney(float64(item.Quantity)*item.UnitPrice)))
			lineSum += item.LineTotal
		}
		assert.True(t, model.MoneyEqual(tx.Subtotal, model.RoundMoney(lineSum)),
			"subtotal mismatch for %s", tx.ID)

		total := model.RoundMoney(tx.Subtotal - tx.Discount + tx.Tax)
		if tx.Status == model.StatusRefunded {
			total = -total
		}
		assert.True(t, model.MoneyEqual(tx.TotalAmount, total),
			"total mismatch for %s", tx.ID)
	}
}

func TestReferentialIntegrity(t *testing.T) {
	ds := generate(t, nil)

	locs := make(map[string]bool)
	for _, l := range ds.Master.Locations {
		locs[l.ID] = true
	}
	emps := make(map[string]string)
	for _, e := range ds.Master.Employees {
		emps[e.ID] = e.LocationID
	}
	prods := make(map[string]bool)
	for _, p := range ds.Master.Products {
		prods[p.ID] = true
	}

	for _, tx := range ds.Transactions {
		require.True(t, locs[tx.LocationID])
		// The serving employee is on the roster of the transaction's location.
		require.Equal(t, tx.LocationID, emps[tx.EmployeeID])
		for _, item := range tx.Items {
			require.True(t, prods[item.ProductID])
			require.Equal(t, tx.ID, item.TransactionID)
		}
	}
}

func TestStatusMixConverges(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	ds := generate(t, func(c *config.Config) { c.NumTransactions = 100000 })

	counts := make(map[model.TransactionStatus]int)
	for _, tx := range ds.Transactions {
		counts[tx.Status]++
	}
	n := float64(len(ds.Transactions))
	for status, want := range cfg.StatusWeights {
		got := float64(counts[model.TransactionStatus(status)]) / n
		assert.InDelta(t, want, got, 0.01, "status %s", status)
	}
}

func TestRunIsDeterministic(t *testing.T) {
	a := generate(t, nil)
	b := generate(t, nil)
	require.Equal(t, len(a.Transactions), len(b.Transactions))
	assert.Equal(t, a.Transactions, b.Transactions)
}

func TestSeedChangesOutput(t *testing.T) {
	a := generate(t, nil)
	b := generate(t, func(c *config.Config) { c.Seed = 777 })
	assert.NotEqual(t, a.Transactions, b.Transactions)
}

func TestZeroTransactionsIsValid(t *testing.T) {
	ds := generate(t, func(c *config.Config) { c.NumTransactions = 0 })
	assert.Empty(t, ds.Transactions)
	assert.NotEmpty(t, ds.Master.Products)
}

func TestSingleLocationGetsEverything(t *testing.T) {
	ds := generate(t, func(c *config.Config) {
		c.NumTransactions = 500
		c.NumLocations = 1
		c.NumEmployees = 5
		c.LocationSplit = nil
	})
	assert.Len(t, ds.Transactions, 500)
	for _, tx := range ds.Transactions {
		assert.Equal(t, ds.Master.Locations[0].ID, tx.LocationID)
	}
}

func TestSplitTransactionsRemainder(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.NumTransactions = 10
	require.NoError(t, cfg.Resolve())

	master, err := masterdata.Generate(cfg, rand.New(rand.NewSource(cfg.Seed)))
	require.NoError(t, err)
	a, err := New(cfg, master)
	require.NoError(t, err)

	counts := a.splitTransactions()
	require.Len(t, counts, 8)
	// 10 over 8 locations: first two take 2, the rest take 1.
	assert.Equal(t, []int{2, 2, 1, 1, 1, 1, 1, 1}, counts)
}

func TestUnstaffedLocationRejected(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	master, err := masterdata.Generate(cfg, rand.New(rand.NewSource(cfg.Seed)))
	require.NoError(t, err)

	// Strip every employee of the first location off the roster.
	var kept []model.Employee
	for _, e := range master.Employees {
		if e.LocationID != master.Locations[0].ID {
			kept = append(kept, e)
		}
	}
	master.Employees = kept

	_, err = New(cfg, master)
	var cerr *model.ConsistencyError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "assembler", cerr.Stage)
}
