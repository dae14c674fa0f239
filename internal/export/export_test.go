package export

import (
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/eposforge/epos-datagen/internal/assembler"
	"github.com/eposforge/epos-datagen/internal/config"
	"github.com/eposforge/epos-datagen/internal/masterdata"
	"github.com/eposforge/epos-datagen/internal/model"
)

func generateDataset(t *testing.T) *model.Dataset {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.NumTransactions = 2000
	require.NoError(t, cfg.Resolve())

	master, err := masterdata.Generate(cfg, rand.New(rand.NewSource(cfg.Seed)))
	require.NoError(t, err)
	a, err := assembler.New(cfg, master)
	require.NoError(t, err)
	ds, err := a.Run()
	require.NoError(t, err)
	return ds
}

func TestCSVRoundTrip(t *testing.T) {
	ds := generateDataset(t)
	dir := t.TempDir()

	require.NoError(t, WriteCSV(dir, ds))

	got, err := ReadDataset(dir)
	require.NoError(t, err)

	// Every amount in the pipeline is already rounded to two decimals, so
	// the text round trip is lossless.
	assert.Equal(t, ds.Master.Organization, got.Master.Organization)
	assert.Equal(t, ds.Master.Locations, got.Master.Locations)
	assert.Equal(t, ds.Master.Products, got.Master.Products)
	assert.Equal(t, ds.Transactions, got.Transactions)

	require.Len(t, got.Master.Employees, len(ds.Master.Employees))
	for i, e := range ds.Master.Employees {
		assert.Equal(t, e.ID, got.Master.Employees[i].ID)
		assert.Equal(t, e.LocationID, got.Master.Employees[i].LocationID)
		assert.True(t, e.HireDate.Equal(got.Master.Employees[i].HireDate))
	}
}

func TestParquetRoundTrip(t *testing.T) {
	ds := generateDataset(t)
	dir := t.TempDir()

	require.NoError(t, WriteParquet(dir, ds))

	rows, err := ReadParquetTransactions(dir)
	require.NoError(t, err)
	require.Len(t, rows, len(ds.Transactions))

	for i := range ds.Transactions {
		tx := &ds.Transactions[i]
		assert.Equal(t, transactionRow(tx), rows[i])
	}
}

func TestWorkbookHasExpectedSheets(t *testing.T) {
	ds := generateDataset(t)
	dir := t.TempDir()

	require.NoError(t, WriteWorkbook(dir, ds))

	f, err := excelize.OpenFile(filepath.Join(dir, WorkbookXLSX))
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t,
		[]string{"Summary", "Locations", "Employees", "Products"},
		f.GetSheetList())

	// Header row of the product sheet.
	name, err := f.GetCellValue("Products", "A1")
	require.NoError(t, err)
	assert.Equal(t, "product_id", name)

	rows, err := f.GetRows("Products")
	require.NoError(t, err)
	assert.Len(t, rows, len(ds.Master.Products)+1)
}

func TestReadDatasetMissingArtifacts(t *testing.T) {
	_, err := ReadDataset(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), OrganizationsCSV)
}

func TestErrorTransactionRoundTripsDegraded(t *testing.T) {
	ds := generateDataset(t)

	var errTx *model.Transaction
	for i := range ds.Transactions {
		if ds.Transactions[i].Status == model.StatusError {
			errTx = &ds.Transactions[i]
			break
		}
	}
	if errTx == nil {
		t.Skip("seeded run produced no error transactions at this size")
	}

	dir := t.TempDir()
	require.NoError(t, WriteCSV(dir, ds))
	got, err := ReadDataset(dir)
	require.NoError(t, err)

	for i := range got.Transactions {
		if got.Transactions[i].ID != errTx.ID {
			continue
		}
		assert.Empty(t, got.Transactions[i].Items)
		assert.Empty(t, got.Transactions[i].PaymentMethod)
		assert.Zero(t, got.Transactions[i].TotalAmount)
		return
	}
	t.Fatalf("transaction %s missing from round trip", errTx.ID)
}

func TestMoneyFormatting(t *testing.T) {
	assert.Equal(t, "12.50", money(12.5))
	assert.Equal(t, "0.00", money(0))
	assert.Equal(t, "-3.99", money(-3.99))
}
