// =============================================================================
// EPOS Data Generator - Artifact Reader
// =============================================================================
//
// Loads a previously exported dataset back from the delimited-text artifacts
// so the verify and quality-test commands can operate on what was actually
// written to disk, not on an in-memory regeneration.
//
// =============================================================================

package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/eposforge/epos-datagen/internal/model"
)

// ReadDataset loads the six CSV artifacts from dir into a Dataset,
// re-nesting items under their transactions.
func ReadDataset(dir string) (*model.Dataset, error) {
	ds := &model.Dataset{}

	orgs, err := readTable(dir, OrganizationsCSV, 2)
	if err != nil {
		return nil, err
	}
	if len(orgs) > 0 {
		ds.Master.Organization = model.Organization{ID: orgs[0][0], Name: orgs[0][1]}
	}

	locs, err := readTable(dir, LocationsCSV, 5)
	if err != nil {
		return nil, err
	}
	for _, rec := range locs {
		ds.Master.Locations = append(ds.Master.Locations, model.Location{
			ID:             rec[0],
			OrganizationID: rec[1],
			Name:           rec[2],
			Type:           model.LocationType(rec[3]),
			City:           rec[4],
		})
	}

	emps, err := readTable(dir, EmployeesCSV, 6)
	if err != nil {
		return nil, err
	}
	for _, rec := range emps {
		hired, err := time.Parse(dateLayout, rec[5])
		if err != nil {
			return nil, fmt.Errorf("employee %s: bad hire_date %q: %w", rec[0], rec[5], err)
		}
		ds.Master.Employees = append(ds.Master.Employees, model.Employee{
			ID: rec[0], FirstName: rec[1], LastName: rec[2],
			Role: rec[3], LocationID: rec[4], HireDate: hired,
		})
	}

	prods, err := readTable(dir, ProductsCSV, 5)
	if err != nil {
		return nil, err
	}
	for _, rec := range prods {
		price, err := strconv.ParseFloat(rec[3], 64)
		if err != nil {
			return nil, fmt.Errorf("product %s: bad unit_price %q: %w", rec[0], rec[3], err)
		}
		cost, err := strconv.ParseFloat(rec[4], 64)
		if err != nil {
			return nil, fmt.Errorf("product %s: bad cost_price %q: %w", rec[0], rec[4], err)
		}
		ds.Master.Products = append(ds.Master.Products, model.Product{
			ID: rec[0], Name: rec[1], Category: model.Category(rec[2]),
			UnitPrice: price, CostPrice: cost,
		})
	}

	if err := readTransactions(dir, ds); err != nil {
		return nil, err
	}
	return ds, nil
}

// readTransactions loads transactions.csv and transaction_items.csv and
// joins the items back under their owning transactions.
func readTransactions(dir string, ds *model.Dataset) error {
	txRecs, err := readTable(dir, TransactionsCSV, 11)
	if err != nil {
		return err
	}

	index := make(map[string]int, len(txRecs))
	for _, rec := range txRecs {
		ts, err := time.Parse(timestampLayout, rec[3])
		if err != nil {
			return fmt.Errorf("transaction %s: bad timestamp %q: %w", rec[0], rec[3], err)
		}
		amounts, err := parseFloats(rec[0], rec[6:10])
		if err != nil {
			return err
		}
		tx := model.Transaction{
			ID:            rec[0],
			LocationID:    rec[1],
			EmployeeID:    rec[2],
			Timestamp:     ts,
			Status:        model.TransactionStatus(rec[4]),
			PaymentMethod: model.PaymentMethod(rec[5]),
			Subtotal:      amounts[0],
			Tax:           amounts[1],
			Discount:      amounts[2],
			TotalAmount:   amounts[3],
		}
		index[tx.ID] = len(ds.Transactions)
		ds.Transactions = append(ds.Transactions, tx)
	}

	itemRecs, err := readTable(dir, ItemsCSV, 6)
	if err != nil {
		return err
	}
	for _, rec := range itemRecs {
		line, err := strconv.Atoi(rec[1])
		if err != nil {
			return fmt.Errorf("item of %s: bad line_number %q: %w", rec[0], rec[1], err)
		}
		qty, err := strconv.Atoi(rec[3])
		if err != nil {
			return fmt.Errorf("item of %s: bad quantity %q: %w", rec[0], rec[3], err)
		}
		amounts, err := parseFloats(rec[0], rec[4:6])
		if err != nil {
			return err
		}
		item := model.TransactionItem{
			TransactionID: rec[0],
			LineNumber:    line,
			ProductID:     rec[2],
			Quantity:      qty,
			UnitPrice:     amounts[0],
			LineTotal:     amounts[1],
		}
		i, ok := index[item.TransactionID]
		if !ok {
			return fmt.Errorf("item references unknown transaction %s", item.TransactionID)
		}
		ds.Transactions[i].Items = append(ds.Transactions[i].Items, item)
	}
	return nil
}

// readTable reads one CSV artifact, skipping the header row and checking the
// column count.
func readTable(dir, name string, columns int) ([][]string, error) {
	f, err := os.Open(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = columns
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s is empty (missing header)", name)
	}
	return records[1:], nil
}

// parseFloats parses a run of monetary columns, attributing failures to the
// owning record id.
func parseFloats(id string, fields []string) ([]float64, error) {
	out := make([]float64, len(fields))
	for i, s := range fields {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("record %s: bad amount %q: %w", id, s, err)
		}
		out[i] = v
	}
	return out, nil
}
