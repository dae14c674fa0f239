// =============================================================================
// EPOS Data Generator - Delimited Text Export
// =============================================================================
//
// Writes the six entity tables as comma-delimited text with a single header
// row each:
//
//   organizations.csv      locations.csv      employees.csv
//   products.csv           transactions.csv   transaction_items.csv
//
// =============================================================================

package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/eposforge/epos-datagen/internal/model"
)

// File names for the delimited-text artifacts.
const (
	OrganizationsCSV = "organizations.csv"
	LocationsCSV     = "locations.csv"
	EmployeesCSV     = "employees.csv"
	ProductsCSV      = "products.csv"
	TransactionsCSV  = "transactions.csv"
	ItemsCSV         = "transaction_items.csv"
)

// WriteCSV writes every entity table into dir.
func WriteCSV(dir string, ds *model.Dataset) error {
	writers := []struct {
		name string
		fn   func(*csv.Writer, *model.Dataset) error
	}{
		{OrganizationsCSV, writeOrganizations},
		{LocationsCSV, writeLocations},
		{EmployeesCSV, writeEmployees},
		{ProductsCSV, writeProducts},
		{TransactionsCSV, writeTransactions},
		{ItemsCSV, writeItems},
	}

	for _, w := range writers {
		if err := writeCSVFile(filepath.Join(dir, w.name), ds, w.fn); err != nil {
			return fmt.Errorf("failed to write %s: %w", w.name, err)
		}
	}
	return nil
}

// writeCSVFile opens the target file and streams one table through fn.
func writeCSVFile(path string, ds *model.Dataset, fn func(*csv.Writer, *model.Dataset) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := fn(w, ds); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func writeOrganizations(w *csv.Writer, ds *model.Dataset) error {
	if err := w.Write([]string{"organization_id", "business_name"}); err != nil {
		return err
	}
	return w.Write([]string{ds.Master.Organization.ID, ds.Master.Organization.Name})
}

func writeLocations(w *csv.Writer, ds *model.Dataset) error {
	if err := w.Write([]string{
		"location_id", "organization_id", "location_name", "location_type", "city",
	}); err != nil {
		return err
	}
	for _, l := range ds.Master.Locations {
		if err := w.Write([]string{l.ID, l.OrganizationID, l.Name, string(l.Type), l.City}); err != nil {
			return err
		}
	}
	return nil
}

func writeEmployees(w *csv.Writer, ds *model.Dataset) error {
	if err := w.Write([]string{
		"employee_id", "first_name", "last_name", "role", "location_id", "hire_date",
	}); err != nil {
		return err
	}
	for _, e := range ds.Master.Employees {
		if err := w.Write([]string{
			e.ID, e.FirstName, e.LastName, e.Role, e.LocationID,
			e.HireDate.Format(dateLayout),
		}); err != nil {
			return err
		}
	}
	return nil
}

func writeProducts(w *csv.Writer, ds *model.Dataset) error {
	if err := w.Write([]string{
		"product_id", "product_name", "product_category", "unit_price", "cost_price",
	}); err != nil {
		return err
	}
	for _, p := range ds.Master.Products {
		if err := w.Write([]string{
			p.ID, p.Name, string(p.Category), money(p.UnitPrice), money(p.CostPrice),
		}); err != nil {
			return err
		}
	}
	return nil
}

func writeTransactions(w *csv.Writer, ds *model.Dataset) error {
	if err := w.Write([]string{
		"transaction_id", "location_id", "employee_id", "timestamp",
		"transaction_status", "payment_method",
		"subtotal", "tax_total", "discount_total", "total_amount", "num_items",
	}); err != nil {
		return err
	}
	for i := range ds.Transactions {
		r := transactionRow(&ds.Transactions[i])
		if err := w.Write([]string{
			r.TransactionID, r.LocationID, r.EmployeeID, r.Timestamp,
			r.Status, r.PaymentMethod,
			money(r.Subtotal), money(r.Tax), money(r.Discount), money(r.TotalAmount),
			strconv.Itoa(int(r.NumItems)),
		}); err != nil {
			return err
		}
	}
	return nil
}

func writeItems(w *csv.Writer, ds *model.Dataset) error {
	if err := w.Write([]string{
		"transaction_id", "line_number", "product_id", "quantity", "unit_price", "line_total",
	}); err != nil {
		return err
	}
	for i := range ds.Transactions {
		for j := range ds.Transactions[i].Items {
			r := itemRow(&ds.Transactions[i].Items[j])
			if err := w.Write([]string{
				r.TransactionID, strconv.Itoa(int(r.LineNumber)), r.ProductID,
				strconv.Itoa(int(r.Quantity)), money(r.UnitPrice), money(r.LineTotal),
			}); err != nil {
				return err
			}
		}
	}
	return nil
}
