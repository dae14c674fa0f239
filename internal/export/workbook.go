// =============================================================================
// EPOS Data Generator - Master Data Workbook
// =============================================================================
//
// Writes an XLSX workbook with one sheet per master-data table plus a
// summary sheet, for operators who want to eyeball a run without loading
// the artifacts anywhere.
//
// =============================================================================

package export

import (
	"fmt"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/eposforge/epos-datagen/internal/model"
)

// WorkbookXLSX is the file name of the master-data workbook.
const WorkbookXLSX = "epos_dataset.xlsx"

// WriteWorkbook writes the master-data workbook into dir.
func WriteWorkbook(dir string, ds *model.Dataset) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", "Summary"); err != nil {
		return fmt.Errorf("failed to rename summary sheet: %w", err)
	}
	if err := writeSummarySheet(f, ds); err != nil {
		return err
	}
	if err := writeLocationSheet(f, ds); err != nil {
		return err
	}
	if err := writeEmployeeSheet(f, ds); err != nil {
		return err
	}
	if err := writeProductSheet(f, ds); err != nil {
		return err
	}

	path := filepath.Join(dir, WorkbookXLSX)
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// writeSummarySheet fills the run summary: entity counts and revenue from
// completed transactions.
func writeSummarySheet(f *excelize.File, ds *model.Dataset) error {
	completedRevenue := 0.0
	for i := range ds.Transactions {
		if ds.Transactions[i].Status == model.StatusCompleted {
			completedRevenue += ds.Transactions[i].TotalAmount
		}
	}

	rows := [][]interface{}{
		{"Organization", ds.Master.Organization.Name},
		{"Locations", len(ds.Master.Locations)},
		{"Employees", len(ds.Master.Employees)},
		{"Products", len(ds.Master.Products)},
		{"Transactions", len(ds.Transactions)},
		{"Line items", ds.ItemCount()},
		{"Completed revenue (GBP)", model.RoundMoney(completedRevenue)},
	}
	return writeRows(f, "Summary", rows)
}

func writeLocationSheet(f *excelize.File, ds *model.Dataset) error {
	if _, err := f.NewSheet("Locations"); err != nil {
		return err
	}
	rows := [][]interface{}{
		{"location_id", "location_name", "location_type", "city"},
	}
	for _, l := range ds.Master.Locations {
		rows = append(rows, []interface{}{l.ID, l.Name, string(l.Type), l.City})
	}
	return writeRows(f, "Locations", rows)
}

func writeEmployeeSheet(f *excelize.File, ds *model.Dataset) error {
	if _, err := f.NewSheet("Employees"); err != nil {
		return err
	}
	rows := [][]interface{}{
		{"employee_id", "name", "role", "location_id", "hire_date"},
	}
	for _, e := range ds.Master.Employees {
		rows = append(rows, []interface{}{
			e.ID, e.Name(), e.Role, e.LocationID, e.HireDate.Format(dateLayout),
		})
	}
	return writeRows(f, "Employees", rows)
}

func writeProductSheet(f *excelize.File, ds *model.Dataset) error {
	if _, err := f.NewSheet("Products"); err != nil {
		return err
	}
	rows := [][]interface{}{
		{"product_id", "product_name", "product_category", "unit_price", "cost_price"},
	}
	for _, p := range ds.Master.Products {
		rows = append(rows, []interface{}{
			p.ID, p.Name, string(p.Category), p.UnitPrice, p.CostPrice,
		})
	}
	return writeRows(f, "Products", rows)
}

// writeRows writes a rectangular block starting at A1.
func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for r, row := range rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
	}
	return nil
}
