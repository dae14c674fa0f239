// =============================================================================
// EPOS Data Generator - Export Row Schemas
// =============================================================================
//
// Flat row types shared by the delimited-text and columnar writers. The
// in-memory entities map losslessly onto these schemas; the only nesting,
// Transaction -> items, becomes two linked tables joined by transaction_id.
//
// The column set and order here IS the export contract: the loader relies on
// it being stable across runs.
//
// =============================================================================

package export

import (
	"strconv"

	"github.com/eposforge/epos-datagen/internal/model"
)

// timestampLayout is the wire format for transaction timestamps.
const timestampLayout = "2006-01-02 15:04:05"

// dateLayout is the wire format for plain dates (hire dates).
const dateLayout = "2006-01-02"

// TransactionRow is the flat schema for one transaction.
type TransactionRow struct {
	TransactionID string  `parquet:"transaction_id"`
	LocationID    string  `parquet:"location_id"`
	EmployeeID    string  `parquet:"employee_id"`
	Timestamp     string  `parquet:"timestamp"`
	Status        string  `parquet:"transaction_status"`
	PaymentMethod string  `parquet:"payment_method"`
	Subtotal      float64 `parquet:"subtotal"`
	Tax           float64 `parquet:"tax_total"`
	Discount      float64 `parquet:"discount_total"`
	TotalAmount   float64 `parquet:"total_amount"`
	NumItems      int32   `parquet:"num_items"`
}

// ItemRow is the flat schema for one transaction line item.
type ItemRow struct {
	TransactionID string  `parquet:"transaction_id"`
	LineNumber    int32   `parquet:"line_number"`
	ProductID     string  `parquet:"product_id"`
	Quantity      int32   `parquet:"quantity"`
	UnitPrice     float64 `parquet:"unit_price"`
	LineTotal     float64 `parquet:"line_total"`
}

// transactionRow flattens one transaction.
func transactionRow(tx *model.Transaction) TransactionRow {
	return TransactionRow{
		TransactionID: tx.ID,
		LocationID:    tx.LocationID,
		EmployeeID:    tx.EmployeeID,
		Timestamp:     tx.Timestamp.Format(timestampLayout),
		Status:        string(tx.Status),
		PaymentMethod: string(tx.PaymentMethod),
		Subtotal:      tx.Subtotal,
		Tax:           tx.Tax,
		Discount:      tx.Discount,
		TotalAmount:   tx.TotalAmount,
		NumItems:      int32(len(tx.Items)),
	}
}

// itemRow flattens one line item.
func itemRow(item *model.TransactionItem) ItemRow {
	return ItemRow{
		TransactionID: item.TransactionID,
		LineNumber:    int32(item.LineNumber),
		ProductID:     item.ProductID,
		Quantity:      int32(item.Quantity),
		UnitPrice:     item.UnitPrice,
		LineTotal:     item.LineTotal,
	}
}

// money formats a monetary value with exactly two decimal places.
func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
