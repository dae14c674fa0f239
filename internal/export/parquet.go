// =============================================================================
// EPOS Data Generator - Columnar Export
// =============================================================================
//
// Writes the two transactional tables as snappy-compressed Parquet files,
// mirroring the delimited-text schema column for column. Master data is
// small enough that CSV and the workbook cover it; the columnar artifacts
// exist for the high-volume tables downstream analytics load.
//
// =============================================================================

package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"

	"github.com/eposforge/epos-datagen/internal/model"
)

// File names for the columnar artifacts.
const (
	TransactionsParquet = "transactions.parquet"
	ItemsParquet        = "transaction_items.parquet"
)

// WriteParquet writes transactions.parquet and transaction_items.parquet
// into dir.
func WriteParquet(dir string, ds *model.Dataset) error {
	txRows := make([]TransactionRow, len(ds.Transactions))
	itemCount := ds.ItemCount()
	itemRows := make([]ItemRow, 0, itemCount)
	for i := range ds.Transactions {
		txRows[i] = transactionRow(&ds.Transactions[i])
		for j := range ds.Transactions[i].Items {
			itemRows = append(itemRows, itemRow(&ds.Transactions[i].Items[j]))
		}
	}

	if err := writeParquetFile(filepath.Join(dir, TransactionsParquet), txRows); err != nil {
		return fmt.Errorf("failed to write %s: %w", TransactionsParquet, err)
	}
	if err := writeParquetFile(filepath.Join(dir, ItemsParquet), itemRows); err != nil {
		return fmt.Errorf("failed to write %s: %w", ItemsParquet, err)
	}
	return nil
}

// writeParquetFile writes one row slice as a snappy-compressed parquet file.
func writeParquetFile[T any](path string, rows []T) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := parquet.NewGenericWriter[T](f, parquet.Compression(&parquet.Snappy))
	if _, err := w.Write(rows); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

// ReadParquetTransactions loads the columnar transaction table, used by the
// round-trip checks in verification.
func ReadParquetTransactions(dir string) ([]TransactionRow, error) {
	f, err := os.Open(filepath.Join(dir, TransactionsParquet))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}

	pf, err := parquet.OpenFile(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}

	reader := parquet.NewGenericReader[TransactionRow](pf)
	defer reader.Close()

	rows := make([]TransactionRow, 0, pf.NumRows())
	buf := make([]TransactionRow, 1024)
	for {
		n, err := reader.Read(buf)
		rows = append(rows, buf[:n]...)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
	}
	return rows, nil
}
