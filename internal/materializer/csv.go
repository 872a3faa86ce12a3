// Package materializer serializes a resolved dataset to its on-disk
// tabular (CSV) and structured (JSON) forms. Column order and fixed-point
// money text are part of the contract; downstream loads depend on both.
package materializer

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/thien/ecom-seeder/internal/generator"
	"github.com/thien/ecom-seeder/internal/logger"
	"github.com/thien/ecom-seeder/internal/model"
	"go.uber.org/zap"
)

// Result reports one written table file.
type Result struct {
	Table string
	Path  string
	Rows  int
}

// WriteCSV writes one CSV file per entity table into dir, creating dir if
// needed. Files carry the canonical header row and one data row per record.
func WriteCSV(dir string, ds *generator.Dataset) ([]Result, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	tables := []struct {
		name    string
		columns []string
		records [][]string
	}{
		{model.TableUsers, model.UserColumns, userRecords(ds.Users)},
		{model.TableProducts, model.ProductColumns, productRecords(ds.Products)},
		{model.TableOrders, model.OrderColumns, orderRecords(ds.Orders)},
		{model.TableOrderItems, model.OrderItemColumns, itemRecords(ds.OrderItems)},
		{model.TablePayments, model.PaymentColumns, paymentRecords(ds.Payments)},
	}

	results := make([]Result, 0, len(tables))
	for _, t := range tables {
		path := filepath.Join(dir, t.name+".csv")
		if err := writeCSVFile(path, t.columns, t.records); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", path, err)
		}
		logger.Debug("Wrote table file",
			zap.String("table", t.name),
			zap.String("path", path),
			zap.Int("rows", len(t.records)))
		results = append(results, Result{Table: t.name, Path: path, Rows: len(t.records)})
	}
	return results, nil
}

func writeCSVFile(path string, header []string, records [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	for _, rec := range records {
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func userRecords(users []model.User) [][]string {
	out := make([][]string, len(users))
	for i, u := range users {
		out[i] = u.Record()
	}
	return out
}

func productRecords(products []model.Product) [][]string {
	out := make([][]string, len(products))
	for i, p := range products {
		out[i] = p.Record()
	}
	return out
}

func orderRecords(orders []model.Order) [][]string {
	out := make([][]string, len(orders))
	for i, o := range orders {
		out[i] = o.Record()
	}
	return out
}

func itemRecords(items []model.OrderItem) [][]string {
	out := make([][]string, len(items))
	for i, it := range items {
		out[i] = it.Record()
	}
	return out
}

func paymentRecords(payments []model.Payment) [][]string {
	out := make([][]string, len(payments))
	for i, p := range payments {
		out[i] = p.Record()
	}
	return out
}
