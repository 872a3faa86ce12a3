package materializer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/thien/ecom-seeder/internal/generator"
	"github.com/thien/ecom-seeder/internal/model"
)

// WriteJSON writes one array-of-records JSON document per entity alongside
// the CSVs. Field names match the CSV headers.
func WriteJSON(dir string, ds *generator.Dataset) ([]Result, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	tables := []struct {
		name string
		rows any
		n    int
	}{
		{model.TableUsers, ds.Users, len(ds.Users)},
		{model.TableProducts, ds.Products, len(ds.Products)},
		{model.TableOrders, ds.Orders, len(ds.Orders)},
		{model.TableOrderItems, ds.OrderItems, len(ds.OrderItems)},
		{model.TablePayments, ds.Payments, len(ds.Payments)},
	}

	results := make([]Result, 0, len(tables))
	for _, t := range tables {
		path := filepath.Join(dir, t.name+".json")
		data, err := json.MarshalIndent(t.rows, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %s: %w", t.name, err)
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", path, err)
		}
		results = append(results, Result{Table: t.name, Path: path, Rows: t.n})
	}
	return results, nil
}
