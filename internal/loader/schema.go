package loader

import (
	"context"
	"fmt"

	"github.com/thien/ecom-seeder/internal/logger"
)

// Store DDL. Mirrors the declarative definitions under ent/schema; money
// columns are NUMERIC(10,2) so totals survive a round trip exactly.
var schemaDDL = []string{
	`CREATE TABLE IF NOT EXISTS users (
		user_id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		phone TEXT,
		created_at TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		product_id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		category TEXT,
		price NUMERIC(10,2) NOT NULL,
		stock INTEGER
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		order_id INTEGER PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users(user_id),
		order_date TEXT,
		total_amount NUMERIC(10,2) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		order_item_id INTEGER PRIMARY KEY,
		order_id INTEGER NOT NULL REFERENCES orders(order_id),
		product_id INTEGER NOT NULL REFERENCES products(product_id),
		quantity INTEGER NOT NULL,
		unit_price NUMERIC(10,2) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS payments (
		payment_id INTEGER PRIMARY KEY,
		order_id INTEGER NOT NULL UNIQUE REFERENCES orders(order_id),
		amount NUMERIC(10,2) NOT NULL,
		method TEXT,
		status TEXT,
		paid_at TEXT
	)`,
}

// EnsureSchema creates the entity tables if they do not exist yet.
func (l *Loader) EnsureSchema(ctx context.Context) error {
	for _, ddl := range schemaDDL {
		if _, err := l.db.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	logger.Debug("Store schema ensured")
	return nil
}
