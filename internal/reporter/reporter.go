// Package reporter runs the one fixed analytics join against the loaded
// store and renders the result as a fixed-width text table.
package reporter

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/thien/ecom-seeder/internal/logger"
	"go.uber.org/zap"
)

// Reporter issues the read-only report query.
type Reporter struct {
	db *sql.DB
}

// New creates a reporter over an open store connection.
func New(db *sql.DB) *Reporter {
	return &Reporter{db: db}
}

// Row is one line of the denormalized report: one output row per order item.
type Row struct {
	UserID        int
	Name          string
	OrderID       int
	ProductName   string
	Quantity      int
	UnitPrice     string
	TotalAmount   string
	PaymentStatus string
	PaymentMethod string
}

// Headers is the exact, ordered column set of the report output.
var Headers = []string{
	"user_id", "name", "order_id", "product_name", "quantity",
	"unit_price", "total_amount", "payment_status", "payment_method",
}

// Every order item yields one row; users, orders, and payments are joined
// via required FKs, so nothing drops out as long as the generated data was
// consistent. Ordering is fixed so repeated runs render identically.
const reportQuery = `
	SELECT
		u.user_id,
		u.name,
		o.order_id,
		p.name AS product_name,
		oi.quantity,
		to_char(oi.unit_price, 'FM999999990.00') AS unit_price,
		to_char(o.total_amount, 'FM999999990.00') AS total_amount,
		pay.status AS payment_status,
		pay.method AS payment_method
	FROM order_items oi
	JOIN orders o ON oi.order_id = o.order_id
	JOIN users u ON o.user_id = u.user_id
	JOIN products p ON oi.product_id = p.product_id
	JOIN payments pay ON pay.order_id = o.order_id
	ORDER BY o.order_id, oi.order_item_id`

// Run executes the report join and scans all rows.
func (r *Reporter) Run(ctx context.Context) ([]Row, error) {
	rows, err := r.db.QueryContext(ctx, reportQuery)
	if err != nil {
		return nil, fmt.Errorf("report query failed: %w", err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var row Row
		if err := rows.Scan(
			&row.UserID, &row.Name, &row.OrderID, &row.ProductName,
			&row.Quantity, &row.UnitPrice, &row.TotalAmount,
			&row.PaymentStatus, &row.PaymentMethod,
		); err != nil {
			return nil, fmt.Errorf("failed to scan report row: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during report iteration: %w", err)
	}

	logger.Info("Report query completed", zap.Int("rows", len(out)))
	return out, nil
}

// Render lays the rows out as a fixed-width table with a header divider.
func Render(rows []Row) string {
	cells := make([][]string, len(rows))
	for i, r := range rows {
		cells[i] = []string{
			fmt.Sprintf("%d", r.UserID), r.Name, fmt.Sprintf("%d", r.OrderID),
			r.ProductName, fmt.Sprintf("%d", r.Quantity),
			r.UnitPrice, r.TotalAmount, r.PaymentStatus, r.PaymentMethod,
		}
	}

	widths := make([]int, len(Headers))
	for i, h := range Headers {
		widths[i] = len(h)
	}
	for _, row := range cells {
		for i, col := range row {
			if len(col) > widths[i] {
				widths[i] = len(col)
			}
		}
	}

	var b strings.Builder
	writeRow := func(row []string) {
		parts := make([]string, len(row))
		for i, col := range row {
			parts[i] = fmt.Sprintf("%-*s", widths[i], col)
		}
		b.WriteString(strings.Join(parts, " | "))
		b.WriteString("\n")
	}

	writeRow(Headers)
	dividers := make([]string, len(widths))
	for i, w := range widths {
		dividers[i] = strings.Repeat("-", w)
	}
	b.WriteString(strings.Join(dividers, "-+-"))
	b.WriteString("\n")
	for _, row := range cells {
		writeRow(row)
	}
	return b.String()
}
