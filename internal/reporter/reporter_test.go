package reporter

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRows() []Row {
	return []Row{
		{
			UserID: 1, Name: "Ava Chen", OrderID: 1, ProductName: "Aurora Laptop",
			Quantity: 2, UnitPrice: "499.99", TotalAmount: "1024.97",
			PaymentStatus: "completed", PaymentMethod: "card",
		},
		{
			UserID: 1, Name: "Ava Chen", OrderID: 1, ProductName: "Drift Water Bottle",
			Quantity: 1, UnitPrice: "24.99", TotalAmount: "1024.97",
			PaymentStatus: "completed", PaymentMethod: "card",
		},
		{
			UserID: 3, Name: "Liam Patel", OrderID: 2, ProductName: "Summit Headphones",
			Quantity: 5, UnitPrice: "89.50", TotalAmount: "447.50",
			PaymentStatus: "pending", PaymentMethod: "bank_transfer",
		},
	}
}

func TestRenderLayout(t *testing.T) {
	out := Render(sampleRows())
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	// Header, divider, one line per row.
	require.Len(t, lines, 5)

	for _, h := range Headers {
		assert.Contains(t, lines[0], h)
	}
	assert.Regexp(t, `^-+(-\+-)?`, lines[1])
	assert.NotContains(t, lines[1], "|")

	// All lines are padded to the same width.
	for i := 1; i < len(lines); i++ {
		assert.Equal(t, len(lines[0]), len(lines[i]), "line %d width", i)
	}

	assert.Contains(t, lines[2], "Aurora Laptop")
	assert.Contains(t, lines[4], "bank_transfer")
}

func TestRenderIsStable(t *testing.T) {
	a := Render(sampleRows())
	b := Render(sampleRows())
	assert.Equal(t, a, b)
}

func TestRenderEmpty(t *testing.T) {
	out := Render(nil)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "payment_method")
}

func TestRunScansJoinedRows(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows(Headers).
		AddRow(1, "Ava Chen", 1, "Aurora Laptop", 2, "499.99", "1024.97", "completed", "card").
		AddRow(1, "Ava Chen", 1, "Drift Water Bottle", 1, "24.99", "1024.97", "completed", "card")
	mock.ExpectQuery(reportQuery).WillReturnRows(rows)

	got, err := New(db).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, Row{
		UserID: 1, Name: "Ava Chen", OrderID: 1, ProductName: "Aurora Laptop",
		Quantity: 2, UnitPrice: "499.99", TotalAmount: "1024.97",
		PaymentStatus: "completed", PaymentMethod: "card",
	}, got[0])
	assert.Equal(t, "Drift Water Bottle", got[1].ProductName)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRunEmptyStore(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(reportQuery).WillReturnRows(sqlmock.NewRows(Headers))

	got, err := New(db).Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRunQueryError(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(reportQuery).WillReturnError(errors.New("relation does not exist"))

	_, err = New(db).Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "report query failed")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReportQueryShape(t *testing.T) {
	// The query must project exactly the report's columns in order and keep
	// a deterministic sort.
	for _, col := range Headers {
		assert.Contains(t, reportQuery, col)
	}
	assert.Contains(t, reportQuery, "ORDER BY o.order_id, oi.order_item_id")
	upper := strings.ToUpper(reportQuery)
	assert.NotContains(t, upper, "LEFT JOIN")
	assert.NotContains(t, upper, "INSERT")
	assert.NotContains(t, upper, "UPDATE")
	assert.NotContains(t, upper, "DELETE")
}
