package loader

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thien/ecom-seeder/internal/apperrors"
	"github.com/thien/ecom-seeder/internal/generator"
	"github.com/thien/ecom-seeder/internal/materializer"
	"github.com/thien/ecom-seeder/internal/model"
)

func materialize(t *testing.T) (string, *generator.Dataset) {
	t.Helper()
	opts := generator.DefaultOptions()
	opts.Now = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	ds, err := generator.New(77, opts).BuildDataset(5, 4, 12)
	require.NoError(t, err)

	dir := t.TempDir()
	_, err = materializer.WriteCSV(dir, ds)
	require.NoError(t, err)
	return dir, ds
}

func TestReadTableRoundTrip(t *testing.T) {
	dir, ds := materialize(t)

	counts := ds.Counts()
	for _, table := range []string{
		model.TableUsers, model.TableProducts, model.TableOrders,
		model.TableOrderItems, model.TablePayments,
	} {
		rows, err := readTable(dir, table)
		require.NoError(t, err, "table %s", table)
		assert.Equal(t, counts[table], len(rows), "row count for %s", table)
	}
}

func TestReadTablePreservesMoneyExactly(t *testing.T) {
	dir, ds := materialize(t)

	rows, err := readTable(dir, model.TableOrders)
	require.NoError(t, err)
	require.Len(t, rows, len(ds.Orders))

	for i, row := range rows {
		total, ok := row[3].(decimal.Decimal)
		require.True(t, ok, "total_amount should parse to decimal")
		assert.True(t, total.Equal(ds.Orders[i].TotalAmount),
			"order %d: read %s, generated %s", i+1, total, ds.Orders[i].TotalAmount)
	}

	payRows, err := readTable(dir, model.TablePayments)
	require.NoError(t, err)
	for i, row := range payRows {
		amount := row[2].(decimal.Decimal)
		assert.True(t, amount.Equal(ds.Payments[i].Amount))
	}
}

func TestReadTableMissingFile(t *testing.T) {
	_, err := readTable(t.TempDir(), model.TableUsers)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrPrereqMissing)
}

func TestReadTableRejectsWrongHeader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "users.csv")
	require.NoError(t, os.WriteFile(path, []byte("id,name,email,phone,created_at\n1,A,a@example.com,555,2026-01-01\n"), 0644))

	_, err := readTable(dir, model.TableUsers)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"user_id"`)
}

func TestReadTableRejectsBadValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "orders.csv")
	require.NoError(t, os.WriteFile(path, []byte("order_id,user_id,order_date,total_amount\n1,2,2026-01-01,not-money\n"), 0644))

	_, err := readTable(dir, model.TableOrders)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "total_amount")
}
