package generator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thien/ecom-seeder/internal/apperrors"
	"github.com/thien/ecom-seeder/internal/model"
)

func TestBuildDatasetScenario(t *testing.T) {
	// 3 users, 2 products, 5 orders with a fixed seed.
	ds, err := New(7, testOptions()).BuildDataset(3, 2, 5)
	require.NoError(t, err)

	require.Len(t, ds.Users, 3)
	require.Len(t, ds.Products, 2)
	require.Len(t, ds.Orders, 5)
	require.Len(t, ds.Payments, 5)

	itemsPerOrder := make(map[int]int)
	for _, it := range ds.OrderItems {
		itemsPerOrder[it.OrderID]++
	}
	for _, o := range ds.Orders {
		n := itemsPerOrder[o.OrderID]
		assert.GreaterOrEqual(t, n, 1, "order %d has no items", o.OrderID)
		assert.LessOrEqual(t, n, 2, "order %d has more items than distinct products", o.OrderID)
	}
}

func TestOrderTotalsReconcile(t *testing.T) {
	ds, err := New(99, testOptions()).BuildDataset(25, 15, 40)
	require.NoError(t, err)

	sums := make(map[int]decimal.Decimal)
	for _, it := range ds.OrderItems {
		line := it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))
		sums[it.OrderID] = sums[it.OrderID].Add(line)
	}

	paymentByOrder := make(map[int]model.Payment)
	for _, p := range ds.Payments {
		_, dup := paymentByOrder[p.OrderID]
		require.False(t, dup, "order %d has two payments", p.OrderID)
		paymentByOrder[p.OrderID] = p
	}

	for _, o := range ds.Orders {
		assert.True(t, o.TotalAmount.Equal(sums[o.OrderID]),
			"order %d: total %s != item sum %s", o.OrderID, o.TotalAmount, sums[o.OrderID])

		pay, ok := paymentByOrder[o.OrderID]
		require.True(t, ok, "order %d has no payment", o.OrderID)
		assert.True(t, pay.Amount.Equal(o.TotalAmount),
			"order %d: payment %s != total %s", o.OrderID, pay.Amount, o.TotalAmount)
	}
}

func TestForeignKeysAlwaysResolve(t *testing.T) {
	for _, n := range []int{1, 10, 200, 1000} {
		ds, err := New(int64(n), testOptions()).BuildDataset(n, minInt(n, 50), n)
		require.NoError(t, err)
		// Validate covers FK resolution, derived totals, payment 1:1 and
		// sequential ids in one pass.
		require.NoError(t, ds.Validate(), "dataset of size %d", n)
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func TestOrdersRequirePrerequisites(t *testing.T) {
	g := New(5, testOptions())
	users, err := g.GenerateUsers(3)
	require.NoError(t, err)
	products, err := g.GenerateProducts(3)
	require.NoError(t, err)

	tests := []struct {
		name     string
		users    []model.User
		products []model.Product
	}{
		{"no users", nil, products},
		{"no products", users, nil},
		{"neither", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, err := g.GenerateOrders(tt.users, tt.products, 40)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrPrereqMissing)
		})
	}
}

func TestBuildDatasetWithoutPrerequisitesFailsPrereq(t *testing.T) {
	tests := []struct {
		name     string
		users    int
		products int
	}{
		{"no users", 0, 15},
		{"no products", 25, 0},
		{"neither", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(1, testOptions()).BuildDataset(tt.users, tt.products, 40)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrPrereqMissing)
			assert.NotErrorIs(t, err, apperrors.ErrInvalidCount)
		})
	}
}

func TestOrdersRejectNonPositiveCount(t *testing.T) {
	g := New(5, testOptions())
	users, _ := g.GenerateUsers(3)
	products, _ := g.GenerateProducts(3)

	_, _, _, err := g.GenerateOrders(users, products, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidCount)
}

func TestEmptyOrdersWhenConfigured(t *testing.T) {
	opts := testOptions()
	opts.MinItemsPerOrder = 0
	opts.MaxItemsPerOrder = 0

	ds, err := New(11, opts).BuildDataset(5, 5, 10)
	require.NoError(t, err)

	require.Empty(t, ds.OrderItems)
	for _, o := range ds.Orders {
		assert.True(t, o.TotalAmount.IsZero())
	}
	for _, p := range ds.Payments {
		assert.True(t, p.Amount.IsZero())
	}
}

func TestLineItemsUseDistinctProducts(t *testing.T) {
	ds, err := New(3, testOptions()).BuildDataset(10, 4, 50)
	require.NoError(t, err)

	seen := make(map[[2]int]bool)
	for _, it := range ds.OrderItems {
		key := [2]int{it.OrderID, it.ProductID}
		require.False(t, seen[key], "order %d lists product %d twice", it.OrderID, it.ProductID)
		seen[key] = true
	}
}

func TestStatusForRoll(t *testing.T) {
	tests := []struct {
		roll int
		want model.PaymentStatus
	}{
		{0, model.PaymentCompleted},
		{79, model.PaymentCompleted},
		{80, model.PaymentPending},
		{89, model.PaymentPending},
		{90, model.PaymentFailed},
		{95, model.PaymentFailed},
		{96, model.PaymentRefunded},
		{99, model.PaymentRefunded},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusForRoll(tt.roll), "roll %d", tt.roll)
	}
}
