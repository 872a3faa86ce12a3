package generator

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/thien/ecom-seeder/internal/apperrors"
	"github.com/thien/ecom-seeder/internal/fake"
	"github.com/thien/ecom-seeder/internal/model"
)

// Payment status weights, in percent. Real checkouts mostly settle, so the
// distribution skews heavily toward completed.
var statusWeights = []struct {
	status model.PaymentStatus
	weight int
}{
	{model.PaymentCompleted, 80},
	{model.PaymentPending, 10},
	{model.PaymentFailed, 6},
	{model.PaymentRefunded, 4},
}

var methods = []model.PaymentMethod{
	model.MethodCard,
	model.MethodPaypal,
	model.MethodBankTransfer,
	model.MethodCOD,
}

// GenerateOrders produces orderCount orders together with their line items
// and payments. Every order references an existing user, every item an
// existing product, and for each order:
//
//	sum(item.quantity * item.unit_price) == order.total_amount == payment.amount
//
// The total is written back after the order's items exist; it is never an
// independent draw.
func (g *Generator) GenerateOrders(users []model.User, products []model.Product, orderCount int) ([]model.Order, []model.OrderItem, []model.Payment, error) {
	if orderCount <= 0 {
		return nil, nil, nil, fmt.Errorf("orders: %w (got %d)", apperrors.ErrInvalidCount, orderCount)
	}
	if len(users) == 0 {
		return nil, nil, nil, fmt.Errorf("orders need users to reference: %w", apperrors.ErrPrereqMissing)
	}
	if len(products) == 0 {
		return nil, nil, nil, fmt.Errorf("order items need products to reference: %w", apperrors.ErrPrereqMissing)
	}

	orderStart := g.now.AddDate(0, 0, -orderWindowDays)
	orderEnd := g.now.AddDate(0, 0, -1)

	orders := make([]model.Order, 0, orderCount)
	var items []model.OrderItem
	payments := make([]model.Payment, 0, orderCount)

	orderItemID := 1
	for orderID := 1; orderID <= orderCount; orderID++ {
		user := users[g.rng.Intn(len(users))]
		orderDate := fake.DateBetween(g.rng, orderStart, orderEnd)

		total := decimal.Zero
		for _, idx := range g.sampleProducts(len(products)) {
			product := products[idx]
			qty := minQuantity + g.rng.Intn(maxQuantity-minQuantity+1)
			// Snapshot of the product price; immutable from here on.
			unitPrice := product.Price
			total = total.Add(unitPrice.Mul(decimal.NewFromInt(int64(qty))))
			items = append(items, model.OrderItem{
				OrderItemID: orderItemID,
				OrderID:     orderID,
				ProductID:   product.ProductID,
				Quantity:    qty,
				UnitPrice:   unitPrice,
			})
			orderItemID++
		}

		orders = append(orders, model.Order{
			OrderID:     orderID,
			UserID:      user.UserID,
			OrderDate:   orderDate.Format(model.DateLayout),
			TotalAmount: total,
		})

		paidAt := orderDate.Add(g.paymentLag())
		payments = append(payments, model.Payment{
			PaymentID: orderID,
			OrderID:   orderID,
			Amount:    total,
			Method:    methods[g.rng.Intn(len(methods))],
			Status:    statusForRoll(g.rng.Intn(100)),
			PaidAt:    paidAt.Format(model.DateTimeLayout),
		})
	}

	return orders, items, payments, nil
}

// BuildDataset runs the full generation pipeline in dependency order and
// validates the result before handing it back. Requesting orders against an
// empty user or product set is a missing prerequisite, not a bad count:
// there would be no valid foreign key to assign.
func (g *Generator) BuildDataset(userCount, productCount, orderCount int) (*Dataset, error) {
	if orderCount > 0 {
		if userCount <= 0 {
			return nil, fmt.Errorf("%d orders requested with no users to reference: %w", orderCount, apperrors.ErrPrereqMissing)
		}
		if productCount <= 0 {
			return nil, fmt.Errorf("%d orders requested with no products to reference: %w", orderCount, apperrors.ErrPrereqMissing)
		}
	}

	users, err := g.GenerateUsers(userCount)
	if err != nil {
		return nil, err
	}
	products, err := g.GenerateProducts(productCount)
	if err != nil {
		return nil, err
	}
	orders, items, payments, err := g.GenerateOrders(users, products, orderCount)
	if err != nil {
		return nil, err
	}

	ds := &Dataset{
		Users:      users,
		Products:   products,
		Orders:     orders,
		OrderItems: items,
		Payments:   payments,
	}
	if err := ds.Validate(); err != nil {
		return nil, fmt.Errorf("generated dataset failed validation: %w", err)
	}
	return ds, nil
}

// sampleProducts picks a random number of distinct product indexes, so one
// order never lists the same product twice.
func (g *Generator) sampleProducts(productCount int) []int {
	lo := g.opts.MinItemsPerOrder
	hi := g.opts.MaxItemsPerOrder
	if hi > productCount {
		hi = productCount
	}
	if lo > hi {
		lo = hi
	}
	k := lo + g.rng.Intn(hi-lo+1)
	return g.rng.Perm(productCount)[:k]
}

func (g *Generator) paymentLag() time.Duration {
	return time.Duration(1+g.rng.Intn(maxPaymentLagHrs)) * time.Hour
}

// statusForRoll maps a uniform roll in [0,100) onto the weighted status
// table.
func statusForRoll(roll int) model.PaymentStatus {
	for _, sw := range statusWeights {
		if roll < sw.weight {
			return sw.status
		}
		roll -= sw.weight
	}
	return statusWeights[len(statusWeights)-1].status
}
