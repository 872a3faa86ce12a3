package generator

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/thien/ecom-seeder/internal/model"
)

// Dataset is the authoritative in-memory result of one generation run.
// It is never mutated after BuildDataset returns.
type Dataset struct {
	Users      []model.User
	Products   []model.Product
	Orders     []model.Order
	OrderItems []model.OrderItem
	Payments   []model.Payment
}

// Counts returns per-table row counts keyed by table name.
func (d *Dataset) Counts() map[string]int {
	return map[string]int{
		model.TableUsers:      len(d.Users),
		model.TableProducts:   len(d.Products),
		model.TableOrders:     len(d.Orders),
		model.TableOrderItems: len(d.OrderItems),
		model.TablePayments:   len(d.Payments),
	}
}

// Validate re-checks every referential and derived-value invariant. A
// failure here is a programming error in the generator, not bad input.
func (d *Dataset) Validate() error {
	userIDs := make(map[int]bool, len(d.Users))
	for i, u := range d.Users {
		if u.UserID != i+1 {
			return fmt.Errorf("user at position %d has non-sequential user_id %d", i, u.UserID)
		}
		if u.Name == "" || u.Email == "" {
			return fmt.Errorf("user %d has an empty required field", u.UserID)
		}
		userIDs[u.UserID] = true
	}

	productIDs := make(map[int]bool, len(d.Products))
	for i, p := range d.Products {
		if p.ProductID != i+1 {
			return fmt.Errorf("product at position %d has non-sequential product_id %d", i, p.ProductID)
		}
		if p.Name == "" {
			return fmt.Errorf("product %d has an empty name", p.ProductID)
		}
		if !p.Price.IsPositive() {
			return fmt.Errorf("product %d has non-positive price %s", p.ProductID, p.Price)
		}
		productIDs[p.ProductID] = true
	}

	orderIDs := make(map[int]bool, len(d.Orders))
	for i, o := range d.Orders {
		if o.OrderID != i+1 {
			return fmt.Errorf("order at position %d has non-sequential order_id %d", i, o.OrderID)
		}
		if !userIDs[o.UserID] {
			return fmt.Errorf("order %d references missing user_id %d", o.OrderID, o.UserID)
		}
		orderIDs[o.OrderID] = true
	}

	itemTotals := make(map[int]decimal.Decimal, len(d.Orders))
	for _, it := range d.OrderItems {
		if !orderIDs[it.OrderID] {
			return fmt.Errorf("order_item %d references missing order_id %d", it.OrderItemID, it.OrderID)
		}
		if !productIDs[it.ProductID] {
			return fmt.Errorf("order_item %d references missing product_id %d", it.OrderItemID, it.ProductID)
		}
		if it.Quantity <= 0 {
			return fmt.Errorf("order_item %d has non-positive quantity %d", it.OrderItemID, it.Quantity)
		}
		line := it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))
		itemTotals[it.OrderID] = itemTotals[it.OrderID].Add(line)
	}

	for _, o := range d.Orders {
		if !o.TotalAmount.Equal(itemTotals[o.OrderID]) {
			return fmt.Errorf("order %d total_amount %s does not equal item sum %s",
				o.OrderID, o.TotalAmount.StringFixed(2), itemTotals[o.OrderID].StringFixed(2))
		}
	}

	paidOrders := make(map[int]bool, len(d.Payments))
	for _, p := range d.Payments {
		if !orderIDs[p.OrderID] {
			return fmt.Errorf("payment %d references missing order_id %d", p.PaymentID, p.OrderID)
		}
		if paidOrders[p.OrderID] {
			return fmt.Errorf("order %d has more than one payment", p.OrderID)
		}
		paidOrders[p.OrderID] = true
		if !p.Amount.Equal(d.Orders[p.OrderID-1].TotalAmount) {
			return fmt.Errorf("payment %d amount %s does not reconcile with order %d total_amount %s",
				p.PaymentID, p.Amount.StringFixed(2), p.OrderID, d.Orders[p.OrderID-1].TotalAmount.StringFixed(2))
		}
	}
	for _, o := range d.Orders {
		if !paidOrders[o.OrderID] {
			return fmt.Errorf("order %d has no payment", o.OrderID)
		}
	}

	return nil
}
