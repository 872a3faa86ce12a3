package model

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// Text layouts used for every date/timestamp column, both in CSV files and
// in the store.
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
)

// PaymentStatus is the settlement state of a payment.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

// PaymentMethod is how a payment was made.
type PaymentMethod string

const (
	MethodCard         PaymentMethod = "card"
	MethodPaypal       PaymentMethod = "paypal"
	MethodBankTransfer PaymentMethod = "bank_transfer"
	MethodCOD          PaymentMethod = "cod"
)

// User is a registered customer.
type User struct {
	UserID    int    `json:"user_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	CreatedAt string `json:"created_at"`
}

// Product is a catalog item. Price is fixed once generated.
type Product struct {
	ProductID int             `json:"product_id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
}

// Order belongs to one user. TotalAmount is derived from the order's items,
// never drawn independently.
type Order struct {
	OrderID     int             `json:"order_id"`
	UserID      int             `json:"user_id"`
	OrderDate   string          `json:"order_date"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// OrderItem is one line of an order. UnitPrice is a snapshot of the
// product's price at generation time.
type OrderItem struct {
	OrderItemID int             `json:"order_item_id"`
	OrderID     int             `json:"order_id"`
	ProductID   int             `json:"product_id"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// Payment settles exactly one order. Amount always equals the owning
// order's TotalAmount.
type Payment struct {
	PaymentID int             `json:"payment_id"`
	OrderID   int             `json:"order_id"`
	Amount    decimal.Decimal `json:"amount"`
	Method    PaymentMethod   `json:"method"`
	Status    PaymentStatus   `json:"status"`
	PaidAt    string          `json:"paid_at"`
}

// Table names in FK-safe insert order. Loads process them front to back,
// clears cascade from parents down.
const (
	TableUsers      = "users"
	TableProducts   = "products"
	TableOrders     = "orders"
	TableOrderItems = "order_items"
	TablePayments   = "payments"
)

// Canonical column orders. Downstream consumers depend on both the names
// and positions, so these are the single source of truth for every CSV
// header and INSERT column list.
var (
	UserColumns      = []string{"user_id", "name", "email", "phone", "created_at"}
	ProductColumns   = []string{"product_id", "name", "category", "price", "stock"}
	OrderColumns     = []string{"order_id", "user_id", "order_date", "total_amount"}
	OrderItemColumns = []string{"order_item_id", "order_id", "product_id", "quantity", "unit_price"}
	PaymentColumns   = []string{"payment_id", "order_id", "amount", "method", "status", "paid_at"}
)

// ColumnsFor returns the canonical column order for a table.
func ColumnsFor(table string) []string {
	switch table {
	case TableUsers:
		return UserColumns
	case TableProducts:
		return ProductColumns
	case TableOrders:
		return OrderColumns
	case TableOrderItems:
		return OrderItemColumns
	case TablePayments:
		return PaymentColumns
	default:
		return nil
	}
}

// Record returns the row in canonical column order as fixed-point text.

func (u User) Record() []string {
	return []string{strconv.Itoa(u.UserID), u.Name, u.Email, u.Phone, u.CreatedAt}
}

func (p Product) Record() []string {
	return []string{strconv.Itoa(p.ProductID), p.Name, p.Category, p.Price.StringFixed(2), strconv.Itoa(p.Stock)}
}

func (o Order) Record() []string {
	return []string{strconv.Itoa(o.OrderID), strconv.Itoa(o.UserID), o.OrderDate, o.TotalAmount.StringFixed(2)}
}

func (i OrderItem) Record() []string {
	return []string{strconv.Itoa(i.OrderItemID), strconv.Itoa(i.OrderID), strconv.Itoa(i.ProductID), strconv.Itoa(i.Quantity), i.UnitPrice.StringFixed(2)}
}

func (p Payment) Record() []string {
	return []string{strconv.Itoa(p.PaymentID), strconv.Itoa(p.OrderID), p.Amount.StringFixed(2), string(p.Method), string(p.Status), p.PaidAt}
}
