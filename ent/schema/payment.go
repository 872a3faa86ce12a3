package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"
)

// Payment holds the schema definition for the Payment entity. One payment
// settles exactly one order.
type Payment struct {
	ent.Schema
}

// Fields of the Payment.
func (Payment) Fields() []ent.Field {
	return []ent.Field{
		field.Int("order_id").
			Unique(),
		// Always equals the owning order's total_amount.
		field.Float("amount").
			SchemaType(map[string]string{"postgres": "numeric(10,2)"}),
		field.Enum("method").
			Values("card", "paypal", "bank_transfer", "cod"),
		field.Enum("status").
			Values("pending", "completed", "failed", "refunded"),
		field.String("paid_at").
			Optional(),
	}
}

// Edges of the Payment.
func (Payment) Edges() []ent.Edge {
	return []ent.Edge{
		edge.From("order", Order.Type).
			Ref("payment").
			Field("order_id").
			Unique().
			Required(),
	}
}
