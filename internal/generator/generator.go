// Package generator synthesizes the in-memory dataset. Entity generation is
// deterministic for a fixed seed, and every cross-table reference is
// resolved here before anything is written out.
package generator

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
	"github.com/thien/ecom-seeder/internal/apperrors"
	"github.com/thien/ecom-seeder/internal/fake"
	"github.com/thien/ecom-seeder/internal/model"
)

// Bounded value ranges for generated fields.
const (
	minPriceCents = 100   // 1.00
	maxPriceCents = 50000 // 500.00
	minQuantity   = 1
	maxQuantity   = 5
	minStock      = 20
	maxStock      = 400

	orderWindowDays   = 120
	userJoinedMinDays = 10
	userJoinedMaxDays = 365
	maxPaymentLagHrs  = 48
)

// Options control the knobs the data model leaves open.
type Options struct {
	// MinItemsPerOrder may be 0 to allow empty orders; defaults keep every
	// order at 1-4 line items.
	MinItemsPerOrder int
	MaxItemsPerOrder int
	// Now anchors all date windows; zero means the wall clock.
	Now time.Time
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{MinItemsPerOrder: 1, MaxItemsPerOrder: 4}
}

// Generator produces validated entity rows from a seeded random source.
// It is single-use per run; ids restart at 1 for each entity type.
type Generator struct {
	rng  *rand.Rand
	opts Options
	now  time.Time
}

// New creates a generator. The same seed and options always produce the
// same dataset.
func New(seed int64, opts Options) *Generator {
	now := opts.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}
	if opts.MaxItemsPerOrder < opts.MinItemsPerOrder {
		opts.MaxItemsPerOrder = opts.MinItemsPerOrder
	}
	return &Generator{
		rng:  rand.New(rand.NewSource(seed)),
		opts: opts,
		now:  now,
	}
}

// GenerateUsers produces count users with sequential ids starting at 1.
func (g *Generator) GenerateUsers(count int) ([]model.User, error) {
	if count <= 0 {
		return nil, fmt.Errorf("users: %w (got %d)", apperrors.ErrInvalidCount, count)
	}

	joinStart := g.now.AddDate(0, 0, -userJoinedMaxDays)
	joinEnd := g.now.AddDate(0, 0, -userJoinedMinDays)

	users := make([]model.User, 0, count)
	for id := 1; id <= count; id++ {
		first, last := fake.FullName(g.rng)
		joined := fake.DateBetween(g.rng, joinStart, joinEnd)
		users = append(users, model.User{
			UserID:    id,
			Name:      first + " " + last,
			Email:     fake.Email(first, last, id),
			Phone:     fake.Phone(g.rng),
			CreatedAt: joined.Format(model.DateLayout),
		})
	}
	return users, nil
}

// GenerateProducts produces count products with sequential ids starting
// at 1. Prices land in [1.00, 500.00] with exactly two decimals and are
// never mutated afterwards.
func (g *Generator) GenerateProducts(count int) ([]model.Product, error) {
	if count <= 0 {
		return nil, fmt.Errorf("products: %w (got %d)", apperrors.ErrInvalidCount, count)
	}

	products := make([]model.Product, 0, count)
	for id := 1; id <= count; id++ {
		cents := minPriceCents + g.rng.Int63n(maxPriceCents-minPriceCents+1)
		products = append(products, model.Product{
			ProductID: id,
			Name:      fake.ProductName(g.rng),
			Category:  fake.Category(g.rng),
			Price:     decimal.New(cents, -2),
			Stock:     minStock + g.rng.Intn(maxStock-minStock+1),
		})
	}
	return products, nil
}
