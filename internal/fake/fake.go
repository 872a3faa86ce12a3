// Package fake synthesizes plausible attribute values for fixture rows.
// All draws go through an injected *rand.Rand so a fixed seed reproduces
// the exact same values.
package fake

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

var firstNames = []string{
	"Ava", "Liam", "Noah", "Olivia", "Ethan", "Sophia",
	"Mason", "Emma", "Isabella", "Lucas", "Mia", "Elijah",
}

var lastNames = []string{
	"Thompson", "Rodriguez", "Patel", "Chen", "Walker", "Nguyen",
	"Johnson", "Garcia", "Wright", "Kim", "Davis", "Bennett",
}

var productAdjectives = []string{
	"Aurora", "Summit", "TrailRunner", "Cypress", "Horizon", "Breeze", "Cascade", "Drift",
}

var productNouns = []string{
	"Laptop", "Headphones", "Smartwatch", "Coffee Grinder",
	"Standing Desk", "Air Purifier", "Water Bottle", "Wireless Mouse",
}

var productCategories = []string{
	"Electronics", "Wearables", "Kitchen", "Furniture", "Home", "Outdoors", "Accessories",
}

// FullName returns a "First Last" person name.
func FullName(rng *rand.Rand) (first, last string) {
	return pick(rng, firstNames), pick(rng, lastNames)
}

// Email builds a deterministic address from a name and a uniquifying id.
func Email(first, last string, id int) string {
	return strings.ToLower(fmt.Sprintf("%s.%s%d@example.com", first, last, id))
}

// Phone returns a 555 exchange number that can never collide with a real one.
func Phone(rng *rand.Rand) string {
	return fmt.Sprintf("555-%d-%04d", 200+rng.Intn(800), rng.Intn(10000))
}

// ProductName returns an adjective-noun catalog name.
func ProductName(rng *rand.Rand) string {
	return pick(rng, productAdjectives) + " " + pick(rng, productNouns)
}

// Category returns a catalog category.
func Category(rng *rand.Rand) string {
	return pick(rng, productCategories)
}

// DateBetween returns a uniformly random instant in [start, end].
func DateBetween(rng *rand.Rand, start, end time.Time) time.Time {
	if !end.After(start) {
		return start
	}
	span := int64(end.Sub(start) / time.Second)
	return start.Add(time.Duration(rng.Int63n(span+1)) * time.Second)
}

func pick(rng *rand.Rand, values []string) string {
	return values[rng.Intn(len(values))]
}
