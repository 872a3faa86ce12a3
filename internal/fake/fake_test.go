package fake

import (
	"math/rand"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeterministicForSeed(t *testing.T) {
	a := rand.New(rand.NewSource(9))
	b := rand.New(rand.NewSource(9))

	for i := 0; i < 20; i++ {
		fa, la := FullName(a)
		fb, lb := FullName(b)
		assert.Equal(t, fa, fb)
		assert.Equal(t, la, lb)
		assert.Equal(t, Phone(a), Phone(b))
		assert.Equal(t, ProductName(a), ProductName(b))
	}
}

func TestEmailFormat(t *testing.T) {
	assert.Equal(t, "ava.chen7@example.com", Email("Ava", "Chen", 7))
}

func TestPhoneFormat(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	re := regexp.MustCompile(`^555-[2-9]\d{2}-\d{4}$`)
	for i := 0; i < 50; i++ {
		assert.Regexp(t, re, Phone(rng))
	}
}

func TestDateBetweenStaysInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	start := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 100; i++ {
		d := DateBetween(rng, start, end)
		require.False(t, d.Before(start), "%s before window", d)
		require.False(t, d.After(end), "%s after window", d)
	}
}

func TestDateBetweenDegenerateWindow(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	at := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, at, DateBetween(rng, at, at))
	assert.Equal(t, at, DateBetween(rng, at, at.Add(-time.Hour)))
}
