package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiscountPercent(t *testing.T) {
	tests := map[string]struct {
		price float64
		want  int
	}{
		"low tier":                      {price: 10_000, want: 10},
		"mid band still base tier":      {price: 25_000, want: 10},
		"upper edge of base tier":       {price: 40_000, want: 10},
		"just above base tier":          {price: 40_001, want: 25},
		"mid tier":                      {price: 120_000, want: 25},
		"exact high boundary falls out": {price: 500_000, want: 10},
		"high tier":                     {price: 600_000, want: 30},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, DiscountPercent(tc.price))
		})
	}
}

func TestOriginalPrice(t *testing.T) {
	tests := map[string]struct {
		price float64
		want  float64
	}{
		"ten percent tier": {price: 10_000, want: 11_111},
		"mid tier":         {price: 100_000, want: 133_333},
		"thirty percent":   {price: 600_000, want: 857_143},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, OriginalPrice(tc.price))
		})
	}
}

func TestOriginalPriceDeterministic(t *testing.T) {
	// The same charged price must derive the same "was" price wherever it
	// is rendered.
	for _, p := range []float64{1, 13_999.99, 14_000, 40_000, 499_999, 500_001} {
		assert.Equal(t, OriginalPrice(p), OriginalPrice(p), "price %v", p)
	}
}

func TestRound(t *testing.T) {
	assert.Equal(t, 13_000.0, Round(13_000.4))
	assert.Equal(t, 13_001.0, Round(13_000.5))
	assert.Equal(t, 0.0, Round(0))
}
