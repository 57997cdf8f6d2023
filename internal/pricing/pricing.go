// Package pricing derives display prices for the storefront.
//
// Every product card and detail view shows a "was" price next to the
// charged price. The "was" price is never stored; it is derived from the
// charged price with a fixed tier table, so the same input always renders
// the same way everywhere.
package pricing

import "math"

// Tier boundaries for the derived discount, in RSD.
const (
	midTierFloor  = 40_000
	highTierFloor = 500_000
)

// DiscountPercent returns the discount tier for a charged price.
// Prices up to 40,000 fall into the base 10% tier.
func DiscountPercent(price float64) int {
	switch {
	case price > highTierFloor:
		return 30
	case price > midTierFloor && price < highTierFloor:
		return 25
	default:
		return 10
	}
}

// OriginalPrice derives the pre-discount price from the charged price,
// rounded to the nearest dinar.
func OriginalPrice(price float64) float64 {
	d := float64(DiscountPercent(price)) / 100
	return math.Round(price / (1 - d))
}

// Round rounds a monetary amount to the nearest currency unit for display.
func Round(amount float64) float64 {
	return math.Round(amount)
}
