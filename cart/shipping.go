package cart

import "github.com/shopspring/decimal"

// ShippingFunc prices delivery for a non-empty cart with the given subtotal.
// It must be pure so the policy can be swapped without touching cart state.
type ShippingFunc func(subtotal decimal.Decimal) decimal.Decimal

// FlatRate charges fee regardless of subtotal.
func FlatRate(fee decimal.Decimal) ShippingFunc {
	return func(decimal.Decimal) decimal.Decimal {
		return fee
	}
}

// FreeAbove ships free once subtotal reaches threshold, else charges fee.
func FreeAbove(threshold, fee decimal.Decimal) ShippingFunc {
	flat := FlatRate(fee)
	return func(subtotal decimal.Decimal) decimal.Decimal {
		if subtotal.GreaterThanOrEqual(threshold) {
			return decimal.Zero
		}
		return flat(subtotal)
	}
}

// Policy picks FreeAbove when a positive threshold is configured.
func Policy(fee, freeThreshold decimal.Decimal) ShippingFunc {
	if freeThreshold.IsPositive() {
		return FreeAbove(freeThreshold, fee)
	}
	return FlatRate(fee)
}
