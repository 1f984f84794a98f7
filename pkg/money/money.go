// Package money centralizes rounding and formatting of monetary amounts.
// Intermediate arithmetic keeps full decimal precision; Round2 is applied
// only at display and persistence boundaries.
package money

import "github.com/shopspring/decimal"

// Round2 rounds an amount to cents (half away from zero).
func Round2(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}

// ClampNonNegative floors an amount at zero.
func ClampNonNegative(amount decimal.Decimal) decimal.Decimal {
	if amount.IsNegative() {
		return decimal.Zero
	}
	return amount
}

// Equalish reports whether two amounts agree within epsilon.
func Equalish(a, b, epsilon decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(epsilon)
}

// FormatUSD renders an amount as a dollar string, e.g. "$14.49".
func FormatUSD(amount decimal.Decimal) string {
	return "$" + Round2(amount).StringFixed(2)
}
