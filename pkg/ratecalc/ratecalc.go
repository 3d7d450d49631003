// Package ratecalc holds the pure rate delta computations shared by pending
// proposal displays and ledger writes, so a stored history entry is always
// recomputable to the value that was shown at approval time.
package ratecalc

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// PercentageChange returns (next - previous) / previous * 100 rounded to two
// decimals. When previous is zero the percentage is undefined; ok is false and
// callers render it as "N/A" instead of a number.
func PercentageChange(previous, next decimal.Decimal) (decimal.Decimal, bool) {
	if previous.IsZero() {
		return decimal.Zero, false
	}
	return next.Sub(previous).Div(previous).Mul(hundred).Round(2), true
}

// ChangeAmount returns next - previous, sign preserved.
func ChangeAmount(previous, next decimal.Decimal) decimal.Decimal {
	return next.Sub(previous)
}
