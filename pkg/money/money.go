// Package money fixes the register's monetary arithmetic policy: all
// amounts are decimals rounded half-away-from-zero to two fractional
// digits of the currency's minor unit.
package money

import "github.com/shopspring/decimal"

// Round applies the register-wide rounding rule to an amount.
func Round(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}

// Zero is the canonical zero amount.
func Zero() decimal.Decimal {
	return decimal.Zero
}

// Line computes a rounded line total for a quantity at a unit price.
func Line(unitPrice decimal.Decimal, qty int) decimal.Decimal {
	return Round(unitPrice.Mul(decimal.NewFromInt(int64(qty))))
}

// IsNegative reports whether the amount is below zero.
func IsNegative(amount decimal.Decimal) bool {
	return amount.IsNegative()
}
