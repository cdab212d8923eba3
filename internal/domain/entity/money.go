package entity

import (
	"github.com/shopspring/decimal"
)

// MoneyDecimalPlaces defines the scale used for all monetary values
const MoneyDecimalPlaces = 2

// RoundMoney normalizes a monetary value to two fractional digits using
// round-half-up: the half-way case on the third digit rounds away from zero,
// matching conventional currency rounding. 10.005 becomes 10.01, 10.004
// becomes 10.00.
func RoundMoney(value decimal.Decimal) decimal.Decimal {
	return value.Round(MoneyDecimalPlaces)
}
