package utils

import (
	"time"

	"github.com/shopspring/decimal"
)

// MoneyPlaces is the number of decimal places kept for monetary values.
const MoneyPlaces = 2

var hundred = decimal.NewFromInt(100)

// RoundMoney rounds a monetary value to 2 decimal places, half up.
// Negative values are rounded half away from zero.
func RoundMoney(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(MoneyPlaces)
}

// IsWholeCents reports whether amount carries no more than 2 decimal places.
// Trailing zeros do not count, so 10.500 is accepted.
func IsWholeCents(amount decimal.Decimal) bool {
	return amount.Equal(amount.Truncate(MoneyPlaces))
}

// Percent returns amount * rate / 100 without rounding.
func Percent(amount decimal.Decimal, rate decimal.Decimal) decimal.Decimal {
	return amount.Mul(rate).Div(hundred)
}

// WholeDaysBetween returns the number of complete 24h periods from start to end.
// The result is truncated toward zero, so it is negative when end is before start.
func WholeDaysBetween(start time.Time, end time.Time) int64 {
	return int64(end.Sub(start) / (24 * time.Hour))
}

// IsDateAfter reports whether later is strictly after earlier.
func IsDateAfter(earlier time.Time, later time.Time) bool {
	return later.After(earlier)
}

// DecimalFromFloat converts float64 to decimal.Decimal
func DecimalFromFloat(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

// DecimalFromString converts string to decimal.Decimal
func DecimalFromString(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}
