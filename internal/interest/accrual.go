package interest

import (
	"time"

	"github.com/shopspring/decimal"

	customError "github.com/segyhp/pledge-engine/pkg/errors"
	"github.com/segyhp/pledge-engine/pkg/utils"
)

var (
	hundred    = decimal.NewFromInt(100)
	daysInYear = decimal.NewFromInt(365)
)

// MonthlyInterest is the flat monthly figure: amount * Rate(amount) / 100, rounded to 2 places.
// It does not depend on elapsed time.
func MonthlyInterest(amount decimal.Decimal) decimal.Decimal {
	if !amount.IsPositive() {
		return decimal.Zero
	}
	return utils.RoundMoney(utils.Percent(amount, Rate(amount)))
}

// DailyRate annualizes a monthly percentage over 365 days: rate / (100 * 365).
func DailyRate(rate decimal.Decimal) decimal.Decimal {
	return rate.Div(hundred.Mul(daysInYear))
}

// Accrual is the daily-prorated interest owed on a principal since an epoch.
type Accrual struct {
	Principal   decimal.Decimal
	Rate        decimal.Decimal
	DaysElapsed int64
	Interest    decimal.Decimal
}

// TotalDue is principal plus accrued interest.
func (a Accrual) TotalDue() decimal.Decimal {
	return utils.RoundMoney(a.Principal.Add(a.Interest))
}

// Accrue computes principal * rate / (100 * 365) * wholeDays(since, now).
// A missing principal, rate or epoch fails with a precondition error.
// A clock that reads earlier than the epoch accrues nothing.
func Accrue(principal decimal.NullDecimal, rate decimal.NullDecimal, since time.Time, now time.Time) (Accrual, error) {
	switch {
	case !principal.Valid:
		return Accrual{}, customError.WrapPrecondition(customError.ErrPrincipalNotSet)
	case !rate.Valid:
		return Accrual{}, customError.WrapPrecondition(customError.ErrRateNotSet)
	case since.IsZero():
		return Accrual{}, customError.WrapPrecondition(customError.ErrCreatedAtNotSet)
	}

	days := utils.WholeDaysBetween(since, now)
	if days < 0 {
		days = 0
	}

	accrual := Accrual{
		Principal:   principal.Decimal,
		Rate:        rate.Decimal,
		DaysElapsed: days,
		Interest:    decimal.Zero,
	}
	if !principal.Decimal.IsPositive() || days == 0 {
		return accrual, nil
	}

	// Multiply before dividing so the only rounding is the final one.
	interest := principal.Decimal.
		Mul(rate.Decimal).
		Mul(decimal.NewFromInt(days)).
		Div(hundred.Mul(daysInYear))
	accrual.Interest = utils.RoundMoney(interest)

	return accrual, nil
}

// AccruedInterest returns only the interest part of Accrue.
func AccruedInterest(principal decimal.NullDecimal, rate decimal.NullDecimal, since time.Time, now time.Time) (decimal.Decimal, error) {
	a, err := Accrue(principal, rate, since, now)
	if err != nil {
		return decimal.Zero, err
	}
	return a.Interest, nil
}

// TotalAmountDue returns principal + accrued interest.
func TotalAmountDue(principal decimal.NullDecimal, rate decimal.NullDecimal, since time.Time, now time.Time) (decimal.Decimal, error) {
	a, err := Accrue(principal, rate, since, now)
	if err != nil {
		return decimal.Zero, err
	}
	return a.TotalDue(), nil
}
