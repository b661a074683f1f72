package interest

import (
	"github.com/shopspring/decimal"

	customError "github.com/segyhp/pledge-engine/pkg/errors"
	"github.com/segyhp/pledge-engine/pkg/utils"
)

// PartialPaymentQuote shows how a payment would change the rate and the monthly interest.
type PartialPaymentQuote struct {
	OriginalAmount          decimal.Decimal `json:"original_amount"`
	PaymentAmount           decimal.Decimal `json:"payment_amount"`
	RemainingAmount         decimal.Decimal `json:"remaining_amount"`
	OriginalInterestRate    decimal.Decimal `json:"original_interest_rate"`
	NewInterestRate         decimal.Decimal `json:"new_interest_rate"`
	OriginalMonthlyInterest decimal.Decimal `json:"original_monthly_interest"`
	NewMonthlyInterest      decimal.Decimal `json:"new_monthly_interest"`
}

// QuotePartialPayment prices a payment against an amount without touching any pledge.
func QuotePartialPayment(original decimal.Decimal, payment decimal.Decimal) (*PartialPaymentQuote, error) {
	if !original.IsPositive() {
		return nil, customError.WrapInvalidPayment("original amount must be greater than 0")
	}
	if payment.IsNegative() {
		return nil, customError.WrapInvalidPayment("payment amount cannot be negative")
	}
	if payment.GreaterThan(original) {
		return nil, customError.WrapPaymentExceedsPrincipal(payment.String(), original.String())
	}

	remaining := utils.RoundMoney(original.Sub(payment))

	return &PartialPaymentQuote{
		OriginalAmount:          original,
		PaymentAmount:           payment,
		RemainingAmount:         remaining,
		OriginalInterestRate:    Rate(original),
		NewInterestRate:         Rate(remaining),
		OriginalMonthlyInterest: MonthlyInterest(original),
		NewMonthlyInterest:      MonthlyInterest(remaining),
	}, nil
}
