package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentType tells whether a payment settled the pledge.
type PaymentType string

const (
	PaymentTypePartial PaymentType = "PARTIAL"
	PaymentTypeFull    PaymentType = "FULL"
)

// Payment is an immutable ledger entry reducing a pledge's principal.
type Payment struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	PledgeID    uuid.UUID       `json:"pledge_id" db:"pledge_id"`
	Amount      decimal.Decimal `json:"amount" db:"amount"`
	PaymentType PaymentType     `json:"payment_type" db:"payment_type"`
	PaymentDate time.Time       `json:"payment_date" db:"payment_date"`
	Notes       string          `json:"notes" db:"notes"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
}

type PaymentRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"required,decimal_gt=0"`
	Notes  string          `json:"notes" validate:"max=1000"`
}

// PaymentReceipt is the outcome of applying one payment.
type PaymentReceipt struct {
	Pledge          *Pledge         `json:"pledge"`
	Payment         *Payment        `json:"payment"`
	MonthlyInterest decimal.Decimal `json:"monthly_interest"`
}

type TotalPaidResponse struct {
	PledgeID  uuid.UUID       `json:"pledge_id"`
	TotalPaid decimal.Decimal `json:"total_paid"`
}

type PartialPaymentRequest struct {
	OriginalAmount decimal.Decimal `json:"original_amount" validate:"required,decimal_gt=0"`
	PaymentAmount  decimal.Decimal `json:"payment_amount" validate:"required,decimal_gte=0"`
}

type SweepResponse struct {
	Closed int `json:"closed"`
}
