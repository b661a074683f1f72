package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PledgeStatus is the lifecycle phase of a pledge.
type PledgeStatus string

const (
	PledgeStatusActive        PledgeStatus = "ACTIVE"
	PledgeStatusPartiallyPaid PledgeStatus = "PARTIALLY_PAID"
	PledgeStatusClosed        PledgeStatus = "CLOSED"
	PledgeStatusDefaulted     PledgeStatus = "DEFAULTED"
	PledgeStatusCompleted     PledgeStatus = "COMPLETED"
)

// Accepted gold purities for pledged items.
var Purities = []string{"28K", "24K", "22K", "18K", "14K"}

// DefaultMaxInterestRate is the highest monthly percentage a pledge may carry
// unless configured otherwise.
var DefaultMaxInterestRate = decimal.NewFromInt(36)

// Pledge represents a collateral-backed loan
type Pledge struct {
	ID           uuid.UUID           `json:"id" db:"id"`
	CustomerID   string              `json:"customer_id" db:"customer_id"`
	Title        string              `json:"title" db:"title"`
	Description  string              `json:"description" db:"description"`
	Principal    decimal.NullDecimal `json:"principal" db:"principal"`
	InterestRate decimal.NullDecimal `json:"interest_rate" db:"interest_rate"`
	CreatedAt    time.Time           `json:"created_at" db:"created_at"`
	Deadline     time.Time           `json:"deadline" db:"deadline"`
	Status       PledgeStatus        `json:"status" db:"status"`
	ItemType     string              `json:"item_type" db:"item_type"`
	Weight       decimal.Decimal     `json:"weight" db:"weight"`
	Purity       string              `json:"purity" db:"purity"`
	Notes        string              `json:"notes" db:"notes"`
	Version      int64               `json:"version" db:"version"`
	UpdatedAt    time.Time           `json:"updated_at" db:"updated_at"`
}

// Outstanding returns the principal, or zero when it was never set.
func (p *Pledge) Outstanding() decimal.Decimal {
	if !p.Principal.Valid {
		return decimal.Zero
	}
	return p.Principal.Decimal
}

// IsValidStatus reports whether the status is one of the known lifecycle states.
func (p *Pledge) IsValidStatus() bool {
	switch p.Status {
	case PledgeStatusActive, PledgeStatusPartiallyPaid, PledgeStatusClosed,
		PledgeStatusDefaulted, PledgeStatusCompleted:
		return true
	}
	return false
}

// IsValidDates reports whether the deadline falls strictly after creation.
func (p *Pledge) IsValidDates() bool {
	return !p.CreatedAt.IsZero() && !p.Deadline.IsZero() && p.Deadline.After(p.CreatedAt)
}

// IsValidInterestRate reports whether the rate is set and in (0, max].
func (p *Pledge) IsValidInterestRate(max decimal.Decimal) bool {
	return p.InterestRate.Valid &&
		p.InterestRate.Decimal.IsPositive() &&
		p.InterestRate.Decimal.LessThanOrEqual(max)
}

// Clone returns a copy that shares no mutable state with p.
func (p *Pledge) Clone() *Pledge {
	c := *p
	return &c
}

// Money wraps a known amount as a set nullable decimal.
func Money(amount decimal.Decimal) decimal.NullDecimal {
	return decimal.NewNullDecimal(amount)
}

// DTOs for requests and responses

type CreatePledgeRequest struct {
	CustomerID  string          `json:"customer_id" validate:"required,max=64"`
	Title       string          `json:"title" validate:"required,max=100"`
	Description string          `json:"description" validate:"max=500"`
	Principal   decimal.Decimal `json:"principal" validate:"required,decimal_gt=0"`
	Deadline    time.Time       `json:"deadline" validate:"required"`
	ItemType    string          `json:"item_type" validate:"required"`
	Weight      decimal.Decimal `json:"weight" validate:"required,decimal_gt=0"`
	Purity      string          `json:"purity" validate:"required,oneof=28K 24K 22K 18K 14K"`
	Notes       string          `json:"notes" validate:"max=1000"`
}

type InterestResponse struct {
	PledgeID        uuid.UUID       `json:"pledge_id"`
	Principal       decimal.Decimal `json:"principal"`
	InterestRate    decimal.Decimal `json:"interest_rate"`
	MonthlyInterest decimal.Decimal `json:"monthly_interest"`
	DaysElapsed     int64           `json:"days_elapsed"`
	AccruedInterest decimal.Decimal `json:"accrued_interest"`
	TotalAmountDue  decimal.Decimal `json:"total_amount_due"`
}

// SummaryResponse describes the portfolio. OpenPledges counts ACTIVE and PARTIALLY_PAID.
type SummaryResponse struct {
	OpenPledges          int64           `json:"open_pledges"`
	ActivePledges        int64           `json:"active_pledges"`
	PartiallyPaidPledges int64           `json:"partially_paid_pledges"`
	ClosedPledges        int64           `json:"closed_pledges"`
	OutstandingTotal     decimal.Decimal `json:"outstanding_total"`
	MonthlyInterest      decimal.Decimal `json:"monthly_interest"`
}

// RateResponse describes the slab of an arbitrary amount.
type RateResponse struct {
	Amount          decimal.Decimal  `json:"amount"`
	InterestRate    decimal.Decimal  `json:"interest_rate"`
	MonthlyInterest *decimal.Decimal `json:"monthly_interest,omitempty"`
	Slab            string           `json:"slab"`
}
