package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/segyhp/pledge-engine/internal/domain"
)

// PledgeRepository defines the interface for pledge data operations
type PledgeRepository interface {
	// CreatePledge inserts a new pledge and returns the stored record
	CreatePledge(ctx context.Context, pledge *domain.Pledge) (*domain.Pledge, error)

	// LoadPledge retrieves a pledge by id; missing pledges fail with a not found error
	LoadPledge(ctx context.Context, id uuid.UUID) (*domain.Pledge, error)

	// SavePledge writes the pledge if its version still matches the stored one.
	// The returned record carries the new version.
	SavePledge(ctx context.Context, pledge *domain.Pledge) (*domain.Pledge, error)

	// ListPledges returns every pledge, newest first
	ListPledges(ctx context.Context) ([]*domain.Pledge, error)

	// ListPledgesByStatus returns pledges currently in status
	ListPledgesByStatus(ctx context.Context, status domain.PledgeStatus) ([]*domain.Pledge, error)

	// ListPledgesByCustomer returns a customer's pledges, newest first
	ListPledgesByCustomer(ctx context.Context, customerID string) ([]*domain.Pledge, error)

	// SumPrincipalByStatus totals outstanding principal in status
	SumPrincipalByStatus(ctx context.Context, status domain.PledgeStatus) (decimal.Decimal, error)

	// CountPledgesByStatus counts pledges in status
	CountPledgesByStatus(ctx context.Context, status domain.PledgeStatus) (int64, error)
}

// PaymentRepository defines the interface for payment data operations
type PaymentRepository interface {
	// AppendPayment records an immutable payment
	AppendPayment(ctx context.Context, payment *domain.Payment) (*domain.Payment, error)

	// GetPayment retrieves a payment by id
	GetPayment(ctx context.Context, id uuid.UUID) (*domain.Payment, error)

	// ListPayments returns a pledge's payments, most recent first
	ListPayments(ctx context.Context, pledgeID uuid.UUID) ([]*domain.Payment, error)

	// TotalPaid sums every payment recorded against a pledge
	TotalPaid(ctx context.Context, pledgeID uuid.UUID) (decimal.Decimal, error)

	// DeletePayment removes a payment; administrative only
	DeletePayment(ctx context.Context, id uuid.UUID) error
}

// LedgerGateway is everything the engine needs from persistence.
type LedgerGateway interface {
	PledgeRepository
	PaymentRepository

	// WithinTx runs fn against a gateway whose writes commit together.
	// If fn returns an error nothing fn wrote is kept.
	WithinTx(ctx context.Context, fn func(tx LedgerGateway) error) error
}
