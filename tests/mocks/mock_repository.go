package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/segyhp/pledge-engine/internal/domain"
	"github.com/segyhp/pledge-engine/internal/repository"
)

type MockLedgerGateway struct {
	mock.Mock
}

var _ repository.LedgerGateway = (*MockLedgerGateway)(nil)

// WithinTx runs fn against the mock itself unless an error was configured.
func (m *MockLedgerGateway) WithinTx(ctx context.Context, fn func(tx repository.LedgerGateway) error) error {
	args := m.Called(ctx, mock.Anything)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(m)
}

func (m *MockLedgerGateway) CreatePledge(ctx context.Context, pledge *domain.Pledge) (*domain.Pledge, error) {
	args := m.Called(ctx, pledge)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Pledge), args.Error(1)
}

func (m *MockLedgerGateway) LoadPledge(ctx context.Context, id uuid.UUID) (*domain.Pledge, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Pledge), args.Error(1)
}

func (m *MockLedgerGateway) SavePledge(ctx context.Context, pledge *domain.Pledge) (*domain.Pledge, error) {
	args := m.Called(ctx, pledge)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Pledge), args.Error(1)
}

func (m *MockLedgerGateway) ListPledges(ctx context.Context) ([]*domain.Pledge, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Pledge), args.Error(1)
}

func (m *MockLedgerGateway) ListPledgesByStatus(ctx context.Context, status domain.PledgeStatus) ([]*domain.Pledge, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Pledge), args.Error(1)
}

func (m *MockLedgerGateway) ListPledgesByCustomer(ctx context.Context, customerID string) ([]*domain.Pledge, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Pledge), args.Error(1)
}

func (m *MockLedgerGateway) SumPrincipalByStatus(ctx context.Context, status domain.PledgeStatus) (decimal.Decimal, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockLedgerGateway) CountPledgesByStatus(ctx context.Context, status domain.PledgeStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerGateway) AppendPayment(ctx context.Context, payment *domain.Payment) (*domain.Payment, error) {
	args := m.Called(ctx, payment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockLedgerGateway) GetPayment(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockLedgerGateway) ListPayments(ctx context.Context, pledgeID uuid.UUID) ([]*domain.Payment, error) {
	args := m.Called(ctx, pledgeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Payment), args.Error(1)
}

func (m *MockLedgerGateway) TotalPaid(ctx context.Context, pledgeID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, pledgeID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockLedgerGateway) DeletePayment(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockLocker struct {
	mock.Mock
}

// Lock returns a no-op unlock func when the configured error is nil.
func (m *MockLocker) Lock(ctx context.Context, key string) (func(), error) {
	args := m.Called(ctx, key)
	if err := args.Error(0); err != nil {
		return nil, err
	}
	return func() {}, nil
}
