package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/segyhp/pledge-engine/internal/domain"
	"github.com/segyhp/pledge-engine/internal/interest"
)

type MockPledgeEngine struct {
	mock.Mock
}

func (m *MockPledgeEngine) CreatePledge(ctx context.Context, request *domain.CreatePledgeRequest) (*domain.Pledge, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Pledge), args.Error(1)
}

func (m *MockPledgeEngine) GetPledge(ctx context.Context, pledgeID uuid.UUID) (*domain.Pledge, error) {
	args := m.Called(ctx, pledgeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Pledge), args.Error(1)
}

func (m *MockPledgeEngine) ListPledges(ctx context.Context) ([]*domain.Pledge, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Pledge), args.Error(1)
}

func (m *MockPledgeEngine) ListPledgesByCustomer(ctx context.Context, customerID string) ([]*domain.Pledge, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Pledge), args.Error(1)
}

func (m *MockPledgeEngine) ApplyPayment(ctx context.Context, pledgeID uuid.UUID, request *domain.PaymentRequest) (*domain.PaymentReceipt, error) {
	args := m.Called(ctx, pledgeID, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentReceipt), args.Error(1)
}

func (m *MockPledgeEngine) ListPayments(ctx context.Context, pledgeID uuid.UUID) ([]*domain.Payment, error) {
	args := m.Called(ctx, pledgeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Payment), args.Error(1)
}

func (m *MockPledgeEngine) TotalPaid(ctx context.Context, pledgeID uuid.UUID) (*domain.TotalPaidResponse, error) {
	args := m.Called(ctx, pledgeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TotalPaidResponse), args.Error(1)
}

func (m *MockPledgeEngine) GetPayment(ctx context.Context, paymentID uuid.UUID) (*domain.Payment, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPledgeEngine) DeletePayment(ctx context.Context, paymentID uuid.UUID) error {
	args := m.Called(ctx, paymentID)
	return args.Error(0)
}

func (m *MockPledgeEngine) Interest(ctx context.Context, pledgeID uuid.UUID) (*domain.InterestResponse, error) {
	args := m.Called(ctx, pledgeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InterestResponse), args.Error(1)
}

func (m *MockPledgeEngine) SweepAutoClose(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockPledgeEngine) Summary(ctx context.Context) (*domain.SummaryResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SummaryResponse), args.Error(1)
}

func (m *MockPledgeEngine) GetRate(amount decimal.Decimal) decimal.Decimal {
	args := m.Called(amount)
	return args.Get(0).(decimal.Decimal)
}

func (m *MockPledgeEngine) GetMonthlyInterest(amount decimal.Decimal) decimal.Decimal {
	args := m.Called(amount)
	return args.Get(0).(decimal.Decimal)
}

func (m *MockPledgeEngine) QuotePartialPayment(request *domain.PartialPaymentRequest) (*interest.PartialPaymentQuote, error) {
	args := m.Called(request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*interest.PartialPaymentQuote), args.Error(1)
}
