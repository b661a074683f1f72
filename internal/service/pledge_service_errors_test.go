package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/segyhp/pledge-engine/internal/domain"
	customError "github.com/segyhp/pledge-engine/pkg/errors"
	"github.com/segyhp/pledge-engine/tests/mocks"
)

func newMockedService() (*PledgeService, *mocks.MockLedgerGateway, *mocks.MockLocker) {
	ledger := &mocks.MockLedgerGateway{}
	locker := &mocks.MockLocker{}
	svc := NewPledgeService(ledger, locker, nil, nil).
		WithClock(func() time.Time { return testNow })
	return svc, ledger, locker
}

func activePledge(principal int64) *domain.Pledge {
	return &domain.Pledge{
		ID:           uuid.New(),
		CustomerID:   "CUST-1",
		Principal:    domain.Money(decimal.NewFromInt(principal)),
		InterestRate: domain.Money(decimal.NewFromInt(2)),
		CreatedAt:    testNow,
		Status:       domain.PledgeStatusActive,
		Version:      4,
	}
}

func TestApplyPayment_VersionConflictSkipsPaymentInsert(t *testing.T) {
	svc, ledger, locker := newMockedService()
	pledge := activePledge(100000)

	locker.On("Lock", mock.Anything, "pledge-lock:"+pledge.ID.String()).Return(nil)
	ledger.On("LoadPledge", mock.Anything, pledge.ID).Return(pledge, nil)
	ledger.On("TotalPaid", mock.Anything, pledge.ID).Return(decimal.Zero, nil)
	ledger.On("WithinTx", mock.Anything, mock.Anything).Return(nil)
	ledger.On("SavePledge", mock.Anything, mock.MatchedBy(func(p *domain.Pledge) bool {
		return p.Version == 4 && p.Principal.Decimal.Equal(decimal.NewFromInt(60000))
	})).Return(nil, customError.WrapConflict(pledge.ID.String(), 4, 5))

	_, err := svc.ApplyPayment(context.Background(), pledge.ID, pay(40000))
	require.Error(t, err)
	assert.True(t, errors.Is(err, customError.ErrConflict))
	assert.True(t, customError.IsRetryable(err))

	ledger.AssertNotCalled(t, "AppendPayment", mock.Anything, mock.Anything)
	ledger.AssertExpectations(t)
	locker.AssertExpectations(t)
}

func TestApplyPayment_SavesBeforeAppending(t *testing.T) {
	svc, ledger, locker := newMockedService()
	pledge := activePledge(50000)

	saved := pledge.Clone()
	saved.Principal = domain.Money(decimal.Zero)
	saved.InterestRate = domain.Money(decimal.Zero)
	saved.Status = domain.PledgeStatusClosed
	saved.Version = 5

	locker.On("Lock", mock.Anything, mock.Anything).Return(nil)
	ledger.On("LoadPledge", mock.Anything, pledge.ID).Return(pledge, nil)
	ledger.On("TotalPaid", mock.Anything, pledge.ID).Return(decimal.Zero, nil)
	ledger.On("WithinTx", mock.Anything, mock.Anything).Return(nil)
	ledger.On("SavePledge", mock.Anything, mock.MatchedBy(func(p *domain.Pledge) bool {
		return p.Status == domain.PledgeStatusClosed && p.InterestRate.Decimal.IsZero()
	})).Return(saved, nil).Once()
	ledger.On("AppendPayment", mock.Anything, mock.MatchedBy(func(p *domain.Payment) bool {
		return p.PaymentType == domain.PaymentTypeFull && p.Amount.Equal(decimal.NewFromInt(50000))
	})).Return(func() *domain.Payment {
		return &domain.Payment{ID: uuid.New(), PledgeID: pledge.ID, Amount: decimal.NewFromInt(50000), PaymentType: domain.PaymentTypeFull}
	}(), nil).Once()

	receipt, err := svc.ApplyPayment(context.Background(), pledge.ID, pay(50000))
	require.NoError(t, err)
	assert.Equal(t, int64(5), receipt.Pledge.Version)
	assert.Equal(t, domain.PaymentTypeFull, receipt.Payment.PaymentType)

	ledger.AssertExpectations(t)
}

func TestApplyPayment_DatabaseFailureIsWrapped(t *testing.T) {
	svc, ledger, locker := newMockedService()
	id := uuid.New()
	dbErr := errors.New("connection reset")

	locker.On("Lock", mock.Anything, mock.Anything).Return(nil)
	ledger.On("LoadPledge", mock.Anything, id).Return(nil, dbErr)

	_, err := svc.ApplyPayment(context.Background(), id, pay(100))
	require.Error(t, err)

	var businessErr *customError.BusinessError
	require.True(t, errors.As(err, &businessErr))
	assert.Equal(t, customError.ErrCodeDatabaseError, businessErr.Code)
	assert.ErrorIs(t, err, dbErr)
}

func TestApplyPayment_LockContention(t *testing.T) {
	svc, ledger, locker := newMockedService()
	id := uuid.New()

	locker.On("Lock", mock.Anything, mock.Anything).Return(customError.ErrLockNotAcquired)

	_, err := svc.ApplyPayment(context.Background(), id, pay(100))
	require.Error(t, err)
	assert.True(t, customError.IsRetryable(err))

	var businessErr *customError.BusinessError
	require.True(t, errors.As(err, &businessErr))
	assert.Equal(t, customError.ErrCodeLockError, businessErr.Code)
	ledger.AssertNotCalled(t, "LoadPledge", mock.Anything, mock.Anything)
}

func TestApplyPayment_InvalidAmountTouchesNothing(t *testing.T) {
	svc, ledger, locker := newMockedService()

	_, err := svc.ApplyPayment(context.Background(), uuid.New(), pay(0))
	assert.True(t, errors.Is(err, customError.ErrInvalidPayment))

	locker.AssertNotCalled(t, "Lock", mock.Anything, mock.Anything)
	ledger.AssertNotCalled(t, "LoadPledge", mock.Anything, mock.Anything)
}

func TestSweepAutoClose_StopsAtFirstFailure(t *testing.T) {
	svc, ledger, locker := newMockedService()

	first := activePledge(0)
	second := activePledge(0)
	third := activePledge(0)
	saveErr := errors.New("disk full")

	locker.On("Lock", mock.Anything, mock.Anything).Return(nil)
	ledger.On("ListPledgesByStatus", mock.Anything, domain.PledgeStatusActive).
		Return([]*domain.Pledge{first, second, third}, nil)
	ledger.On("LoadPledge", mock.Anything, first.ID).Return(first, nil)
	ledger.On("LoadPledge", mock.Anything, second.ID).Return(second, nil)
	ledger.On("SavePledge", mock.Anything, mock.MatchedBy(func(p *domain.Pledge) bool { return p.ID == first.ID })).
		Return(first, nil)
	ledger.On("SavePledge", mock.Anything, mock.MatchedBy(func(p *domain.Pledge) bool { return p.ID == second.ID })).
		Return(nil, saveErr)

	closed, err := svc.SweepAutoClose(context.Background())
	assert.Equal(t, 1, closed)
	assert.ErrorIs(t, err, saveErr)
	ledger.AssertNotCalled(t, "LoadPledge", mock.Anything, third.ID)
}

func TestSweepAutoClose_SkipsPledgePaidMeanwhile(t *testing.T) {
	svc, ledger, locker := newMockedService()

	scanned := activePledge(0)
	reloaded := scanned.Clone()
	reloaded.Status = domain.PledgeStatusClosed

	locker.On("Lock", mock.Anything, mock.Anything).Return(nil)
	ledger.On("ListPledgesByStatus", mock.Anything, domain.PledgeStatusActive).
		Return([]*domain.Pledge{scanned}, nil)
	ledger.On("LoadPledge", mock.Anything, scanned.ID).Return(reloaded, nil)

	closed, err := svc.SweepAutoClose(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, closed)
	ledger.AssertNotCalled(t, "SavePledge", mock.Anything, mock.Anything)
}
