package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/segyhp/pledge-engine/internal/domain"
	"github.com/segyhp/pledge-engine/internal/interest"
	"github.com/segyhp/pledge-engine/internal/lifecycle"
	"github.com/segyhp/pledge-engine/internal/lock"
	"github.com/segyhp/pledge-engine/internal/metrics"
	"github.com/segyhp/pledge-engine/internal/repository"
	customError "github.com/segyhp/pledge-engine/pkg/errors"
	"github.com/segyhp/pledge-engine/pkg/utils"
)

// ApplyPayment reduces a pledge's principal by the payment amount, re-rates it,
// advances its status and records the payment, all under the pledge's lock.
//
// Validation happens before the first write. The pledge save and the payment
// insert share one ledger transaction; a stale pledge version fails the whole
// call with a conflict error.
func (s *PledgeService) ApplyPayment(ctx context.Context, pledgeID uuid.UUID, request *domain.PaymentRequest) (receipt *domain.PaymentReceipt, err error) {
	defer func() {
		if err != nil {
			s.recordRejection(pledgeID, err)
		}
	}()

	amount := request.Amount
	if !amount.IsPositive() {
		return nil, customError.WrapInvalidPayment("payment amount must be greater than 0")
	}
	if !utils.IsWholeCents(amount) {
		return nil, customError.WrapInvalidPayment("payment amount must have at most 2 decimal places")
	}

	unlock, err := s.lockPledge(ctx, pledgeID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	pledge, err := s.ledger.LoadPledge(ctx, pledgeID)
	if err != nil {
		return nil, wrapLedgerError(err)
	}
	if lifecycle.IsTerminal(pledge.Status) {
		return nil, customError.WrapPledgeClosed(pledgeID.String())
	}
	if !pledge.Principal.Valid {
		return nil, customError.WrapPrecondition(customError.ErrPrincipalNotSet)
	}

	principal := pledge.Principal.Decimal
	if amount.GreaterThan(principal) {
		return nil, customError.WrapPaymentExceedsPrincipal(amount.StringFixed(2), principal.StringFixed(2))
	}

	paidSoFar, err := s.ledger.TotalPaid(ctx, pledgeID)
	if err != nil {
		return nil, wrapLedgerError(err)
	}

	newPrincipal := utils.RoundMoney(principal.Sub(amount))
	paymentType := domain.PaymentTypePartial
	if newPrincipal.IsZero() {
		paymentType = domain.PaymentTypeFull
	}

	updated := pledge.Clone()
	updated.Principal = domain.Money(newPrincipal)
	updated.InterestRate = domain.Money(interest.Rate(newPrincipal))
	updated.Status = lifecycle.Advance(pledge.Status, newPrincipal, paidSoFar.Add(amount))

	now := s.now()
	payment := &domain.Payment{
		ID:          uuid.New(),
		PledgeID:    pledgeID,
		Amount:      amount,
		PaymentType: paymentType,
		PaymentDate: now,
		Notes:       request.Notes,
		CreatedAt:   now,
	}

	var (
		saved    *domain.Pledge
		recorded *domain.Payment
	)
	err = s.ledger.WithinTx(ctx, func(tx repository.LedgerGateway) error {
		var txErr error
		if saved, txErr = tx.SavePledge(ctx, updated); txErr != nil {
			return txErr
		}
		recorded, txErr = tx.AppendPayment(ctx, payment)
		return txErr
	})
	if err != nil {
		return nil, wrapLedgerError(err)
	}

	closed := saved.Status == domain.PledgeStatusClosed
	metrics.ObservePayment(string(paymentType), amount, closed)
	s.logger.InfoContext(ctx, "payment applied",
		"pledge_id", pledgeID,
		"payment_id", recorded.ID,
		"amount", amount.StringFixed(2),
		"payment_type", paymentType,
		"principal", newPrincipal.StringFixed(2),
		"interest_rate", saved.InterestRate.Decimal.String(),
		"status", saved.Status,
	)
	if closed {
		s.logger.InfoContext(ctx, "pledge closed", "pledge_id", pledgeID, "trigger", metrics.TriggerPayment)
	}

	return &domain.PaymentReceipt{
		Pledge:          saved,
		Payment:         recorded,
		MonthlyInterest: interest.MonthlyInterest(newPrincipal),
	}, nil
}

// ListPayments returns a pledge's payments, newest first.
func (s *PledgeService) ListPayments(ctx context.Context, pledgeID uuid.UUID) ([]*domain.Payment, error) {
	if _, err := s.ledger.LoadPledge(ctx, pledgeID); err != nil {
		return nil, wrapLedgerError(err)
	}

	payments, err := s.ledger.ListPayments(ctx, pledgeID)
	if err != nil {
		return nil, wrapLedgerError(err)
	}
	return payments, nil
}

// TotalPaid sums every payment recorded against a pledge.
func (s *PledgeService) TotalPaid(ctx context.Context, pledgeID uuid.UUID) (*domain.TotalPaidResponse, error) {
	if _, err := s.ledger.LoadPledge(ctx, pledgeID); err != nil {
		return nil, wrapLedgerError(err)
	}

	total, err := s.ledger.TotalPaid(ctx, pledgeID)
	if err != nil {
		return nil, wrapLedgerError(err)
	}
	return &domain.TotalPaidResponse{PledgeID: pledgeID, TotalPaid: utils.RoundMoney(total)}, nil
}

func (s *PledgeService) GetPayment(ctx context.Context, paymentID uuid.UUID) (*domain.Payment, error) {
	payment, err := s.ledger.GetPayment(ctx, paymentID)
	if err != nil {
		return nil, wrapLedgerError(err)
	}
	return payment, nil
}

// DeletePayment removes a payment record. The pledge's principal and status are left as they are.
func (s *PledgeService) DeletePayment(ctx context.Context, paymentID uuid.UUID) error {
	payment, err := s.ledger.GetPayment(ctx, paymentID)
	if err != nil {
		return wrapLedgerError(err)
	}

	unlock, err := s.lockPledge(ctx, payment.PledgeID)
	if err != nil {
		return err
	}
	defer unlock()

	if err := s.ledger.DeletePayment(ctx, paymentID); err != nil {
		return wrapLedgerError(err)
	}

	s.logger.WarnContext(ctx, "payment deleted",
		"payment_id", paymentID,
		"pledge_id", payment.PledgeID,
		"amount", payment.Amount.StringFixed(2),
	)
	return nil
}

func (s *PledgeService) lockPledge(ctx context.Context, pledgeID uuid.UUID) (func(), error) {
	unlock, err := s.locker.Lock(ctx, lock.PledgeKey(pledgeID.String()))
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, customError.WrapLockError(pledgeID.String(), err)
	}
	return unlock, nil
}

func (s *PledgeService) recordRejection(pledgeID uuid.UUID, err error) {
	code := customError.ErrCodeDatabaseError
	var businessErr *customError.BusinessError
	if errors.As(err, &businessErr) {
		code = businessErr.Code
	}
	if errors.Is(err, customError.ErrConflict) {
		metrics.Conflicts.Inc()
	}
	metrics.PaymentsRejected.WithLabelValues(code).Inc()
	s.logger.Warn("payment rejected", "pledge_id", pledgeID, "code", code, "error", err)
}
