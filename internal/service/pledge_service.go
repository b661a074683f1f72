package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/segyhp/pledge-engine/internal/config"
	"github.com/segyhp/pledge-engine/internal/domain"
	"github.com/segyhp/pledge-engine/internal/interest"
	"github.com/segyhp/pledge-engine/internal/lifecycle"
	"github.com/segyhp/pledge-engine/internal/lock"
	"github.com/segyhp/pledge-engine/internal/metrics"
	"github.com/segyhp/pledge-engine/internal/repository"
	customError "github.com/segyhp/pledge-engine/pkg/errors"
	"github.com/segyhp/pledge-engine/pkg/utils"
)

var defaultMaxPrincipal = decimal.NewFromInt(10000000)

type PledgeService struct {
	ledger repository.LedgerGateway
	locker lock.Locker
	config *config.Config
	logger *slog.Logger
	now    func() time.Time
}

func NewPledgeService(
	ledger repository.LedgerGateway,
	locker lock.Locker,
	config *config.Config,
	logger *slog.Logger,
) *PledgeService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PledgeService{
		ledger: ledger,
		locker: locker,
		config: config,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the engine clock used for creation dates, payment dates and accrual.
func (s *PledgeService) WithClock(now func() time.Time) *PledgeService {
	s.now = now
	return s
}

// GetRate returns the slab percentage for an amount.
func (s *PledgeService) GetRate(amount decimal.Decimal) decimal.Decimal {
	return interest.Rate(amount)
}

// GetMonthlyInterest returns the flat monthly interest for an amount.
func (s *PledgeService) GetMonthlyInterest(amount decimal.Decimal) decimal.Decimal {
	return interest.MonthlyInterest(amount)
}

// QuotePartialPayment prices a payment without touching any pledge.
func (s *PledgeService) QuotePartialPayment(request *domain.PartialPaymentRequest) (*interest.PartialPaymentQuote, error) {
	return interest.QuotePartialPayment(request.OriginalAmount, request.PaymentAmount)
}

// CreatePledge validates the request and stores a new ACTIVE pledge at the slab rate for its principal.
func (s *PledgeService) CreatePledge(ctx context.Context, request *domain.CreatePledgeRequest) (*domain.Pledge, error) {
	principal := request.Principal
	now := s.now()

	switch {
	case !principal.IsPositive():
		return nil, customError.WrapInvalidPledge("principal must be greater than 0")
	case !utils.IsWholeCents(principal):
		return nil, customError.WrapInvalidPledge("principal must have at most 2 decimal places")
	case principal.GreaterThan(s.maxPrincipal()):
		return nil, customError.WrapInvalidPledge("principal exceeds the maximum of " + s.maxPrincipal().String())
	case !request.Weight.IsPositive():
		return nil, customError.WrapInvalidPledge("weight must be greater than 0")
	case !isKnownPurity(request.Purity):
		return nil, customError.WrapInvalidPledge("unknown purity " + request.Purity)
	case !utils.IsDateAfter(now, request.Deadline):
		return nil, customError.WrapInvalidPledge("deadline must be after the creation date")
	}

	pledge := &domain.Pledge{
		ID:           uuid.New(),
		CustomerID:   request.CustomerID,
		Title:        request.Title,
		Description:  request.Description,
		Principal:    domain.Money(principal),
		InterestRate: domain.Money(interest.Rate(principal)),
		CreatedAt:    now,
		Deadline:     request.Deadline,
		Status:       lifecycle.Initial,
		ItemType:     request.ItemType,
		Weight:       request.Weight,
		Purity:       request.Purity,
		Notes:        request.Notes,
		Version:      1,
		UpdatedAt:    now,
	}

	if !pledge.IsValidInterestRate(s.maxInterestRate()) {
		return nil, customError.WrapInvalidPledge("interest rate " + pledge.InterestRate.Decimal.String() +
			"% exceeds the maximum of " + s.maxInterestRate().String() + "%")
	}

	created, err := s.ledger.CreatePledge(ctx, pledge)
	if err != nil {
		return nil, wrapLedgerError(err)
	}

	metrics.PledgesCreated.Inc()
	s.logger.InfoContext(ctx, "pledge created",
		"pledge_id", created.ID,
		"customer_id", created.CustomerID,
		"principal", principal.StringFixed(2),
		"interest_rate", created.InterestRate.Decimal.String(),
	)

	return created, nil
}

func (s *PledgeService) GetPledge(ctx context.Context, pledgeID uuid.UUID) (*domain.Pledge, error) {
	pledge, err := s.ledger.LoadPledge(ctx, pledgeID)
	if err != nil {
		return nil, wrapLedgerError(err)
	}
	return pledge, nil
}

// ListPledges sweeps stale zero-balance pledges, then lists every pledge newest first.
func (s *PledgeService) ListPledges(ctx context.Context) ([]*domain.Pledge, error) {
	if _, err := s.SweepAutoClose(ctx); err != nil {
		return nil, err
	}

	pledges, err := s.ledger.ListPledges(ctx)
	if err != nil {
		return nil, wrapLedgerError(err)
	}
	return pledges, nil
}

// ListPledgesByCustomer sweeps, then lists one customer's pledges newest first.
func (s *PledgeService) ListPledgesByCustomer(ctx context.Context, customerID string) ([]*domain.Pledge, error) {
	if _, err := s.SweepAutoClose(ctx); err != nil {
		return nil, err
	}

	pledges, err := s.ledger.ListPledgesByCustomer(ctx, customerID)
	if err != nil {
		return nil, wrapLedgerError(err)
	}
	return pledges, nil
}

// Interest reports the flat monthly and the daily-accrued interest of a pledge as of now.
// The figures are informational; payments only ever reduce principal.
func (s *PledgeService) Interest(ctx context.Context, pledgeID uuid.UUID) (*domain.InterestResponse, error) {
	pledge, err := s.ledger.LoadPledge(ctx, pledgeID)
	if err != nil {
		return nil, wrapLedgerError(err)
	}

	accrual, err := interest.Accrue(pledge.Principal, pledge.InterestRate, pledge.CreatedAt, s.now())
	if err != nil {
		return nil, err
	}

	return &domain.InterestResponse{
		PledgeID:        pledge.ID,
		Principal:       accrual.Principal,
		InterestRate:    accrual.Rate,
		MonthlyInterest: interest.MonthlyInterest(accrual.Principal),
		DaysElapsed:     accrual.DaysElapsed,
		AccruedInterest: accrual.Interest,
		TotalAmountDue:  accrual.TotalDue(),
	}, nil
}

// AccruedInterest returns the daily-prorated interest of a pledge since creation.
func (s *PledgeService) AccruedInterest(ctx context.Context, pledgeID uuid.UUID) (decimal.Decimal, error) {
	report, err := s.Interest(ctx, pledgeID)
	if err != nil {
		return decimal.Zero, err
	}
	return report.AccruedInterest, nil
}

// TotalAmountDue returns principal plus accrued interest for a pledge.
func (s *PledgeService) TotalAmountDue(ctx context.Context, pledgeID uuid.UUID) (decimal.Decimal, error) {
	report, err := s.Interest(ctx, pledgeID)
	if err != nil {
		return decimal.Zero, err
	}
	return report.TotalAmountDue, nil
}

// Summary reports pledge counts and the outstanding principal of open pledges.
func (s *PledgeService) Summary(ctx context.Context) (*domain.SummaryResponse, error) {
	summary := &domain.SummaryResponse{
		OutstandingTotal: decimal.Zero,
		MonthlyInterest:  decimal.Zero,
	}

	counts := []struct {
		status domain.PledgeStatus
		into   *int64
	}{
		{domain.PledgeStatusActive, &summary.ActivePledges},
		{domain.PledgeStatusPartiallyPaid, &summary.PartiallyPaidPledges},
		{domain.PledgeStatusClosed, &summary.ClosedPledges},
	}
	for _, c := range counts {
		n, err := s.ledger.CountPledgesByStatus(ctx, c.status)
		if err != nil {
			return nil, wrapLedgerError(err)
		}
		*c.into = n
	}
	summary.OpenPledges = summary.ActivePledges + summary.PartiallyPaidPledges

	for _, status := range []domain.PledgeStatus{domain.PledgeStatusActive, domain.PledgeStatusPartiallyPaid} {
		outstanding, err := s.ledger.SumPrincipalByStatus(ctx, status)
		if err != nil {
			return nil, wrapLedgerError(err)
		}
		summary.OutstandingTotal = summary.OutstandingTotal.Add(outstanding)

		pledges, err := s.ledger.ListPledgesByStatus(ctx, status)
		if err != nil {
			return nil, wrapLedgerError(err)
		}
		for _, p := range pledges {
			summary.MonthlyInterest = summary.MonthlyInterest.Add(interest.MonthlyInterest(p.Outstanding()))
		}
	}
	summary.OutstandingTotal = utils.RoundMoney(summary.OutstandingTotal)

	return summary, nil
}

func (s *PledgeService) maxPrincipal() decimal.Decimal {
	if s.config == nil {
		return defaultMaxPrincipal
	}
	if limit := s.config.GetMaxPrincipal(); limit.IsPositive() {
		return limit
	}
	return defaultMaxPrincipal
}

func (s *PledgeService) maxInterestRate() decimal.Decimal {
	if s.config == nil {
		return domain.DefaultMaxInterestRate
	}
	if limit := s.config.GetMaxInterestRate(); limit.IsPositive() {
		return limit
	}
	return domain.DefaultMaxInterestRate
}

func isKnownPurity(purity string) bool {
	for _, p := range domain.Purities {
		if p == purity {
			return true
		}
	}
	return false
}

// wrapLedgerError passes typed business errors through and marks anything else as a database failure.
func wrapLedgerError(err error) error {
	var businessErr *customError.BusinessError
	if errors.As(err, &businessErr) {
		return err
	}
	return customError.WrapDatabaseError(err)
}
