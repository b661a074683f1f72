package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/segyhp/pledge-engine/internal/domain"
	"github.com/segyhp/pledge-engine/internal/interest"
	"github.com/segyhp/pledge-engine/internal/lifecycle"
	"github.com/segyhp/pledge-engine/internal/metrics"
)

// SweepAutoClose closes every ACTIVE pledge whose principal has dropped to zero or below
// and returns how many it closed. Running it again closes nothing new.
//
// Each pledge is re-read under its lock before closing, so a payment landing
// between the scan and the close is never overwritten. The sweep stops at the
// first failure and reports the pledges it had closed up to then.
func (s *PledgeService) SweepAutoClose(ctx context.Context) (closed int, err error) {
	started := time.Now()
	defer func() {
		metrics.ObserveSweep(closed, started, err)
	}()

	candidates, err := s.ledger.ListPledgesByStatus(ctx, domain.PledgeStatusActive)
	if err != nil {
		return 0, wrapLedgerError(err)
	}

	for _, candidate := range candidates {
		if !lifecycle.NeedsAutoClose(candidate) {
			continue
		}

		ok, err := s.closeStale(ctx, candidate.ID)
		if err != nil {
			s.logger.ErrorContext(ctx, "auto-close sweep failed", "pledge_id", candidate.ID, "closed", closed, "error", err)
			return closed, err
		}
		if ok {
			closed++
		}
	}

	if closed > 0 {
		s.logger.InfoContext(ctx, "auto-close sweep finished", "closed", closed, "scanned", len(candidates))
	}
	return closed, nil
}

func (s *PledgeService) closeStale(ctx context.Context, pledgeID uuid.UUID) (bool, error) {
	unlock, err := s.lockPledge(ctx, pledgeID)
	if err != nil {
		return false, err
	}
	defer unlock()

	current, err := s.ledger.LoadPledge(ctx, pledgeID)
	if err != nil {
		return false, wrapLedgerError(err)
	}
	if !lifecycle.NeedsAutoClose(current) {
		return false, nil
	}

	principal := current.Principal.Decimal
	updated := current.Clone()
	updated.Status = lifecycle.Advance(current.Status, principal, decimal.Zero)
	updated.InterestRate = domain.Money(interest.Rate(principal))

	if _, err := s.ledger.SavePledge(ctx, updated); err != nil {
		return false, wrapLedgerError(err)
	}

	s.logger.InfoContext(ctx, "pledge closed",
		"pledge_id", pledgeID,
		"trigger", metrics.TriggerSweep,
		"principal", principal.StringFixed(2),
	)
	return true, nil
}
