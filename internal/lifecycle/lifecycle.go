// Package lifecycle holds the pledge status transition rules.
//
// Statuses only move forward: ACTIVE -> PARTIALLY_PAID -> CLOSED.
// DEFAULTED and COMPLETED are terminal and only ever set by an administrator.
package lifecycle

import (
	"github.com/shopspring/decimal"

	"github.com/segyhp/pledge-engine/internal/domain"
)

// Initial is the status of a newly created pledge.
const Initial = domain.PledgeStatusActive

var rank = map[domain.PledgeStatus]int{
	domain.PledgeStatusActive:        0,
	domain.PledgeStatusPartiallyPaid: 1,
	domain.PledgeStatusClosed:        2,
}

// IsTerminal reports whether no payment or sweep may change the status any more.
func IsTerminal(status domain.PledgeStatus) bool {
	switch status {
	case domain.PledgeStatusClosed, domain.PledgeStatusDefaulted, domain.PledgeStatusCompleted:
		return true
	}
	return false
}

// Next evaluates the transition rule for a principal and the cumulative amount paid so far.
func Next(principal decimal.Decimal, totalPaid decimal.Decimal) domain.PledgeStatus {
	switch {
	case !principal.IsPositive():
		return domain.PledgeStatusClosed
	case totalPaid.IsPositive():
		return domain.PledgeStatusPartiallyPaid
	default:
		return domain.PledgeStatusActive
	}
}

// CanTransition reports whether moving from one status to another respects forward-only ordering.
// Staying in the same status is always allowed.
func CanTransition(from domain.PledgeStatus, to domain.PledgeStatus) bool {
	if from == to {
		return true
	}
	if IsTerminal(from) {
		return false
	}
	fromRank, ok := rank[from]
	if !ok {
		return false
	}
	toRank, ok := rank[to]
	if !ok {
		return false
	}
	return toRank > fromRank
}

// Advance applies Next to the current status, never moving backwards.
// Terminal statuses are returned unchanged.
func Advance(current domain.PledgeStatus, principal decimal.Decimal, totalPaid decimal.Decimal) domain.PledgeStatus {
	next := Next(principal, totalPaid)
	if CanTransition(current, next) {
		return next
	}
	return current
}

// NeedsAutoClose reports whether the sweep should close this pledge.
func NeedsAutoClose(p *domain.Pledge) bool {
	return p.Status == domain.PledgeStatusActive && p.Principal.Valid && !p.Principal.Decimal.IsPositive()
}
