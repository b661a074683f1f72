// Package interest holds the slab rate rules and interest accrual formulas.
// Every function here is pure; callers supply the clock.
package interest

import (
	"github.com/shopspring/decimal"

	"github.com/segyhp/pledge-engine/pkg/utils"
)

// Slab maps a half-open principal range [Min, Max) to a monthly percentage.
// A zero Max means the slab is unbounded above.
type Slab struct {
	Min   decimal.Decimal
	Max   decimal.Decimal
	Rate  decimal.Decimal
	Label string
}

var (
	LowerThreshold = decimal.NewFromInt(50000)
	UpperThreshold = decimal.NewFromInt(100000)
)

// Slabs are ordered from the smallest principal to the largest.
var Slabs = []Slab{
	{Min: decimal.Zero, Max: LowerThreshold, Rate: utils.DecimalFromFloat(3.0), Label: "0-49,999 (3%)"},
	{Min: LowerThreshold, Max: UpperThreshold, Rate: utils.DecimalFromFloat(2.5), Label: "50,000-99,999 (2.5%)"},
	{Min: UpperThreshold, Rate: utils.DecimalFromFloat(2.0), Label: "1,00,000+ (2%)"},
}

func (s Slab) contains(amount decimal.Decimal) bool {
	if amount.LessThan(s.Min) {
		return false
	}
	return s.Max.IsZero() || amount.LessThan(s.Max)
}

// SlabFor returns the slab a positive amount falls into.
// Amounts at or below zero belong to no slab.
func SlabFor(amount decimal.Decimal) (Slab, bool) {
	if !amount.IsPositive() {
		return Slab{}, false
	}
	for _, s := range Slabs {
		if s.contains(amount) {
			return s, true
		}
	}
	return Slab{}, false
}

// Rate returns the monthly interest percentage for a principal.
func Rate(amount decimal.Decimal) decimal.Decimal {
	s, ok := SlabFor(amount)
	if !ok {
		return decimal.Zero
	}
	return s.Rate
}

// SlabLabel describes the slab of amount for display, e.g. "50,000-99,999 (2.5%)".
func SlabLabel(amount decimal.Decimal) string {
	if s, ok := SlabFor(amount); ok {
		return s.Label
	}
	return Slabs[0].Label
}
