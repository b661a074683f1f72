// Package cli implements pledgectl, the operator command line for the pledge engine.
package cli

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/segyhp/pledge-engine/internal/domain"
	"github.com/segyhp/pledge-engine/pkg/utils"
)

// Engine is the subset of engine operations that need a ledger.
type Engine interface {
	ApplyPayment(ctx context.Context, pledgeID uuid.UUID, request *domain.PaymentRequest) (*domain.PaymentReceipt, error)
	SweepAutoClose(ctx context.Context) (int, error)
}

// Opener connects an Engine on demand. The returned func releases its resources.
type Opener func(ctx context.Context) (Engine, func(), error)

// NewRootCommand builds the pledgectl command tree. Pure calculations never call open.
func NewRootCommand(open Opener) *cobra.Command {
	root := &cobra.Command{
		Use:   "pledgectl",
		Short: "Operate the pledge engine",
		Long: `pledgectl prices amounts against the interest slabs and performs
operator actions (payments, auto-close sweeps) against the pledge ledger.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newRateCmd())
	root.AddCommand(newInterestCmd())
	root.AddCommand(newQuoteCmd())
	root.AddCommand(newSweepCmd(open))
	root.AddCommand(newApplyCmd(open))

	return root
}

func parseAmount(name, raw string) (decimal.Decimal, error) {
	amount, err := utils.DecimalFromString(raw)
	if err != nil {
		return decimal.Zero, &argError{name: name, value: raw, err: err}
	}
	return amount, nil
}

type argError struct {
	name  string
	value string
	err   error
}

func (e *argError) Error() string {
	return "invalid " + e.name + " " + e.value + ": " + e.err.Error()
}

func (e *argError) Unwrap() error { return e.err }
