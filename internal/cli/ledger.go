package cli

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/segyhp/pledge-engine/internal/domain"
)

func newSweepCmd(open Opener) *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Close ACTIVE pledges whose principal has reached zero",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, closeEngine, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer closeEngine()

			closed, err := engine.SweepAutoClose(cmd.Context())
			if err != nil {
				return fmt.Errorf("sweep stopped after closing %d pledges: %w", closed, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "closed %d pledges\n", closed)
			return nil
		},
	}
}

func newApplyCmd(open Opener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply <pledge-id> <amount>",
		Short: "Apply a payment to a pledge",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pledgeID, err := uuid.Parse(args[0])
			if err != nil {
				return &argError{name: "pledge id", value: args[0], err: err}
			}
			amount, err := parseAmount("amount", args[1])
			if err != nil {
				return err
			}
			notes, _ := cmd.Flags().GetString("notes")

			engine, closeEngine, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer closeEngine()

			receipt, err := engine.ApplyPayment(cmd.Context(), pledgeID, &domain.PaymentRequest{Amount: amount, Notes: notes})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "payment %s (%s) applied\nprincipal: %s\nrate: %s%%\nmonthly interest: %s\nstatus: %s\n",
				receipt.Payment.ID,
				receipt.Payment.PaymentType,
				receipt.Pledge.Principal.Decimal.StringFixed(2),
				receipt.Pledge.InterestRate.Decimal.String(),
				receipt.MonthlyInterest.StringFixed(2),
				receipt.Pledge.Status,
			)
			return nil
		},
	}

	cmd.Flags().String("notes", "", "Note stored with the payment")
	return cmd
}
