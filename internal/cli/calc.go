package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/segyhp/pledge-engine/internal/interest"
)

func newRateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rate <amount>",
		Short: "Show the slab rate for an amount",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount("amount", args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "amount: %s\nrate: %s%%\nslab: %s\n",
				amount.StringFixed(2), interest.Rate(amount).String(), interest.SlabLabel(amount))
			return nil
		},
	}
}

func newInterestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "interest <amount>",
		Short: "Show the flat monthly interest for an amount",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount("amount", args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "amount: %s\nrate: %s%%\nmonthly interest: %s\n",
				amount.StringFixed(2), interest.Rate(amount).String(), interest.MonthlyInterest(amount).StringFixed(2))
			return nil
		},
	}
}

func newQuoteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quote <original> <payment>",
		Short: "Preview how a partial payment changes rate and monthly interest",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			original, err := parseAmount("original", args[0])
			if err != nil {
				return err
			}
			payment, err := parseAmount("payment", args[1])
			if err != nil {
				return err
			}

			quote, err := interest.QuotePartialPayment(original, payment)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "original: %s at %s%% (monthly %s)\n",
				quote.OriginalAmount.StringFixed(2), quote.OriginalInterestRate, quote.OriginalMonthlyInterest.StringFixed(2))
			fmt.Fprintf(out, "remaining: %s at %s%% (monthly %s)\n",
				quote.RemainingAmount.StringFixed(2), quote.NewInterestRate, quote.NewMonthlyInterest.StringFixed(2))
			return nil
		},
	}
}
