package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/betstack/betstack/internal/coordinator"
)

func newTopupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "topup",
		Short: "Wallet top-up commands",
	}

	cmd.AddCommand(newTopupVerifyCmd())

	return cmd
}

func newTopupVerifyCmd() *cobra.Command {
	var reference string

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify a payment reference and credit the wallet",
		RunE: func(cmd *cobra.Command, args []string) error {
			coord := newCoordinator()
			defer coord.Dispose()

			if err := coord.Bootstrap(cmd.Context()); err != nil {
				return err
			}
			if coord.Status() != coordinator.StatusAuthenticated {
				return fmt.Errorf("not logged in")
			}

			flow := coordinator.NewPaymentFlow(coord, &apiVerifier{client: client})
			result, err := flow.Run(cmd.Context(), reference)
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(TopupResult{
				Reference: reference,
				Status:    result.State.String(),
				Message:   result.Message,
			})

			if result.State == coordinator.FlowSuccess {
				if u := coord.User(); u != nil {
					out.PrintMessage(fmt.Sprintf("New balance: %d", u.Wallet.Balance))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&reference, "reference", "", "Payment reference from the gateway (required)")
	_ = cmd.MarkFlagRequired("reference")

	return cmd
}
