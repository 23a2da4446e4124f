package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/betstack/betstack/internal/coordinator"
)

func newAccountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Account and session commands",
	}

	cmd.AddCommand(newAccountRegisterCmd())
	cmd.AddCommand(newAccountLoginCmd())
	cmd.AddCommand(newAccountLogoutCmd())
	cmd.AddCommand(newAccountWhoamiCmd())

	return cmd
}

func newAccountRegisterCmd() *cobra.Command {
	var user, email, pass string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"username": user,
				"email":    email,
				"password": pass,
			}
			var result AuthResult

			if err := client.Post("/api/v1/auth/register", req, &result); err != nil {
				return err
			}

			// Persist the session so later commands are logged in
			registered := result.User.toModel()
			if err := cfg.writeCredentials(&storedCredentials{Token: result.Token, User: &registered}); err != nil {
				return fmt.Errorf("failed to save credentials: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "Username (required)")
	cmd.Flags().StringVar(&email, "email", "", "Email (required)")
	cmd.Flags().StringVar(&pass, "pass", "", "Password (required)")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("pass")

	return cmd
}

func newAccountLoginCmd() *cobra.Command {
	var user, pass string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in with an existing account",
		RunE: func(cmd *cobra.Command, args []string) error {
			coord := newCoordinator()
			defer coord.Dispose()

			if err := coord.Bootstrap(cmd.Context()); err != nil {
				return err
			}
			if err := coord.Login(cmd.Context(), user, pass); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			if u := coord.User(); u != nil {
				out.PrintMessage(fmt.Sprintf("Logged in as %s", u.Username))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "Username (required)")
	cmd.Flags().StringVar(&pass, "pass", "", "Password (required)")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("pass")

	return cmd
}

func newAccountLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and clear stored credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Invalidate server-side first; the local state clears
			// regardless of the outcome
			if cfg.Token != "" {
				_ = client.Delete("/api/v1/session")
			}

			coord := newCoordinator()
			defer coord.Dispose()
			if err := coord.Bootstrap(cmd.Context()); err != nil {
				return err
			}
			if err := coord.Logout(cmd.Context()); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Logged out")
			return nil
		},
	}
}

func newAccountWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in account",
		RunE: func(cmd *cobra.Command, args []string) error {
			coord := newCoordinator()
			defer coord.Dispose()

			if err := coord.Bootstrap(cmd.Context()); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			if coord.Status() != coordinator.StatusAuthenticated {
				out.PrintMessage("Not logged in")
				return nil
			}

			// Prefer the authoritative snapshot over the stored one
			coord.RefetchUser(cmd.Context())

			u := coord.User()
			if u == nil {
				out.PrintMessage("Not logged in")
				return nil
			}

			out.Print(User{
				ID:        string(u.ID),
				Username:  u.Username,
				Email:     u.Email,
				Wallet:    Wallet{Balance: u.Wallet.Balance},
				CreatedAt: u.CreatedAt,
			})
			return nil
		},
	}
}
