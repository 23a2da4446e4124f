package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfg    *Config
	client *Client
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "betstack",
		Short: "CLI tool for the betstack platform API",
		Long: `betstack is a CLI tool for interacting with the betstack JSON API.

It manages accounts and sessions, verifies wallet top-ups, and stores
session credentials locally so commands stay logged in between runs.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load the session from the credentials file if the token
			// was not provided via flag/env
			if err := cfg.LoadToken(); err != nil {
				return err
			}

			// Create HTTP client
			client = NewClient(cfg.ServerURL, cfg.Token)
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: BETSTACK_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.Token, "token", cfg.Token, "Session token (env: BETSTACK_TOKEN)")
	rootCmd.PersistentFlags().StringVar(&cfg.CredentialsFile, "credentials-file", cfg.CredentialsFile, "Credentials file path (env: BETSTACK_CREDENTIALS_FILE)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newAccountCmd())
	rootCmd.AddCommand(newSessionCmd())
	rootCmd.AddCommand(newTopupCmd())
	rootCmd.AddCommand(newHealthCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
