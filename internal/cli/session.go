package cli

import (
	"github.com/spf13/cobra"
)

func newSessionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "session",
		Short: "Show the server's view of the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result SessionInfo

			if err := client.Get("/api/v1/session", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
