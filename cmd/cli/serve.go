package cli

import (
	"venue-booking/cmd/bootstrap"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := fx.New(bootstrap.Module)
			if err := app.Err(); err != nil {
				return err
			}
			// blocks until SIGINT/SIGTERM, then runs stop hooks
			app.Run()
			return nil
		},
	}
}
