// Package cli is the venue-booking command line: the HTTP server plus
// maintenance commands that work on the same booking store.
package cli

import (
	"context"
	"fmt"
	"os"

	"venue-booking/cmd/bootstrap"
	"venue-booking/internal/usecase/shared"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "venue-booking",
		Short:         "Venue booking requests, conflict checks and operator notifications",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newServeCmd())
	root.AddCommand(newBookingsCmd())
	root.AddCommand(newNotifyCmd())
	root.AddCommand(newHashPasswordCmd())

	return root
}

func Execute() {
	if err := NewRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runCore starts the non-HTTP part of the app, fills targets and runs fn.
// Stopping the app waits for any notification fn started.
func runCore(ctx context.Context, fn func(ctx context.Context) error, targets ...any) error {
	app := fx.New(
		bootstrap.CoreModule,
		fx.Provide(func() shared.EventPublisher { return shared.NopPublisher{} }),
		fx.Populate(targets...),
		fx.NopLogger,
	)
	if err := app.Start(ctx); err != nil {
		return err
	}

	runErr := fn(ctx)

	if err := app.Stop(context.Background()); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}
