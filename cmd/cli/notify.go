package cli

import (
	"context"
	"fmt"

	"venue-booking/internal/usecase/commands"

	"github.com/spf13/cobra"
)

func newNotifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notify",
		Short: "Operator notification tools",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "test",
		Short: "Send a test message through the configured channel",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var cmds commands.BookingCommands
			return runCore(cmd.Context(), func(ctx context.Context) error {
				outcome := cmds.SendTestNotification(ctx)
				if !outcome.Delivered() {
					return fmt.Errorf("test notification failed: %w", outcome.Err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "test notification delivered")
				return nil
			}, &cmds)
		},
	})
	return cmd
}
