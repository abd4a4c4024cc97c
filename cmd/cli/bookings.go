package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"venue-booking/internal/usecase/commands"
	"venue-booking/internal/usecase/queries"

	"github.com/spf13/cobra"
)

func newBookingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bookings",
		Short: "Inspect and manage stored bookings",
	}
	cmd.AddCommand(newBookingsListCmd())
	cmd.AddCommand(newBookingsSetStatusCmd())
	cmd.AddCommand(newBookingsDeleteCmd())
	return cmd
}

func newBookingsListCmd() *cobra.Command {
	var status string

	c := &cobra.Command{
		Use:   "list",
		Short: "List bookings in submission order",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var q queries.BookingQueries
			return runCore(cmd.Context(), func(ctx context.Context) error {
				list, err := q.List(ctx, status)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if list.Degraded {
					fmt.Fprintln(out, "warning: storage unreadable, showing nothing")
				}
				w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tDATE\tTIME\tNAME\tPHONE\tGUESTS\tEVENT\tSTATUS")
				for _, b := range list.Bookings {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
						b.ID, b.Date, b.Time, b.Name, b.Phone, b.Guests, b.EventType, b.Status)
				}
				if err := w.Flush(); err != nil {
					return err
				}
				fmt.Fprintf(out, "\nall=%d pending=%d confirmed=%d cancelled=%d\n",
					list.Counts.All, list.Counts.Pending, list.Counts.Confirmed, list.Counts.Cancelled)
				return nil
			}, &q)
		},
	}

	c.Flags().StringVar(&status, "status", "", "filter: pending, confirmed or cancelled")
	return c
}

func newBookingsSetStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-status <id> <pending|confirmed|cancelled>",
		Short: "Change the status of a booking",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var cmds commands.BookingCommands
			return runCore(cmd.Context(), func(ctx context.Context) error {
				view, err := cmds.ChangeStatus(ctx, args[0], args[1])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "booking %s is now %s\n", view.ID, view.Status)
				return nil
			}, &cmds)
		},
	}
}

func newBookingsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a booking",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var cmds commands.BookingCommands
			return runCore(cmd.Context(), func(ctx context.Context) error {
				if err := cmds.Delete(ctx, args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "booking %s deleted\n", args[0])
				return nil
			}, &cmds)
		},
	}
}
