package cli

import (
	"bufio"
	"fmt"
	"strings"

	"venue-booking/internal/pkg/password"

	"github.com/spf13/cobra"
)

func newHashPasswordCmd() *cobra.Command {
	var cost int

	c := &cobra.Command{
		Use:   "hash-password [password]",
		Short: "Print a bcrypt hash for ADMIN_PASSWORD_HASH (reads stdin without an argument)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var pw string
			if len(args) == 1 {
				pw = args[0]
			} else {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("read password: %w", err)
				}
				pw = strings.TrimRight(line, "\r\n")
			}

			hash, err := password.HashPasswordWithCost(pw, cost)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}

	c.Flags().IntVar(&cost, "cost", password.DefaultCost, "bcrypt cost")
	return c
}
