package cmd

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all stored submissions",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		repo := st.SubmissionRepo()
		ctx := context.Background()
		n, err := repo.Count(ctx)
		if err != nil {
			return fmt.Errorf("count submissions: %w", err)
		}
		out := cmd.OutOrStdout()
		if n == 0 {
			fmt.Fprintln(out, "Nothing to delete.")
			return nil
		}

		if !yes {
			fmt.Fprintf(out, "Delete %d stored submissions? [y/N] ", n)
			line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if a := strings.ToLower(strings.TrimSpace(line)); a != "y" && a != "yes" {
				fmt.Fprintln(out, "Aborted.")
				return nil
			}
		}

		if err := repo.Clear(ctx); err != nil {
			return fmt.Errorf("clear submissions: %w", err)
		}
		fmt.Fprintf(out, "Deleted %d submissions.\n", n)
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
}
