package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/kidscreen/internal/export"
	"github.com/abhisek/kidscreen/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past submissions or export them to a spreadsheet",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		xlsxPath, _ := cmd.Flags().GetString("xlsx")
		failedOnly, _ := cmd.Flags().GetBool("failed")
		since, _ := cmd.Flags().GetString("since")
		until, _ := cmd.Flags().GetString("until")

		opts := store.QueryOpts{Limit: limit}
		var err error
		if opts.From, err = parseWhen(since, false); err != nil {
			return fmt.Errorf("--since: %w", err)
		}
		if opts.To, err = parseWhen(until, true); err != nil {
			return fmt.Errorf("--until: %w", err)
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		subs, err := st.SubmissionRepo().List(context.Background(), opts)
		if err != nil {
			return fmt.Errorf("query submissions: %w", err)
		}
		if failedOnly {
			kept := subs[:0]
			for _, s := range subs {
				if !s.Success {
					kept = append(kept, s)
				}
			}
			subs = kept
		}

		out := cmd.OutOrStdout()
		if xlsxPath != "" {
			if err := export.Save(xlsxPath, subs); err != nil {
				return err
			}
			fmt.Fprintf(out, "Wrote %d submissions to %s\n", len(subs), xlsxPath)
			return nil
		}

		if len(subs) == 0 {
			fmt.Fprintln(out, "No submissions found.")
			return nil
		}

		fmt.Fprintf(out, "%-5s  %-19s  %-8s  %-2s  %s\n", "ID", "Timestamp", "Ms", "OK", "Prediction")
		fmt.Fprintln(out, strings.Repeat("─", 72))
		for _, s := range subs {
			ok := "✓"
			result := s.Prediction
			if !s.Success {
				ok = "✗"
				result = s.ErrorMessage
			}
			fmt.Fprintf(out, "%-5d  %-19s  %-8d  %-2s  %s\n",
				s.ID, s.Timestamp.Local().Format("2006-01-02 15:04:05"), s.LatencyMs, ok, result)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Maximum number of submissions (0 = all)")
	historyCmd.Flags().String("xlsx", "", "Write submissions to this .xlsx file instead of printing")
	historyCmd.Flags().Bool("failed", false, "Only show failed submissions")
	historyCmd.Flags().String("since", "", "Only submissions on or after this date (YYYY-MM-DD or RFC 3339)")
	historyCmd.Flags().String("until", "", "Only submissions on or before this date (YYYY-MM-DD or RFC 3339)")
}

// parseWhen reads a local date or an RFC 3339 timestamp. A bare date with
// endOfDay set covers the whole day. Empty input is the zero time.
func parseWhen(v string, endOfDay bool) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	d, err := time.ParseInLocation(time.DateOnly, v, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%q is neither YYYY-MM-DD nor RFC 3339", v)
	}
	if endOfDay {
		d = d.AddDate(0, 0, 1).Add(-time.Millisecond)
	}
	return d, nil
}
