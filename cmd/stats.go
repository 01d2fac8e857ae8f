package cmd

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/abhisek/kidscreen/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarise past submissions",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		subs, err := st.SubmissionRepo().List(context.Background(), store.QueryOpts{})
		if err != nil {
			return fmt.Errorf("query submissions: %w", err)
		}

		out := cmd.OutOrStdout()
		s := summarize(subs)
		if s.Total == 0 {
			fmt.Fprintln(out, "No submissions found.")
			return nil
		}

		fmt.Fprintf(out, "Submissions:   %d\n", s.Total)
		fmt.Fprintf(out, "Succeeded:     %d (%.0f%%)\n", s.Succeeded, 100*float64(s.Succeeded)/float64(s.Total))
		fmt.Fprintf(out, "Failed:        %d\n", s.Total-s.Succeeded)
		if s.Succeeded > 0 {
			fmt.Fprintf(out, "Avg latency:   %dms\n", s.AvgLatencyMs)
		}
		if len(s.Labels) > 0 {
			fmt.Fprintln(out, "\nPredictions:")
			for _, lc := range s.Labels {
				fmt.Fprintf(out, "  %-30s %d\n", lc.Label, lc.Count)
			}
		}
		return nil
	},
}

type labelCount struct {
	Label string
	Count int
}

type summary struct {
	Total        int
	Succeeded    int
	AvgLatencyMs int64
	Labels       []labelCount // most frequent first
}

func summarize(subs []store.Submission) summary {
	s := summary{Total: len(subs)}
	counts := make(map[string]int)
	var latency int64
	for _, sub := range subs {
		if !sub.Success {
			continue
		}
		s.Succeeded++
		latency += sub.LatencyMs
		counts[sub.Prediction]++
	}
	if s.Succeeded > 0 {
		s.AvgLatencyMs = latency / int64(s.Succeeded)
	}
	for label, n := range counts {
		s.Labels = append(s.Labels, labelCount{Label: label, Count: n})
	}
	sort.Slice(s.Labels, func(i, j int) bool {
		if s.Labels[i].Count != s.Labels[j].Count {
			return s.Labels[i].Count > s.Labels[j].Count
		}
		return s.Labels[i].Label < s.Labels[j].Label
	})
	return s
}
