package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/kidscreen/internal/questionnaire"
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Print every questionnaire page with field names and accepted values",
	Long: `Print the questionnaire page by page.

Useful for writing an answers file for "kidscreen predict". No database or
network access.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for _, page := range questionnaire.Pages() {
			if len(page.Fields) == 0 {
				continue
			}
			fmt.Fprintf(out, "%d. %s\n", int(page.Step)+1, page.Title)
			fmt.Fprintln(out, strings.Repeat("─", 60))
			for _, name := range page.Fields {
				f, _ := questionnaire.Lookup(name)
				fmt.Fprintf(out, "  %-10s %s\n", f.Name, f.Prompt)
				fmt.Fprintf(out, "  %-10s %s\n", "", acceptedValues(f))
			}
			fmt.Fprintln(out)
		}
		return nil
	},
}

func acceptedValues(f questionnaire.Field) string {
	if f.Kind == questionnaire.KindNumeric {
		return "number"
	}
	vals := make([]string, len(f.Options))
	for i, o := range f.Options {
		vals[i] = o.Value
	}
	return strings.Join(vals, " | ")
}
