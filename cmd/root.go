package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "kidscreen",
	Short: "Early autism screening questionnaire for parents",
	Long: `kidscreen walks a parent through a short questionnaire about their child
and asks a prediction service for a screening result. It is a helper, not a
diagnosis.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, false)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Path to config TOML (default $XDG_CONFIG_HOME/kidscreen/config.toml)")
	pf.String("db", "", "Path to SQLite database file (overrides KIDSCREEN_DB env var)")
	pf.String("endpoint", "", "Prediction endpoint URL (overrides KIDSCREEN_ENDPOINT env var)")
	pf.Bool("mock", false, "Answer every submission locally instead of calling the endpoint")

	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(predictCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(questionsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}
