package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/kidscreen/internal/app"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Open the questionnaire without the splash screen",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, true)
	},
}

// runApp builds dependencies and launches the TUI.
func runApp(cmd *cobra.Command, skipSplash bool) error {
	d, err := loadDeps(cmd)
	if err != nil {
		return err
	}
	defer d.Close()

	return app.Run(app.Options{
		Predictor:  d.predictor,
		Repo:       d.repo,
		Logger:     d.logger,
		Status:     d.status,
		SkipSplash: skipSplash,
	})
}
