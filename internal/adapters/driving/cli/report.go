package cli

import (
	"github.com/spf13/cobra"

	"github.com/acadia-labs/acadia-cli/internal/core/services"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Compare the latest pipeline runs per stage",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		report, err := services.NewReportService(app.store.RunTracker()).Report(cmd.Context())
		if err != nil {
			return err
		}

		cmd.Print(report)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
}
