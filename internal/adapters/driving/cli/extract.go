package cli

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Fetch enabled sources into the raw directory",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		return app.runStep(cmd, app.extractService(), uuid.NewString())
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)
}
