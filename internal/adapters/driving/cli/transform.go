package cli

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var transformCmd = &cobra.Command{
	Use:   "transform",
	Short: "Clean raw pages into processed text documents",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		return app.runStep(cmd, app.transformService(), uuid.NewString())
	},
}

func init() {
	rootCmd.AddCommand(transformCmd)
}
