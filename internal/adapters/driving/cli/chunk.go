package cli

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var chunkCmd = &cobra.Command{
	Use:   "chunk",
	Short: "Split processed documents into overlapping chunks",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		return app.runStep(cmd, app.chunkService(), uuid.NewString())
	},
}

func init() {
	rootCmd.AddCommand(chunkCmd)
}
