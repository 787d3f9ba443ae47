package cli

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Embed chunks and rebuild the store and vector index",
	Long: `Rebuilds the relational store from the chunked corpus, embeds
every chunk in batches, and persists the vector index together with
its positional metadata. A failed embedding batch degrades to zero
vectors instead of aborting the run.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		svc, err := app.loadService()
		if err != nil {
			return err
		}

		return app.runStep(cmd, svc, uuid.NewString())
	},
}

func init() {
	rootCmd.AddCommand(loadCmd)
}
