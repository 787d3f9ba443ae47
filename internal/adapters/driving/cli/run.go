package cli

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/acadia-labs/acadia-cli/internal/core/ports/driving"
	"github.com/acadia-labs/acadia-cli/internal/core/services"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full pipeline: extract, transform, chunk, load",
	Long: `Runs all pipeline stages in order under a single pipeline id,
then prints the run report. A failed stage aborts the remaining ones.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		loadSvc, err := app.loadService()
		if err != nil {
			return err
		}

		steps := []driving.StepRunner{
			app.extractService(),
			app.transformService(),
			app.chunkService(),
			loadSvc,
		}

		pipelineID := uuid.NewString()
		cmd.Printf("pipeline %s\n", pipelineID)

		for _, step := range steps {
			if err := app.runStep(cmd, step, pipelineID); err != nil {
				return err
			}
		}

		report, err := services.NewReportService(app.store.RunTracker()).Report(cmd.Context())
		if err != nil {
			return err
		}
		cmd.Print(report)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
