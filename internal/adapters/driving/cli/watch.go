package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/acadia-labs/acadia-cli/internal/core/ports/driving"
)

// watchDebounce batches rapid file events into one pipeline run.
const watchDebounce = 2 * time.Second

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the raw directory and re-run the pipeline on changes",
	Long: `Watches the raw directory for new or changed pages and re-runs
transform, chunk and load when the directory settles. Runs until
interrupted.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
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
		app.transformService(),
		app.chunkService(),
		loadSvc,
	}

	rawDir := app.cfg.RawDir()
	if err := os.MkdirAll(rawDir, 0o700); err != nil {
		return fmt.Errorf("creating raw directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(rawDir); err != nil {
		return fmt.Errorf("watching %s: %w", rawDir, err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	cmd.SetContext(ctx)

	cmd.Printf("watching %s\n", rawDir)

	debounce := time.NewTimer(watchDebounce)
	if !debounce.Stop() {
		<-debounce.C
	}

	for {
		select {
		case <-ctx.Done():
			cmd.Println("watch stopped")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !strings.HasSuffix(event.Name, ".html") {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			app.log.Debug("raw file changed",
				zap.String("file", event.Name),
				zap.String("op", event.Op.String()))
			debounce.Reset(watchDebounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			app.log.Warn("watcher error", zap.Error(err))

		case <-debounce.C:
			pipelineID := uuid.NewString()
			cmd.Printf("change detected, pipeline %s\n", pipelineID)
			if err := runSteps(ctx, cmd, app, steps, pipelineID); err != nil {
				// Keep watching; the next change may succeed.
				app.log.Error("pipeline run failed", zap.Error(err))
			}
		}
	}
}

// runSteps executes the given stages in order under one pipeline id.
func runSteps(ctx context.Context, cmd *cobra.Command, app *app, steps []driving.StepRunner, pipelineID string) error {
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := app.runStep(cmd, step, pipelineID); err != nil {
			return err
		}
	}
	return nil
}
