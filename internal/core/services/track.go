package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/acadia-labs/acadia-cli/internal/core/domain"
	"github.com/acadia-labs/acadia-cli/internal/core/ports/driven"
	"github.com/acadia-labs/acadia-cli/internal/core/ports/driving"
)

// RunTracked executes one pipeline stage and records its outcome under
// the given pipeline id. Tracker write failures are logged, never
// fatal: a run that produced its artifacts does not fail because its
// bookkeeping did.
func RunTracked(ctx context.Context, runner driving.StepRunner, tracker driven.RunTracker, pipelineID string, log *zap.Logger) (*driving.StepResult, error) {
	step := runner.Step()
	log.Info("step starting", zap.String("step", step), zap.String("pipeline_id", pipelineID))

	start := time.Now()
	result, err := runner.Run(ctx)
	duration := time.Since(start)

	run := &domain.StepRun{
		PipelineID: pipelineID,
		Step:       step,
		RunAt:      start.UTC(),
		Duration:   duration,
	}

	switch {
	case err != nil:
		run.Status = domain.StatusFailed
	case result == nil:
		run.Status = domain.StatusNoData
	default:
		run.Status = result.Status()
		run.ItemsIn = result.ItemsIn
		run.ItemsOut = result.ItemsOut
		run.ItemsSkipped = result.ItemsSkipped
		run.Metrics = result.Metrics
	}

	if terr := tracker.Record(ctx, run); terr != nil {
		log.Error("recording step run failed", zap.String("step", step), zap.Error(terr))
	}

	if err != nil {
		log.Error("step failed",
			zap.String("step", step),
			zap.Duration("duration", duration),
			zap.Error(err))
		return result, err
	}

	log.Info("step finished",
		zap.String("step", step),
		zap.String("status", string(run.Status)),
		zap.Int("in", run.ItemsIn),
		zap.Int("out", run.ItemsOut),
		zap.Int("skipped", run.ItemsSkipped),
		zap.Duration("duration", duration))

	return result, nil
}
