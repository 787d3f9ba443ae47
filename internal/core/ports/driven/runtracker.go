package driven

import (
	"context"

	"github.com/acadia-labs/acadia-cli/internal/core/domain"
)

// RunTracker records the outcome of each pipeline stage execution,
// including named numeric metrics, and serves them back for reporting.
// Backed by SQLite tables that survive store rebuilds.
type RunTracker interface {
	// Record stores one stage outcome with its metrics.
	Record(ctx context.Context, run *domain.StepRun) error

	// LastRuns returns up to limit most recent runs of a step,
	// newest first, with metrics populated.
	LastRuns(ctx context.Context, step string, limit int) ([]domain.StepRun, error)
}
