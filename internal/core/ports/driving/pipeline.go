package driving

import (
	"context"

	"github.com/acadia-labs/acadia-cli/internal/core/domain"
)

// StepResult summarises one stage execution for tracking and display.
type StepResult struct {
	// Step is the stage name (see domain.Steps).
	Step string

	// ItemsIn is the number of inputs the stage considered.
	ItemsIn int

	// ItemsOut is the number of inputs processed successfully.
	ItemsOut int

	// ItemsSkipped is the number of inputs skipped or failed.
	ItemsSkipped int

	// Metrics carries named numeric counters specific to the stage,
	// e.g. chunks_total, embedding_failures, vectors_written.
	Metrics map[string]float64

	// Degraded marks a stage that completed with reduced quality even
	// though no input was skipped, e.g. zero-vector embedding fallbacks.
	Degraded bool
}

// Status derives the run status from the item counters. A stage that
// skipped anything or degraded its output is partial, not a full success.
func (r *StepResult) Status() domain.RunStatus {
	if r.ItemsSkipped > 0 || r.Degraded {
		return domain.StatusPartial
	}
	return domain.StatusSuccess
}

// StepRunner executes one pipeline stage.
type StepRunner interface {
	// Run executes the stage. A returned error is fatal for the stage;
	// recoverable per-item failures are reported via the result instead.
	Run(ctx context.Context) (*StepResult, error)

	// Step returns the stage name.
	Step() string
}

// Reporter renders a comparison of recent pipeline runs.
type Reporter interface {
	Report(ctx context.Context) (string, error)
}
