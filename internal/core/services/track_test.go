package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/acadia-labs/acadia-cli/internal/core/domain"
	"github.com/acadia-labs/acadia-cli/internal/core/ports/driving"
)

// stubRunner returns a fixed result or error.
type stubRunner struct {
	step   string
	result *driving.StepResult
	err    error
}

func (s *stubRunner) Run(context.Context) (*driving.StepResult, error) { return s.result, s.err }
func (s *stubRunner) Step() string                                     { return s.step }

func TestRunTracked_RecordsSuccess(t *testing.T) {
	tracker := &fakeTracker{}
	runner := &stubRunner{
		step: domain.StepChunk,
		result: &driving.StepResult{
			Step:     domain.StepChunk,
			ItemsIn:  3,
			ItemsOut: 3,
			Metrics:  map[string]float64{domain.MetricChunksTotal: 12},
		},
	}

	result, err := RunTracked(context.Background(), runner, tracker, "pipe-1", zap.NewNop())
	require.NoError(t, err)
	require.NotNil(t, result)

	require.Len(t, tracker.runs, 1)
	run := tracker.runs[0]
	assert.Equal(t, "pipe-1", run.PipelineID)
	assert.Equal(t, domain.StepChunk, run.Step)
	assert.Equal(t, domain.StatusSuccess, run.Status)
	assert.Equal(t, 3, run.ItemsIn)
	assert.Equal(t, 3, run.ItemsOut)
	assert.Equal(t, 12.0, run.Metrics[domain.MetricChunksTotal])
}

func TestRunTracked_RecordsFailure(t *testing.T) {
	tracker := &fakeTracker{}
	runner := &stubRunner{step: domain.StepLoad, err: errors.New("boom")}

	_, err := RunTracked(context.Background(), runner, tracker, "pipe-1", zap.NewNop())
	require.Error(t, err)

	require.Len(t, tracker.runs, 1)
	assert.Equal(t, domain.StatusFailed, tracker.runs[0].Status)
}

func TestRunTracked_DegradedResultIsPartial(t *testing.T) {
	tracker := &fakeTracker{}
	runner := &stubRunner{
		step: domain.StepLoad,
		result: &driving.StepResult{
			Step:     domain.StepLoad,
			ItemsIn:  2,
			ItemsOut: 2,
			Degraded: true,
		},
	}

	_, err := RunTracked(context.Background(), runner, tracker, "pipe-1", zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPartial, tracker.runs[0].Status)
}

func TestRunTracked_TrackerErrorIsNotFatal(t *testing.T) {
	tracker := &fakeTracker{recordErr: errors.New("disk full")}
	runner := &stubRunner{
		step:   domain.StepExtract,
		result: &driving.StepResult{Step: domain.StepExtract, ItemsIn: 1, ItemsOut: 1},
	}

	result, err := RunTracked(context.Background(), runner, tracker, "pipe-1", zap.NewNop())
	require.NoError(t, err)
	assert.NotNil(t, result)
}
