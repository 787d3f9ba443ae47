package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acadia-labs/acadia-cli/internal/core/domain"
)

func TestReport_NoRuns(t *testing.T) {
	svc := NewReportService(&fakeTracker{})

	out, err := svc.Report(context.Background())
	require.NoError(t, err)

	assert.Contains(t, out, "Pipeline run report")
	for _, step := range domain.Steps {
		assert.Contains(t, out, step)
	}
	assert.Contains(t, out, "no runs recorded")
}

func TestReport_ComparesLastTwoRuns(t *testing.T) {
	tracker := &fakeTracker{}
	base := time.Date(2026, 8, 27, 9, 0, 0, 0, time.UTC)

	require.NoError(t, tracker.Record(context.Background(), &domain.StepRun{
		PipelineID: "p1", Step: domain.StepLoad, RunAt: base,
		Duration: 2 * time.Second,
		ItemsIn:  3, ItemsOut: 3,
		Status:  domain.StatusSuccess,
		Metrics: map[string]float64{domain.MetricVectorsWritten: 100},
	}))
	require.NoError(t, tracker.Record(context.Background(), &domain.StepRun{
		PipelineID: "p2", Step: domain.StepLoad, RunAt: base.Add(time.Hour),
		Duration: 3 * time.Second,
		ItemsIn:  4, ItemsOut: 3, ItemsSkipped: 1,
		Status:  domain.StatusPartial,
		Metrics: map[string]float64{domain.MetricVectorsWritten: 120},
	}))

	out, err := newReport(tracker).Report(context.Background())
	require.NoError(t, err)

	assert.Contains(t, out, "last run:  2026-08-27 10:00:00")
	assert.Contains(t, out, "status=partial")
	assert.Contains(t, out, "previous:  2026-08-27 09:00:00")
	assert.Contains(t, out, "change:    out +0, skipped +1")
	assert.Contains(t, out, "vectors_written=120")
}

func TestReport_SingleRunHasNoPrevious(t *testing.T) {
	tracker := &fakeTracker{}
	require.NoError(t, tracker.Record(context.Background(), &domain.StepRun{
		PipelineID: "p1", Step: domain.StepExtract,
		RunAt:  time.Date(2026, 8, 27, 9, 0, 0, 0, time.UTC),
		Status: domain.StatusSuccess,
	}))

	out, err := newReport(tracker).Report(context.Background())
	require.NoError(t, err)
	assert.Contains(t, out, "previous:  none")
}

func newReport(tracker *fakeTracker) *ReportService {
	return NewReportService(tracker)
}
