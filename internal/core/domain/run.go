package domain

import "time"

// RunStatus classifies the outcome of one pipeline stage execution.
type RunStatus string

const (
	// StatusSuccess means the stage completed with no skipped items.
	StatusSuccess RunStatus = "success"

	// StatusPartial means the stage completed but skipped or degraded
	// some items. Distinct from full success and from failure.
	StatusPartial RunStatus = "partial"

	// StatusFailed means the stage aborted with an error.
	StatusFailed RunStatus = "failed"

	// StatusNoData means the stage finished without recording results.
	StatusNoData RunStatus = "no_data"
)

// Pipeline step names, in execution order.
const (
	StepExtract   = "extract"
	StepTransform = "transform"
	StepChunk     = "chunk"
	StepLoad      = "load"
)

// Steps lists the pipeline stages in execution order.
var Steps = []string{StepExtract, StepTransform, StepChunk, StepLoad}

// Named run metrics reported by the stages.
const (
	MetricChunksTotal       = "chunks_total"
	MetricEmbeddingFailures = "embedding_failures"
	MetricVectorsWritten    = "vectors_written"
	MetricDocsWithoutChunks = "docs_without_chunks"
)

// StepRun records the outcome of one stage execution for run tracking
// and cross-run reporting. Metrics carries named numeric counters such
// as chunks_total or embedding_failures.
type StepRun struct {
	ID           int64
	PipelineID   string
	Step         string
	RunAt        time.Time
	Duration     time.Duration
	ItemsIn      int
	ItemsOut     int
	ItemsSkipped int
	Status       RunStatus
	Metrics      map[string]float64
}
