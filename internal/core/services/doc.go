// Package services contains the pipeline stage orchestration: extract,
// transform, chunk and load, plus embedding batch handling, run
// tracking and cross-run reporting. Services depend on ports only;
// adapters are wired in by the CLI layer.
package services
