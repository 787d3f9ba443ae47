// Package domain defines the core business entities for Acadia.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: One processed source text loaded in a run
//   - Chunk: A bounded, overlapping segment of a document's text
//   - IndexEntry: Provenance metadata for one vector index row
//   - StepRun: The recorded outcome of one pipeline stage execution
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
