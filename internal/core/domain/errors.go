package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates a malformed or invalid input record,
	// such as a processed file missing a required metadata field.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// configured. The load stage cannot run without it.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrDimensionMismatch indicates a vector does not match the
	// configured embedding dimension.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrIndexMisaligned indicates the vector count and metadata count
	// diverged. Persisting in this state would desynchronise vectors
	// from provenance, so it is always fatal.
	ErrIndexMisaligned = errors.New("vector index misaligned with metadata")
)
