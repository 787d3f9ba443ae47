package driven

import (
	"github.com/acadia-labs/acadia-cli/internal/core/domain"
)

// VectorIndex accumulates embedding vectors and persists a flat
// inner-product similarity index together with positional metadata.
//
// Row order is the contract: the i-th Add becomes row i of the persisted
// index and must be described by entry i of the metadata list. Nothing
// else ties a similarity hit back to a chunk.
type VectorIndex interface {
	// Add appends one vector as the next row, L2-normalising it so that
	// inner product equals cosine similarity.
	Add(embedding []float32) error

	// Count returns the number of rows added so far.
	Count() int

	// Persist writes the index and the ordered metadata list to disk,
	// overwriting any previous run's artifacts. It fails with
	// domain.ErrIndexMisaligned when len(entries) != Count().
	Persist(entries []domain.IndexEntry) error
}
