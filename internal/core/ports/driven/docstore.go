package driven

import (
	"context"

	"github.com/acadia-labs/acadia-cli/internal/core/domain"
)

// DocumentStore is the durable relational record of documents and chunks.
// Backed by SQLite.
//
// The store is a pure reflection of the current load run: Rebuild drops
// and recreates the documents and chunks tables, so there is no upsert
// and no retention of a prior run's rows. Cross-run history lives only
// in the RunTracker.
type DocumentStore interface {
	// Rebuild drops and recreates the documents and chunks tables.
	// Must be called by the load run before any insert.
	Rebuild(ctx context.Context) error

	// InsertDocument stores one document row and returns its generated id.
	InsertDocument(ctx context.Context, doc *domain.Document) (int64, error)

	// InsertChunk stores one chunk row referencing its document and
	// returns the generated chunk id carried by the index metadata.
	InsertChunk(ctx context.Context, chunk *domain.Chunk) (int64, error)

	// CountDocuments returns the number of documents in the current
	// load's tables.
	CountDocuments(ctx context.Context) (int, error)

	// CountChunks returns the number of chunks in the current load's
	// tables.
	CountChunks(ctx context.Context) (int, error)
}
