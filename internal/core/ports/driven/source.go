package driven

import (
	"context"

	"github.com/acadia-labs/acadia-cli/internal/core/domain"
)

// DocumentSource reads the upstream document files a stage consumes.
// Backed by JSON files on disk.
//
// Malformed files (undecodable JSON, missing required metadata) are not
// fatal for a run: they are returned by name in skipped and the rest of
// the corpus is still loaded.
type DocumentSource interface {
	// LoadProcessed reads all processed documents (cleaned text plus
	// metadata, one file per source).
	LoadProcessed(ctx context.Context) (docs []domain.ProcessedDocument, skipped []string, err error)

	// LoadChunked reads all chunked documents (metadata plus ordered
	// chunk lists). Returns no documents and no error when the chunked
	// form has not been produced yet.
	LoadChunked(ctx context.Context) (docs []domain.ChunkedDocument, skipped []string, err error)
}
