package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/acadia-labs/acadia-cli/internal/core/domain"
)

// fakeEmbedder returns deterministic vectors and can be told to fail
// whole batches by ordinal.
type fakeEmbedder struct {
	dim         int
	failBatches map[int]bool
	calls       [][]string
}

func (f *fakeEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	ordinal := len(f.calls)
	copied := make([]string, len(texts))
	copy(copied, texts)
	f.calls = append(f.calls, copied)

	if f.failBatches[ordinal] {
		return nil, errors.New("backend unavailable")
	}

	out := make([][]float32, len(texts))
	for i := range texts {
		v := make([]float32, f.dim)
		for j := range v {
			v[j] = 1
		}
		out[i] = v
	}
	return out, nil
}

func (f *fakeEmbedder) Dimensions() int   { return f.dim }
func (f *fakeEmbedder) ModelName() string { return "fake-embedder" }
func (f *fakeEmbedder) Close() error      { return nil }

// fakeSource serves pre-configured documents.
type fakeSource struct {
	processed        []domain.ProcessedDocument
	processedSkipped []string
	chunked          []domain.ChunkedDocument
	chunkedSkipped   []string
}

func (f *fakeSource) LoadProcessed(context.Context) ([]domain.ProcessedDocument, []string, error) {
	return f.processed, f.processedSkipped, nil
}

func (f *fakeSource) LoadChunked(context.Context) ([]domain.ChunkedDocument, []string, error) {
	return f.chunked, f.chunkedSkipped, nil
}

// fakeStore records inserts in memory with sequential ids.
type fakeStore struct {
	rebuilt bool
	docs    []domain.Document
	chunks  []domain.Chunk
}

func (f *fakeStore) Rebuild(context.Context) error {
	f.rebuilt = true
	f.docs = nil
	f.chunks = nil
	return nil
}

func (f *fakeStore) InsertDocument(_ context.Context, doc *domain.Document) (int64, error) {
	id := int64(len(f.docs) + 1)
	stored := *doc
	stored.ID = id
	f.docs = append(f.docs, stored)
	return id, nil
}

func (f *fakeStore) InsertChunk(_ context.Context, chunk *domain.Chunk) (int64, error) {
	if chunk.DocID == 0 {
		return 0, domain.ErrInvalidInput
	}
	id := int64(len(f.chunks) + 1)
	stored := *chunk
	stored.ID = id
	f.chunks = append(f.chunks, stored)
	return id, nil
}

func (f *fakeStore) CountDocuments(context.Context) (int, error) { return len(f.docs), nil }
func (f *fakeStore) CountChunks(context.Context) (int, error)    { return len(f.chunks), nil }

// fakeIndex accumulates rows in memory.
type fakeIndex struct {
	dim       int
	rows      [][]float32
	persisted []domain.IndexEntry
}

func (f *fakeIndex) Add(embedding []float32) error {
	if len(embedding) != f.dim {
		return domain.ErrDimensionMismatch
	}
	row := make([]float32, len(embedding))
	copy(row, embedding)
	f.rows = append(f.rows, row)
	return nil
}

func (f *fakeIndex) Count() int { return len(f.rows) }

func (f *fakeIndex) Persist(entries []domain.IndexEntry) error {
	if len(entries) != len(f.rows) {
		return fmt.Errorf("%w: %d entries for %d rows",
			domain.ErrIndexMisaligned, len(entries), len(f.rows))
	}
	f.persisted = append([]domain.IndexEntry(nil), entries...)
	return nil
}

// fakeTracker keeps recorded runs in memory, newest first per step.
type fakeTracker struct {
	recordErr error
	runs      []domain.StepRun
}

func (f *fakeTracker) Record(_ context.Context, run *domain.StepRun) error {
	if f.recordErr != nil {
		return f.recordErr
	}
	run.ID = int64(len(f.runs) + 1)
	f.runs = append(f.runs, *run)
	return nil
}

func (f *fakeTracker) LastRuns(_ context.Context, step string, limit int) ([]domain.StepRun, error) {
	var out []domain.StepRun
	for i := len(f.runs) - 1; i >= 0 && len(out) < limit; i-- {
		if f.runs[i].Step == step {
			out = append(out, f.runs[i])
		}
	}
	return out, nil
}

// fakeFetcher serves canned bodies by URL.
type fakeFetcher struct {
	pages map[string][]byte
	calls []string
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	f.calls = append(f.calls, url)
	body, ok := f.pages[url]
	if !ok {
		return nil, errors.New("fetch failed: 404")
	}
	return body, nil
}
