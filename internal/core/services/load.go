package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/acadia-labs/acadia-cli/internal/core/domain"
	"github.com/acadia-labs/acadia-cli/internal/core/ports/driven"
	"github.com/acadia-labs/acadia-cli/internal/core/ports/driving"
	"github.com/acadia-labs/acadia-cli/internal/postprocessors/chunker"
)

// Ensure LoadService implements the interface.
var _ driving.StepRunner = (*LoadService)(nil)

// IndexFactory builds a fresh, empty vector index of the given
// dimension. The load stage creates one per run so repeated runs never
// append to a previous run's rows.
type IndexFactory func(dim int) (driven.VectorIndex, error)

// LoadService builds the searchable artifacts: it rebuilds the
// relational store from the chunked corpus, embeds every chunk in
// batches, and persists a flat vector index whose row order matches the
// metadata list position for position.
//
// When no chunked documents exist the stage falls back to chunking the
// processed text in-process, so a corpus can be loaded straight from
// the transform output.
type LoadService struct {
	source    driven.DocumentSource
	store     driven.DocumentStore
	batcher   *EmbeddingBatcher
	newIndex  IndexFactory
	processor *chunker.Processor
	dim       int
	log       *zap.Logger
}

// NewLoadService creates the load stage. dim is the embedding model's
// vector dimension and shapes both the index and zero-vector fallbacks.
func NewLoadService(source driven.DocumentSource, store driven.DocumentStore, batcher *EmbeddingBatcher, newIndex IndexFactory, processor *chunker.Processor, dim int, log *zap.Logger) *LoadService {
	return &LoadService{
		source:    source,
		store:     store,
		batcher:   batcher,
		newIndex:  newIndex,
		processor: processor,
		dim:       dim,
		log:       log,
	}
}

// Step returns the stage name.
func (s *LoadService) Step() string {
	return domain.StepLoad
}

// Run rebuilds the store and the vector index from the current corpus.
func (s *LoadService) Run(ctx context.Context) (*driving.StepResult, error) {
	docs, skipped, err := s.loadCorpus(ctx)
	if err != nil {
		return nil, err
	}

	result := &driving.StepResult{
		Step:         s.Step(),
		ItemsIn:      len(docs) + len(skipped),
		ItemsSkipped: len(skipped),
		Metrics:      map[string]float64{},
	}

	if len(docs) == 0 {
		s.log.Warn("no documents to load")
		result.Metrics[domain.MetricVectorsWritten] = 0
		return result, nil
	}

	if err := s.store.Rebuild(ctx); err != nil {
		return nil, fmt.Errorf("rebuilding store: %w", err)
	}

	var texts []string
	var entries []domain.IndexEntry
	docsWithoutChunks := 0

	for i := range docs {
		doc := &docs[i]
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		docID, err := s.store.InsertDocument(ctx, &domain.Document{
			Source:         doc.Source,
			Purpose:        doc.Purpose,
			RawFilename:    doc.RawFilename,
			FullTextLength: doc.FullTextLength,
			ProcessedAt:    doc.ProcessedAt,
		})
		if err != nil {
			return nil, fmt.Errorf("inserting document %s: %w", doc.Source, err)
		}

		if len(doc.Chunks) == 0 {
			s.log.Warn("document has no chunks", zap.String("source", doc.Source))
			docsWithoutChunks++
			result.ItemsOut++
			continue
		}

		for _, c := range doc.Chunks {
			c.DocID = docID
			chunkID, err := s.store.InsertChunk(ctx, &c)
			if err != nil {
				return nil, fmt.Errorf("inserting chunk %d of %s: %w", c.Index, doc.Source, err)
			}

			texts = append(texts, c.Text)
			entries = append(entries, domain.IndexEntry{
				ChunkID:    chunkID,
				DocID:      docID,
				ChunkIndex: c.Index,
				Source:     doc.Source,
				Purpose:    doc.Purpose,
			})
		}

		result.ItemsOut++
	}

	result.Metrics[domain.MetricChunksTotal] = float64(len(texts))
	result.Metrics[domain.MetricDocsWithoutChunks] = float64(docsWithoutChunks)

	if len(texts) == 0 {
		s.log.Warn("no chunks to embed, skipping index persistence")
		result.Metrics[domain.MetricEmbeddingFailures] = 0
		result.Metrics[domain.MetricVectorsWritten] = 0
		return result, nil
	}

	vectors, failed := s.batcher.EmbedAll(ctx, texts)
	result.Metrics[domain.MetricEmbeddingFailures] = float64(failed)
	result.Degraded = failed > 0

	if len(vectors) != len(entries) {
		return nil, fmt.Errorf("%w: %d vectors for %d metadata entries",
			domain.ErrIndexMisaligned, len(vectors), len(entries))
	}

	index, err := s.newIndex(s.dim)
	if err != nil {
		return nil, fmt.Errorf("creating vector index: %w", err)
	}
	for i, v := range vectors {
		if err := index.Add(v); err != nil {
			return nil, fmt.Errorf("adding vector %d: %w", i, err)
		}
	}
	if err := index.Persist(entries); err != nil {
		return nil, fmt.Errorf("persisting index: %w", err)
	}

	result.Metrics[domain.MetricVectorsWritten] = float64(index.Count())
	s.log.Info("load complete",
		zap.Int("documents", result.ItemsOut),
		zap.Int("chunks", len(texts)),
		zap.Int("embedding_failures", failed),
		zap.Int("vectors", index.Count()))

	return result, nil
}

// loadCorpus reads the chunked corpus, falling back to chunking the
// processed text in-process when no chunked output exists yet.
func (s *LoadService) loadCorpus(ctx context.Context) ([]domain.ChunkedDocument, []string, error) {
	docs, skipped, err := s.source.LoadChunked(ctx)
	if err != nil {
		return nil, nil, err
	}
	if len(docs) > 0 || len(skipped) > 0 {
		return docs, skipped, nil
	}

	s.log.Info("no chunked documents found, chunking processed text in-process")

	processed, skipped, err := s.source.LoadProcessed(ctx)
	if err != nil {
		return nil, nil, err
	}

	chunked := make([]domain.ChunkedDocument, 0, len(processed))
	for _, doc := range processed {
		chunked = append(chunked, domain.ChunkedDocument{
			Source:         doc.Source,
			Purpose:        doc.Purpose,
			RawFilename:    doc.RawFilename,
			ProcessedAt:    doc.ProcessedAt,
			FullTextLength: doc.TextLength,
			ChunkConfig:    s.processor.Config(),
			Chunks:         s.processor.Chunk(doc.Text),
		})
	}

	return chunked, skipped, nil
}
