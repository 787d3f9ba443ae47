package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/acadia-labs/acadia-cli/internal/core/domain"
	"github.com/acadia-labs/acadia-cli/internal/core/ports/driven"
	"github.com/acadia-labs/acadia-cli/internal/core/ports/driving"
	"github.com/acadia-labs/acadia-cli/internal/postprocessors/chunker"
)

// Ensure ChunkService implements the interface.
var _ driving.StepRunner = (*ChunkService)(nil)

// chunkedOutput is the on-disk shape consumed by the load stage.
type chunkedOutput struct {
	Source         string             `json:"source"`
	Purpose        string             `json:"purpose"`
	RawFilename    string             `json:"raw_filename"`
	ProcessedAt    string             `json:"processed_at"`
	FullTextLength int                `json:"full_text_length"`
	ChunkConfig    domain.ChunkConfig `json:"chunk_config"`
	Chunks         []chunkOutput      `json:"chunks"`
}

type chunkOutput struct {
	ChunkIndex  int    `json:"chunk_index"`
	Text        string `json:"text"`
	CharOffset  int    `json:"char_offset"`
	ChunkLength int    `json:"chunk_length"`
}

// ChunkService splits each processed document into overlapping chunks
// and writes one chunked JSON document per source. Documents that
// produce no chunks at all are skipped.
type ChunkService struct {
	source     driven.DocumentSource
	processor  *chunker.Processor
	chunkedDir string
	log        *zap.Logger
}

// NewChunkService creates the chunk stage.
func NewChunkService(source driven.DocumentSource, processor *chunker.Processor, chunkedDir string, log *zap.Logger) *ChunkService {
	return &ChunkService{
		source:     source,
		processor:  processor,
		chunkedDir: chunkedDir,
		log:        log,
	}
}

// Step returns the stage name.
func (s *ChunkService) Step() string {
	return domain.StepChunk
}

// Run chunks all processed documents.
func (s *ChunkService) Run(ctx context.Context) (*driving.StepResult, error) {
	docs, skipped, err := s.source.LoadProcessed(ctx)
	if err != nil {
		return nil, err
	}
	for _, name := range skipped {
		s.log.Warn("skipping malformed processed file", zap.String("file", name))
	}

	if err := os.MkdirAll(s.chunkedDir, 0o700); err != nil {
		return nil, fmt.Errorf("creating chunked directory: %w", err)
	}

	result := &driving.StepResult{
		Step:         s.Step(),
		ItemsIn:      len(docs) + len(skipped),
		ItemsSkipped: len(skipped),
		Metrics:      map[string]float64{},
	}

	chunksTotal := 0
	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		chunks := s.processor.Chunk(doc.Text)
		if len(chunks) == 0 {
			s.log.Warn("document produced no chunks",
				zap.String("source", doc.Source),
				zap.Int("text_length", doc.TextLength))
			result.ItemsSkipped++
			continue
		}

		out := chunkedOutput{
			Source:         doc.Source,
			Purpose:        doc.Purpose,
			RawFilename:    doc.RawFilename,
			ProcessedAt:    doc.ProcessedAt,
			FullTextLength: doc.TextLength,
			ChunkConfig:    s.processor.Config(),
			Chunks:         make([]chunkOutput, 0, len(chunks)),
		}
		for _, c := range chunks {
			out.Chunks = append(out.Chunks, chunkOutput{
				ChunkIndex:  c.Index,
				Text:        c.Text,
				CharOffset:  c.CharOffset,
				ChunkLength: c.Length,
			})
		}

		if err := writeJSON(filepath.Join(s.chunkedDir, doc.Source+".json"), out); err != nil {
			return nil, err
		}

		s.log.Info("chunked document",
			zap.String("source", doc.Source),
			zap.Int("chunks", len(chunks)))
		chunksTotal += len(chunks)
		result.ItemsOut++
	}

	result.Metrics[domain.MetricChunksTotal] = float64(chunksTotal)
	return result, nil
}
