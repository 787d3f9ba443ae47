package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/acadia-labs/acadia-cli/internal/core/ports/driven"
)

// EmbeddingBatcher embeds a text corpus in fixed-size batches with
// per-batch failure isolation: when one batch fails, its texts get
// zero vectors of the model dimension and the run continues. Positions
// are preserved, so result i always corresponds to input text i.
type EmbeddingBatcher struct {
	svc       driven.EmbeddingService
	batchSize int
	log       *zap.Logger
}

// NewEmbeddingBatcher creates a batcher over the given embedding
// service. A non-positive batch size falls back to 32.
func NewEmbeddingBatcher(svc driven.EmbeddingService, batchSize int, log *zap.Logger) *EmbeddingBatcher {
	if batchSize <= 0 {
		batchSize = 32
	}
	return &EmbeddingBatcher{
		svc:       svc,
		batchSize: batchSize,
		log:       log,
	}
}

// EmbedAll embeds every text, in order, and returns one vector per
// input plus the number of texts that fell back to zero vectors. A
// batch whose response has the wrong count or a wrong vector dimension
// counts as failed in full.
func (b *EmbeddingBatcher) EmbedAll(ctx context.Context, texts []string) ([][]float32, int) {
	if len(texts) == 0 {
		return nil, 0
	}

	dim := b.svc.Dimensions()
	vectors := make([][]float32, 0, len(texts))
	failed := 0

	for start := 0; start < len(texts); start += b.batchSize {
		end := start + b.batchSize
		if end > len(texts) {
			end = len(texts)
		}
		batch := texts[start:end]

		embedded, err := b.svc.EmbedBatch(ctx, batch)
		if err == nil && len(embedded) != len(batch) {
			err = fmt.Errorf("expected %d embeddings, got %d", len(batch), len(embedded))
		}
		if err == nil {
			for _, v := range embedded {
				if len(v) != dim {
					err = fmt.Errorf("expected dimension %d, got %d", dim, len(v))
					break
				}
			}
		}

		if err != nil {
			b.log.Warn("embedding batch failed, padding with zero vectors",
				zap.Int("batch_start", start),
				zap.Int("batch_len", len(batch)),
				zap.Error(err))
			for range batch {
				vectors = append(vectors, make([]float32, dim))
			}
			failed += len(batch)
			continue
		}

		vectors = append(vectors, embedded...)
	}

	return vectors, failed
}
