package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func texts(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = "chunk text"
	}
	return out
}

func TestEmbedAll_Empty(t *testing.T) {
	svc := &fakeEmbedder{dim: 4}
	b := NewEmbeddingBatcher(svc, 4, zap.NewNop())

	vectors, failed := b.EmbedAll(context.Background(), nil)
	assert.Nil(t, vectors)
	assert.Zero(t, failed)
	assert.Empty(t, svc.calls)
}

func TestEmbedAll_Batching(t *testing.T) {
	svc := &fakeEmbedder{dim: 4}
	b := NewEmbeddingBatcher(svc, 3, zap.NewNop())

	vectors, failed := b.EmbedAll(context.Background(), texts(8))
	require.Len(t, vectors, 8)
	assert.Zero(t, failed)

	require.Len(t, svc.calls, 3)
	assert.Len(t, svc.calls[0], 3)
	assert.Len(t, svc.calls[1], 3)
	assert.Len(t, svc.calls[2], 2)
}

func TestEmbedAll_FailedBatchGetsZeroVectors(t *testing.T) {
	// 8 texts in batches of 4; the second batch fails. All 8 positions
	// must still be filled, positions 4..7 with zero vectors.
	svc := &fakeEmbedder{dim: 4, failBatches: map[int]bool{1: true}}
	b := NewEmbeddingBatcher(svc, 4, zap.NewNop())

	vectors, failed := b.EmbedAll(context.Background(), texts(8))
	require.Len(t, vectors, 8)
	assert.Equal(t, 4, failed)

	for i := 0; i < 4; i++ {
		assert.Equal(t, []float32{1, 1, 1, 1}, vectors[i], "vector %d", i)
	}
	for i := 4; i < 8; i++ {
		assert.Equal(t, []float32{0, 0, 0, 0}, vectors[i], "vector %d", i)
	}
}

func TestEmbedAll_WrongDimensionCountsAsFailure(t *testing.T) {
	// The service reports dim 6 but returns dim-4 vectors, so every
	// batch degrades to zero vectors of the reported dimension.
	svc := &fakeEmbedder{dim: 4}
	b := NewEmbeddingBatcher(svc, 4, zap.NewNop())
	b.svc = &dimLiar{fakeEmbedder: svc}

	vectors, failed := b.EmbedAll(context.Background(), texts(4))
	require.Len(t, vectors, 4)
	assert.Equal(t, 4, failed)
	for _, v := range vectors {
		assert.Equal(t, make([]float32, 6), v)
	}
}

// dimLiar reports a different dimension than its vectors have.
type dimLiar struct {
	*fakeEmbedder
}

func (d *dimLiar) Dimensions() int { return 6 }

func TestEmbedAll_DefaultBatchSize(t *testing.T) {
	svc := &fakeEmbedder{dim: 2}
	b := NewEmbeddingBatcher(svc, 0, zap.NewNop())

	vectors, failed := b.EmbedAll(context.Background(), texts(33))
	require.Len(t, vectors, 33)
	assert.Zero(t, failed)
	assert.Len(t, svc.calls, 2)
}
