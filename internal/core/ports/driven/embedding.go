package driven

import "context"

// EmbeddingService generates vector embeddings from text.
// The model is an opaque capability: text in, fixed-dimension vector out.
//
// Implementations may include:
//   - OpenAI-compatible APIs (text-embedding-3-small, Nebius, Ollama)
//   - Local inference servers
type EmbeddingService interface {
	// EmbedBatch generates one embedding per input text, in input order.
	// A call may fail as a whole; the caller decides how to degrade.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector size (e.g. 384, 1536).
	// Constant across a run; used to shape zero-vector fallbacks.
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Close releases resources.
	Close() error
}
