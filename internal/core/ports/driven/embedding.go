package driven

import "context"

// EmbeddingService generates vector embeddings from text.
// This is an optional collaborator - when nil or failing, the semantic
// retrieval strategy is skipped and the query confidence is reduced.
//
// Implementations may include:
//   - Ollama (nomic-embed-text, all-minilm)
//   - Hosted APIs behind the same contract
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Dimensions returns the embedding vector size (e.g., 384, 768).
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the service is reachable with a lightweight
	// request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
