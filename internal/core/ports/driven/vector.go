package driven

import "context"

// VectorIndex provides semantic similarity search over content
// embeddings. When configured, the semantic strategy prefers it over
// ContentStore.FindByEmbedding (the index is typically an external
// service such as Qdrant).
type VectorIndex interface {
	// Add inserts or updates a vector for the given content ID.
	Add(ctx context.Context, contentID string, embedding []float32) error

	// Delete removes a vector from the index.
	Delete(ctx context.Context, contentID string) error

	// Search finds the k nearest neighbours to the query vector.
	Search(ctx context.Context, query []float32, k int) ([]VectorHit, error)

	// Close releases resources.
	Close() error
}

// VectorHit represents a similarity search result.
type VectorHit struct {
	// ContentID is the matched item.
	ContentID string

	// Similarity is the cosine similarity score (0-1).
	Similarity float64
}
