package driven

import (
	"context"

	"github.com/mindwell-labs/sanara/internal/core/domain"
)

// ContentStore provides read access to the published content corpus.
// The core never writes content; mutations happen elsewhere and are
// signalled through cache invalidation.
type ContentStore interface {
	// Get retrieves a content item by ID.
	Get(ctx context.Context, id string) (*domain.ContentItem, error)

	// FindByTags returns items whose cultural tags, therapeutic themes,
	// or target issues intersect the given tags.
	FindByTags(ctx context.Context, tags []string, limit int) ([]domain.ContentItem, error)

	// FindByFullText returns items matching the query text, best first.
	FindByFullText(ctx context.Context, query string, limit int) ([]domain.ContentItem, error)

	// FindByEmbedding returns items whose embedding similarity to the
	// query vector meets the threshold, most similar first.
	FindByEmbedding(ctx context.Context, vector []float32, threshold float64, limit int) ([]EmbeddingHit, error)
}

// ContentWriter mutates the content corpus. It is driven by the
// content loader, never by the search path.
type ContentWriter interface {
	// Save stores or updates a content item.
	Save(ctx context.Context, item *domain.ContentItem) error

	// Delete removes a content item.
	Delete(ctx context.Context, id string) error
}

// EmbeddingHit pairs a content item with its similarity to the query
// vector.
type EmbeddingHit struct {
	// Item is the matched content item.
	Item domain.ContentItem

	// Similarity is the cosine similarity in [0,1].
	Similarity float64
}
