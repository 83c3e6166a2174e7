package driving

import (
	"context"

	"github.com/mindwell-labs/sanara/internal/core/domain"
)

// SearchService provides ranked content retrieval to external actors.
type SearchService interface {
	// Search retrieves and ranks content for the query. It always
	// returns a response with a (possibly empty) ranked list; internal
	// subsystem failures degrade the response status instead of
	// surfacing as errors. An error is returned only for invalid
	// options.
	Search(ctx context.Context, query string, opts domain.SearchOptions) (*domain.SearchResponse, error)

	// InvalidateContent drops cached results referencing the given
	// content IDs after a content mutation.
	InvalidateContent(ctx context.Context, contentIDs []string)
}
