package driven

import (
	"context"
	"time"

	"github.com/mindwell-labs/sanara/internal/core/domain"
)

// SearchRecord is the per-request metrics record sent to the analytics
// sink.
type SearchRecord struct {
	// SearchID uniquely identifies the request.
	SearchID string

	// Query is the original query text.
	Query string

	// EnhancedQuery is the normalized/expanded query text.
	EnhancedQuery string

	// ResultCount is the number of results returned.
	ResultCount int

	// ProcessingTime is the wall time spent serving the request.
	ProcessingTime time.Duration

	// CacheHit indicates the response was served from cache.
	CacheHit bool

	// Strategy is the ranking strategy used.
	Strategy domain.RankingStrategy

	// Status is the response status.
	Status domain.SearchStatus

	// UserID identifies the requesting user, when known.
	UserID string

	// SessionID identifies the conversation session, when known.
	SessionID string

	// Timestamp is when the request completed.
	Timestamp time.Time
}

// AnalyticsSink receives per-request metrics asynchronously. The core
// must function with the sink unavailable: Record failures are logged
// and dropped, never surfaced.
type AnalyticsSink interface {
	// Record accepts one search record.
	Record(ctx context.Context, rec SearchRecord) error
}
