package driven

import (
	"context"
	"time"

	"github.com/mindwell-labs/sanara/internal/core/domain"
)

// CacheTier is one level of the two-tier result cache. The local tier
// is a bounded in-process store; the shared tier is a persistent or
// distributed store with its own atomicity guarantees.
//
// Get must never return an expired entry. Invalidate drops every entry
// whose result set references any of the given content IDs; for the
// shared tier this may be eventually consistent, with staleness
// bounded by the entry TTL.
type CacheTier interface {
	// Get returns the entry for key, or (nil, false) on miss or
	// expiry.
	Get(ctx context.Context, key string) (*domain.CacheEntry, bool)

	// Put stores an entry with the given time-to-live.
	Put(ctx context.Context, entry *domain.CacheEntry, ttl time.Duration) error

	// Invalidate drops entries referencing any of the content IDs.
	Invalidate(ctx context.Context, contentIDs []string) error

	// Close releases resources.
	Close() error
}
