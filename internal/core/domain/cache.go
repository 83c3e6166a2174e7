package domain

import "time"

// CacheEntry is an ordered result list stored under a canonical query
// key. An entry is never served past ExpiresAt, and any content
// mutation invalidates every entry whose ContentIDs include the
// mutated id.
type CacheEntry struct {
	// Key is the canonical cache key.
	Key string

	// Results is the cached ordered result list.
	Results []RankingResult

	// Status is the response status the results were produced under,
	// so a degraded response replays as degraded on a cache hit.
	Status SearchStatus

	// ContentIDs indexes the items in Results for targeted
	// invalidation.
	ContentIDs []string

	// CreatedAt is when the entry was stored.
	CreatedAt time.Time

	// ExpiresAt is when the entry stops being servable.
	ExpiresAt time.Time
}

// Expired reports whether the entry is past its expiry at the given
// instant.
func (e *CacheEntry) Expired(now time.Time) bool {
	return !now.Before(e.ExpiresAt)
}

// References reports whether the entry's result set includes the
// content id.
func (e *CacheEntry) References(contentID string) bool {
	for _, id := range e.ContentIDs {
		if id == contentID {
			return true
		}
	}
	return false
}
