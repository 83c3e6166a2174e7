package services

import (
	"context"
	"time"

	"github.com/mindwell-labs/sanara/internal/core/domain"
	"github.com/mindwell-labs/sanara/internal/core/ports/driven"
	"github.com/mindwell-labs/sanara/internal/logger"
)

// DefaultCacheTTL is the lifetime of a cached result list.
const DefaultCacheTTL = 300 * time.Second

// ResultCache coordinates the two cache tiers. The local tier is the
// fast path and is checked first; a local hit short-circuits the
// shared lookup, and a shared hit back-fills the local tier. Tier
// failures degrade to a cache bypass for that request, never an error.
type ResultCache struct {
	local  driven.CacheTier
	shared driven.CacheTier
	ttl    time.Duration
}

// NewResultCache creates the two-tier coordinator. Either tier may be
// nil; with both nil every lookup misses and every put is a no-op.
func NewResultCache(local, shared driven.CacheTier, ttl time.Duration) *ResultCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &ResultCache{
		local:  local,
		shared: shared,
		ttl:    ttl,
	}
}

// TTL returns the configured entry lifetime.
func (rc *ResultCache) TTL() time.Duration {
	return rc.ttl
}

// Get returns the cached entry for key, checking the local tier first.
func (rc *ResultCache) Get(ctx context.Context, key string) (*domain.CacheEntry, bool) {
	if rc.local != nil {
		if entry, ok := rc.local.Get(ctx, key); ok {
			logger.Debug("Cache hit (local): %s", key)
			return entry, true
		}
	}

	if rc.shared != nil {
		if entry, ok := rc.shared.Get(ctx, key); ok {
			logger.Debug("Cache hit (shared): %s", key)
			if rc.local != nil {
				remaining := time.Until(entry.ExpiresAt)
				if remaining > 0 {
					if err := rc.local.Put(ctx, entry, remaining); err != nil {
						logger.Warn("Local cache back-fill failed: %v", err)
					}
				}
			}
			return entry, true
		}
	}

	return nil, false
}

// Put stores the result list and the status it was produced under in
// both tiers with the same TTL. A tier failure is logged and ignored.
func (rc *ResultCache) Put(ctx context.Context, key string, results []domain.RankingResult, status domain.SearchStatus) {
	now := time.Now()
	entry := &domain.CacheEntry{
		Key:        key,
		Results:    results,
		Status:     status,
		ContentIDs: contentIDs(results),
		CreatedAt:  now,
		ExpiresAt:  now.Add(rc.ttl),
	}

	if rc.local != nil {
		if err := rc.local.Put(ctx, entry, rc.ttl); err != nil {
			logger.Warn("Local cache put failed: %v", err)
		}
	}
	if rc.shared != nil {
		if err := rc.shared.Put(ctx, entry, rc.ttl); err != nil {
			logger.Warn("Shared cache put failed: %v", err)
		}
	}
}

// Invalidate drops every entry referencing the given content IDs from
// both tiers. Shared-tier invalidation may be eventually consistent;
// staleness is bounded by the TTL.
func (rc *ResultCache) Invalidate(ctx context.Context, ids []string) error {
	var firstErr error

	if rc.local != nil {
		if err := rc.local.Invalidate(ctx, ids); err != nil {
			logger.Warn("Local cache invalidation failed: %v", err)
			firstErr = err
		}
	}
	if rc.shared != nil {
		if err := rc.shared.Invalidate(ctx, ids); err != nil {
			logger.Warn("Shared cache invalidation failed: %v", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	return firstErr
}

// Close closes both tiers.
func (rc *ResultCache) Close() error {
	var firstErr error
	if rc.local != nil {
		if err := rc.local.Close(); err != nil {
			firstErr = err
		}
	}
	if rc.shared != nil {
		if err := rc.shared.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// contentIDs collects the item IDs in a result list for targeted
// invalidation.
func contentIDs(results []domain.RankingResult) []string {
	ids := make([]string, 0, len(results))
	for i := range results {
		ids = append(ids, results[i].Item.ID)
	}
	return ids
}
