package services

import (
	"sync"
	"sync/atomic"
)

// PopularityTracker counts content impressions and serves a
// periodically refreshed, normalized snapshot to the ranker. Reads
// dominate, so scoring never touches the write lock: the ranker works
// off an immutable snapshot map swapped in atomically.
type PopularityTracker struct {
	mu     sync.Mutex
	counts map[string]int64

	snapshot atomic.Pointer[map[string]float64]
}

// NewPopularityTracker creates an empty tracker.
func NewPopularityTracker() *PopularityTracker {
	t := &PopularityTracker{
		counts: make(map[string]int64),
	}
	empty := make(map[string]float64)
	t.snapshot.Store(&empty)
	return t
}

// Record registers impressions for the given content IDs.
func (t *PopularityTracker) Record(contentIDs ...string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, id := range contentIDs {
		t.counts[id]++
	}
}

// Refresh rebuilds the read snapshot from the current counts. Scores
// are normalized against the most popular item.
func (t *PopularityTracker) Refresh() {
	t.mu.Lock()
	defer t.mu.Unlock()

	var peak int64
	for _, n := range t.counts {
		if n > peak {
			peak = n
		}
	}

	snap := make(map[string]float64, len(t.counts))
	if peak > 0 {
		for id, n := range t.counts {
			snap[id] = float64(n) / float64(peak)
		}
	}
	t.snapshot.Store(&snap)
}

// Score returns the normalized popularity for a content item, 0 when
// unseen.
func (t *PopularityTracker) Score(contentID string) float64 {
	return (*t.snapshot.Load())[contentID]
}
