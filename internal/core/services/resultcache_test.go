package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindwell-labs/sanara/internal/core/domain"
)

func sampleResults() []domain.RankingResult {
	return []domain.RankingResult{
		{Item: domain.ContentItem{ID: "c1"}, Score: 0.9, Rank: 1},
		{Item: domain.ContentItem{ID: "c2"}, Score: 0.7, Rank: 2},
	}
}

func TestResultCache_LocalHitShortCircuits(t *testing.T) {
	local := newMockCacheTier()
	shared := newMockCacheTier()
	shared.getErr = true // a shared lookup would miss loudly
	rc := NewResultCache(local, shared, time.Minute)

	rc.Put(context.Background(), "k1", sampleResults(), domain.StatusOK)

	entry, ok := rc.Get(context.Background(), "k1")
	require.True(t, ok)
	assert.Len(t, entry.Results, 2)
	assert.Equal(t, []string{"c1", "c2"}, entry.ContentIDs)
}

func TestResultCache_SharedHitBackfillsLocal(t *testing.T) {
	local := newMockCacheTier()
	shared := newMockCacheTier()
	rc := NewResultCache(local, shared, time.Minute)

	// Seed the shared tier only, as if another process populated it.
	now := time.Now()
	require.NoError(t, shared.Put(context.Background(), &domain.CacheEntry{
		Key:        "k1",
		Results:    sampleResults(),
		ContentIDs: []string{"c1", "c2"},
		CreatedAt:  now,
		ExpiresAt:  now.Add(time.Minute),
	}, time.Minute))

	assert.Zero(t, local.size())

	_, ok := rc.Get(context.Background(), "k1")
	require.True(t, ok)
	assert.Equal(t, 1, local.size(), "shared hit populates the local tier")
}

func TestResultCache_PutKeepsStatus(t *testing.T) {
	local := newMockCacheTier()
	rc := NewResultCache(local, nil, time.Minute)

	rc.Put(context.Background(), "k1", sampleResults(), domain.StatusDegraded)

	entry, ok := rc.Get(context.Background(), "k1")
	require.True(t, ok)
	assert.Equal(t, domain.StatusDegraded, entry.Status)
}

func TestResultCache_PutPopulatesBothTiers(t *testing.T) {
	local := newMockCacheTier()
	shared := newMockCacheTier()
	rc := NewResultCache(local, shared, time.Minute)

	rc.Put(context.Background(), "k1", sampleResults(), domain.StatusOK)

	assert.Equal(t, 1, local.size())
	assert.Equal(t, 1, shared.size())
}

func TestResultCache_TierFailureDegradesToBypass(t *testing.T) {
	local := newMockCacheTier()
	local.putErr = errors.New("tier down")
	shared := newMockCacheTier()
	rc := NewResultCache(local, shared, time.Minute)

	// Put must not fail even when a tier does.
	rc.Put(context.Background(), "k1", sampleResults(), domain.StatusOK)
	assert.Equal(t, 1, shared.size())
}

func TestResultCache_Invalidate(t *testing.T) {
	local := newMockCacheTier()
	shared := newMockCacheTier()
	rc := NewResultCache(local, shared, time.Minute)

	rc.Put(context.Background(), "k1", sampleResults(), domain.StatusOK)
	rc.Put(context.Background(), "k2", []domain.RankingResult{
		{Item: domain.ContentItem{ID: "c9"}, Score: 0.5, Rank: 1},
	}, domain.StatusOK)

	require.NoError(t, rc.Invalidate(context.Background(), []string{"c2"}))

	_, ok := rc.Get(context.Background(), "k1")
	assert.False(t, ok, "entries referencing the mutated content are dropped")

	_, ok = rc.Get(context.Background(), "k2")
	assert.True(t, ok, "unrelated entries survive")
}

func TestResultCache_NilTiers(t *testing.T) {
	rc := NewResultCache(nil, nil, 0)
	assert.Equal(t, DefaultCacheTTL, rc.TTL())

	rc.Put(context.Background(), "k1", sampleResults(), domain.StatusOK)
	_, ok := rc.Get(context.Background(), "k1")
	assert.False(t, ok)
	assert.NoError(t, rc.Invalidate(context.Background(), []string{"c1"}))
	assert.NoError(t, rc.Close())
}
