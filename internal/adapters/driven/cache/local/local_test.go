package local

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindwell-labs/sanara/internal/core/domain"
)

func entryFor(key string, contentIDs ...string) *domain.CacheEntry {
	return &domain.CacheEntry{
		Key:        key,
		ContentIDs: contentIDs,
		CreatedAt:  time.Now(),
	}
}

func TestCache_PutAndGet(t *testing.T) {
	c := New(10)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, entryFor("k1", "c1"), time.Minute))

	got, ok := c.Get(ctx, "k1")
	require.True(t, ok)
	assert.Equal(t, "k1", got.Key)
	assert.Equal(t, []string{"c1"}, got.ContentIDs)

	_, ok = c.Get(ctx, "missing")
	assert.False(t, ok)
}

func TestCache_ExpiredEntryIsMiss(t *testing.T) {
	c := New(10)
	ctx := context.Background()

	entry := entryFor("k1")
	entry.ExpiresAt = time.Now().Add(-time.Second)
	require.NoError(t, c.Put(ctx, entry, time.Minute))

	_, ok := c.Get(ctx, "k1")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestCache_TTLAppliedWhenUnset(t *testing.T) {
	c := New(10)
	ctx := context.Background()

	entry := entryFor("k1")
	require.NoError(t, c.Put(ctx, entry, time.Minute))
	assert.False(t, entry.ExpiresAt.IsZero())
	assert.WithinDuration(t, time.Now().Add(time.Minute), entry.ExpiresAt, time.Second)
}

func TestCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c := New(3)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		require.NoError(t, c.Put(ctx, entryFor(fmt.Sprintf("k%d", i)), time.Minute))
	}

	// Touch k1 so k2 becomes the eviction candidate.
	_, ok := c.Get(ctx, "k1")
	require.True(t, ok)

	require.NoError(t, c.Put(ctx, entryFor("k4"), time.Minute))

	_, ok = c.Get(ctx, "k2")
	assert.False(t, ok)
	for _, key := range []string{"k1", "k3", "k4"} {
		_, ok := c.Get(ctx, key)
		assert.True(t, ok, key)
	}
	assert.Equal(t, 3, c.Len())
}

func TestCache_PutReplacesExisting(t *testing.T) {
	c := New(2)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, entryFor("k1", "old"), time.Minute))
	require.NoError(t, c.Put(ctx, entryFor("k1", "new"), time.Minute))

	got, ok := c.Get(ctx, "k1")
	require.True(t, ok)
	assert.Equal(t, []string{"new"}, got.ContentIDs)
	assert.Equal(t, 1, c.Len())
}

func TestCache_Invalidate(t *testing.T) {
	c := New(10)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, entryFor("k1", "c1", "c2"), time.Minute))
	require.NoError(t, c.Put(ctx, entryFor("k2", "c3"), time.Minute))
	require.NoError(t, c.Put(ctx, entryFor("k3", "c2"), time.Minute))

	require.NoError(t, c.Invalidate(ctx, []string{"c2"}))

	_, ok := c.Get(ctx, "k1")
	assert.False(t, ok)
	_, ok = c.Get(ctx, "k3")
	assert.False(t, ok)
	_, ok = c.Get(ctx, "k2")
	assert.True(t, ok)
}

func TestCache_DefaultCapacity(t *testing.T) {
	c := New(0)
	assert.Equal(t, DefaultCapacity, c.capacity)
}
