package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindwell-labs/sanara/internal/core/domain"
	"github.com/mindwell-labs/sanara/internal/core/ports/driven"
)

func TestPersonalizationStore_GetProfile(t *testing.T) {
	store := NewPersonalizationStore()
	store.SaveProfile(driven.UserProfile{
		UserID:            "u1",
		PreferredCultures: []string{"buddhist"},
		ContentAffinity:   map[string]float64{"c1": 0.5},
	})

	profile, err := store.GetProfile(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"buddhist"}, profile.PreferredCultures)
	assert.InDelta(t, 0.5, profile.ContentAffinity["c1"], 1e-9)

	_, err = store.GetProfile(context.Background(), "unknown")
	assert.ErrorIs(t, err, domain.ErrProfileUnavailable)
}

func TestPersonalizationStore_GetProfile_CopiesAffinity(t *testing.T) {
	store := NewPersonalizationStore()
	store.SaveProfile(driven.UserProfile{
		UserID:          "u1",
		ContentAffinity: map[string]float64{"c1": 0.5},
	})

	profile, err := store.GetProfile(context.Background(), "u1")
	require.NoError(t, err)
	profile.ContentAffinity["c1"] = 0.0

	fresh, err := store.GetProfile(context.Background(), "u1")
	require.NoError(t, err)
	assert.InDelta(t, 0.5, fresh.ContentAffinity["c1"], 1e-9)
}

func TestPersonalizationStore_RecordOutcome(t *testing.T) {
	store := NewPersonalizationStore()
	ctx := context.Background()

	results := []domain.RankingResult{
		{Item: domain.ContentItem{ID: "c1"}, Rank: 1},
		{Item: domain.ContentItem{ID: "c2"}, Rank: 2},
	}
	require.NoError(t, store.RecordOutcome(ctx, "u1", &domain.ProcessedQuery{}, results))

	profile, err := store.GetProfile(ctx, "u1")
	require.NoError(t, err)

	// Higher-ranked results accrue more affinity.
	assert.Greater(t, profile.ContentAffinity["c1"], profile.ContentAffinity["c2"])
	assert.Greater(t, profile.ContentAffinity["c2"], 0.0)
}

func TestPersonalizationStore_RecordOutcome_AffinityCapped(t *testing.T) {
	store := NewPersonalizationStore()
	ctx := context.Background()

	results := []domain.RankingResult{{Item: domain.ContentItem{ID: "c1"}, Rank: 1}}
	for i := 0; i < 50; i++ {
		require.NoError(t, store.RecordOutcome(ctx, "u1", &domain.ProcessedQuery{}, results))
	}

	profile, err := store.GetProfile(ctx, "u1")
	require.NoError(t, err)
	assert.LessOrEqual(t, profile.ContentAffinity["c1"], 1.0)
}
