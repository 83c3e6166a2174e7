package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindwell-labs/sanara/internal/core/domain"
	"github.com/mindwell-labs/sanara/internal/core/ports/driven"
)

type searchFixture struct {
	svc             *Search
	store           *mockContentStore
	vector          *mockVectorIndex
	local           *mockCacheTier
	shared          *mockCacheTier
	analytics       *mockAnalytics
	personalization *mockPersonalization
}

func newSearchFixture(t *testing.T) *searchFixture {
	t.Helper()

	store := &mockContentStore{items: testItems()}
	vector := &mockVectorIndex{hits: []driven.VectorHit{
		{ContentID: "c1", Similarity: 0.9},
		{ContentID: "c2", Similarity: 0.7},
	}}
	local := newMockCacheTier()
	shared := newMockCacheTier()
	analytics := &mockAnalytics{}
	personalization := &mockPersonalization{
		profile: &driven.UserProfile{
			UserID:          "u1",
			SimilarUserIDs:  []string{"u2"},
			ContentAffinity: map[string]float64{"c2": 0.8},
		},
	}

	embedder := &mockEmbedder{embedding: []float32{0.1, 0.2}}
	normalizer := NewNormalizer(NormalizerConfig{}, mockDictionary{}, embedder)
	orchestrator := NewOrchestrator(OrchestratorConfig{}, store, vector)
	ranker := NewRanker(NewPopularityTracker(), nil)
	cache := NewResultCache(local, shared, time.Minute)

	svc := NewSearch(SearchConfig{}, normalizer, orchestrator, ranker, cache, NewPopularityTracker(), personalization, analytics)
	t.Cleanup(func() { _ = svc.Close() })

	return &searchFixture{
		svc:             svc,
		store:           store,
		vector:          vector,
		local:           local,
		shared:          shared,
		analytics:       analytics,
		personalization: personalization,
	}
}

func TestSearch_HybridPipeline(t *testing.T) {
	f := newSearchFixture(t)

	resp, err := f.svc.Search(context.Background(), "meditation anxiety stress relief", domain.SearchOptions{
		CulturalContext: []string{"buddhist"},
		Strategy:        domain.RankingHybrid,
		MaxResults:      5,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.SearchID)
	assert.Equal(t, domain.StatusOK, resp.Status)
	assert.False(t, resp.CacheHit)
	assert.LessOrEqual(t, len(resp.Results), 5)
	require.NotEmpty(t, resp.Results)

	for i, res := range resp.Results {
		assert.Equal(t, i+1, res.Rank)
		if i > 0 {
			assert.GreaterOrEqual(t, resp.Results[i-1].Score, res.Score)
		}
	}

	// The buddhist-tagged meditation carries the therapeutic and
	// cultural signal and must surface first.
	assert.Equal(t, "c1", resp.Results[0].Item.ID)
	assert.Greater(t, resp.Results[0].Factors.Therapeutic+resp.Results[0].Factors.Cultural, 0.0)
}

func TestSearch_CacheRoundTrip(t *testing.T) {
	f := newSearchFixture(t)

	opts := domain.SearchOptions{
		CulturalContext: []string{"buddhist"},
		EnableCaching:   true,
	}

	first, err := f.svc.Search(context.Background(), "meditation anxiety", opts)
	require.NoError(t, err)
	assert.False(t, first.CacheHit)

	second, err := f.svc.Search(context.Background(), "meditation anxiety", opts)
	require.NoError(t, err)
	assert.True(t, second.CacheHit)

	require.Equal(t, len(first.Results), len(second.Results))
	for i := range first.Results {
		assert.Equal(t, first.Results[i].Item.ID, second.Results[i].Item.ID)
		assert.InDelta(t, first.Results[i].Score, second.Results[i].Score, 1e-9)
	}
}

func TestSearch_CachingDisabled(t *testing.T) {
	f := newSearchFixture(t)

	opts := domain.SearchOptions{}

	_, err := f.svc.Search(context.Background(), "meditation", opts)
	require.NoError(t, err)

	second, err := f.svc.Search(context.Background(), "meditation", opts)
	require.NoError(t, err)
	assert.False(t, second.CacheHit)
	assert.Zero(t, f.local.size())
}

func TestSearch_InvalidateContent(t *testing.T) {
	f := newSearchFixture(t)

	opts := domain.SearchOptions{EnableCaching: true}

	_, err := f.svc.Search(context.Background(), "meditation", opts)
	require.NoError(t, err)

	// Mutating c1 invalidates every cached entry referencing it.
	f.svc.InvalidateContent(context.Background(), []string{"c1"})

	resp, err := f.svc.Search(context.Background(), "meditation", opts)
	require.NoError(t, err)
	assert.False(t, resp.CacheHit)
}

func TestSearch_DegradedOnStrategyFailure(t *testing.T) {
	f := newSearchFixture(t)
	f.vector.searchErr = errors.New("index offline")

	resp, err := f.svc.Search(context.Background(), "meditation anxiety", domain.SearchOptions{})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusDegraded, resp.Status)
	assert.NotEmpty(t, resp.Results, "keyword results survive a semantic failure")
}

func TestSearch_DegradedStatusSurvivesCacheHit(t *testing.T) {
	f := newSearchFixture(t)
	f.vector.searchErr = errors.New("index offline")
	opts := domain.SearchOptions{EnableCaching: true}

	first, err := f.svc.Search(context.Background(), "meditation anxiety", opts)
	require.NoError(t, err)
	require.Equal(t, domain.StatusDegraded, first.Status)

	second, err := f.svc.Search(context.Background(), "meditation anxiety", opts)
	require.NoError(t, err)
	assert.True(t, second.CacheHit)
	assert.Equal(t, domain.StatusDegraded, second.Status, "cached replay keeps the degraded status")
}

func TestSearch_EmptyStatusOnTotalRetrievalFailure(t *testing.T) {
	f := newSearchFixture(t)
	f.store.fullTextErr = errors.New("store down")
	f.vector.searchErr = errors.New("index offline")

	resp, err := f.svc.Search(context.Background(), "meditation", domain.SearchOptions{})
	require.NoError(t, err, "total retrieval failure is a status, not an error")

	assert.Equal(t, domain.StatusEmpty, resp.Status)
	assert.Empty(t, resp.Results)
}

func TestSearch_InvalidOptions(t *testing.T) {
	f := newSearchFixture(t)

	_, err := f.svc.Search(context.Background(), "meditation", domain.SearchOptions{
		Strategy: "alphabetical",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidStrategy)
}

func TestSearch_EmptyQuery(t *testing.T) {
	f := newSearchFixture(t)

	_, err := f.svc.Search(context.Background(), "   ", domain.SearchOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSearch_TypoCorrectionFlowsThrough(t *testing.T) {
	f := newSearchFixture(t)

	resp, err := f.svc.Search(context.Background(), "mediation anxeity stres", domain.SearchOptions{
		EnableTypoCorrection: true,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.TyposCorrected)
	assert.Contains(t, resp.EnhancedQuery, "meditation")
	assert.Contains(t, resp.EnhancedQuery, "anxiety")
	assert.Contains(t, resp.EnhancedQuery, "stress")
}

func TestSearch_AnalyticsRecorded(t *testing.T) {
	f := newSearchFixture(t)

	resp, err := f.svc.Search(context.Background(), "meditation", domain.SearchOptions{})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return f.analytics.count() == 1
	}, time.Second, 10*time.Millisecond)

	f.analytics.mu.Lock()
	rec := f.analytics.records[0]
	f.analytics.mu.Unlock()
	assert.Equal(t, resp.SearchID, rec.SearchID)
	assert.Equal(t, len(resp.Results), rec.ResultCount)
}

func TestSearch_AnalyticsFailureIsSwallowed(t *testing.T) {
	f := newSearchFixture(t)
	f.analytics.err = errors.New("sink down")

	resp, err := f.svc.Search(context.Background(), "meditation", domain.SearchOptions{})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusOK, resp.Status)
}

func TestSearch_OutcomeRecordedForPersonalizedRequests(t *testing.T) {
	f := newSearchFixture(t)

	_, err := f.svc.Search(context.Background(), "meditation", domain.SearchOptions{
		IncludePersonalization: true,
		UserID:                 "u1",
	})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return f.personalization.recordedCount() == 1
	}, time.Second, 10*time.Millisecond)
}

func TestSearch_MissingProfileDisablesPersonalization(t *testing.T) {
	f := newSearchFixture(t)
	f.personalization.getErr = domain.ErrProfileUnavailable

	resp, err := f.svc.Search(context.Background(), "meditation", domain.SearchOptions{
		IncludePersonalization: true,
		UserID:                 "unknown",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusOK, resp.Status)
}

func TestSearch_CacheTierFailureBypassesCache(t *testing.T) {
	f := newSearchFixture(t)
	f.local.putErr = errors.New("tier down")
	f.local.getErr = true

	resp, err := f.svc.Search(context.Background(), "meditation", domain.SearchOptions{EnableCaching: true})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Results)
}
