package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindwell-labs/sanara/internal/core/domain"
	"github.com/mindwell-labs/sanara/internal/core/ports/driven"
)

func TestAnalyticsSink_Record(t *testing.T) {
	store := setupTestStore(t)
	sink := store.AnalyticsSink()
	ctx := context.Background()

	rec := driven.SearchRecord{
		SearchID:       "s1",
		Query:          "help with anxiety",
		EnhancedQuery:  "help anxiety worry",
		ResultCount:    5,
		ProcessingTime: 42 * time.Millisecond,
		CacheHit:       false,
		Strategy:       domain.RankingHybrid,
		Status:         domain.StatusOK,
		UserID:         "u1",
		SessionID:      "sess1",
		Timestamp:      time.Now().UTC(),
	}
	require.NoError(t, sink.Record(ctx, rec))

	var count int
	var strategy string
	var ms int64
	row := store.db.QueryRow("SELECT result_count, strategy, processing_time_ms FROM search_log WHERE search_id = ?", "s1")
	require.NoError(t, row.Scan(&count, &strategy, &ms))
	assert.Equal(t, 5, count)
	assert.Equal(t, "hybrid", strategy)
	assert.Equal(t, int64(42), ms)
}

func TestAnalyticsSink_DuplicateSearchIDIgnored(t *testing.T) {
	store := setupTestStore(t)
	sink := store.AnalyticsSink()
	ctx := context.Background()

	rec := driven.SearchRecord{SearchID: "s1", Query: "first", Timestamp: time.Now()}
	require.NoError(t, sink.Record(ctx, rec))

	rec.Query = "second"
	require.NoError(t, sink.Record(ctx, rec))

	var query string
	row := store.db.QueryRow("SELECT query FROM search_log WHERE search_id = ?", "s1")
	require.NoError(t, row.Scan(&query))
	assert.Equal(t, "first", query)
}
