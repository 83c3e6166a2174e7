package sqlite

import (
	"context"
	"fmt"

	"github.com/mindwell-labs/sanara/internal/core/ports/driven"
)

// AnalyticsSink returns an analytics sink that appends search records
// to the search_log table.
func (s *Store) AnalyticsSink() driven.AnalyticsSink {
	return &analyticsSink{store: s}
}

type analyticsSink struct {
	store *Store
}

var _ driven.AnalyticsSink = (*analyticsSink)(nil)

// Record appends one search record.
func (a *analyticsSink) Record(ctx context.Context, rec driven.SearchRecord) error {
	_, err := a.store.db.ExecContext(ctx, `
		INSERT INTO search_log (search_id, query, enhanced_query, result_count,
			processing_time_ms, cache_hit, strategy, status, user_id, session_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(search_id) DO NOTHING
	`, rec.SearchID, rec.Query, rec.EnhancedQuery, rec.ResultCount,
		rec.ProcessingTime.Milliseconds(), rec.CacheHit,
		string(rec.Strategy), string(rec.Status), rec.UserID, rec.SessionID,
		rec.Timestamp)
	if err != nil {
		return fmt.Errorf("recording search: %w", err)
	}
	return nil
}
