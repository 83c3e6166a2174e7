// Package log provides an analytics sink that writes search records to
// the package logger. It is the fallback when no persistent sink is
// configured.
package log

import (
	"context"

	"github.com/mindwell-labs/sanara/internal/core/ports/driven"
	"github.com/mindwell-labs/sanara/internal/logger"
)

// Sink logs each search record at debug level.
type Sink struct{}

var _ driven.AnalyticsSink = (*Sink)(nil)

// New creates a logging analytics sink.
func New() *Sink {
	return &Sink{}
}

// Record logs the search record. It never fails.
func (*Sink) Record(_ context.Context, rec driven.SearchRecord) error {
	logger.Debug("search %s: query=%q results=%d time=%s cache_hit=%t strategy=%s status=%s",
		rec.SearchID, rec.Query, rec.ResultCount, rec.ProcessingTime,
		rec.CacheHit, rec.Strategy, rec.Status)
	return nil
}
