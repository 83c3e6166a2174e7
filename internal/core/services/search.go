package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/mindwell-labs/sanara/internal/core/domain"
	"github.com/mindwell-labs/sanara/internal/core/ports/driven"
	"github.com/mindwell-labs/sanara/internal/core/ports/driving"
	"github.com/mindwell-labs/sanara/internal/logger"
)

// Search service default tuning values.
const (
	// DefaultSearchTimeout is the soft deadline for the retrieval
	// phase of a request.
	DefaultSearchTimeout = 5 * time.Second

	// DefaultRateLimit is the sustained requests-per-second budget for
	// outcome recording to the personalization provider.
	DefaultRateLimit = 10

	// DefaultRateBurst is the burst allowance on top of the sustained
	// rate.
	DefaultRateBurst = 20
)

// SearchConfig tunes the search service.
type SearchConfig struct {
	// SearchTimeout is the soft deadline for retrieval (default 5s).
	SearchTimeout time.Duration

	// OutcomeRate limits outcome recording per second (default 10).
	OutcomeRate float64

	// OutcomeBurst is the recording burst allowance (default 20).
	OutcomeBurst int
}

// ApplyDefaults fills zero values with defaults.
func (c *SearchConfig) ApplyDefaults() {
	if c.SearchTimeout <= 0 {
		c.SearchTimeout = DefaultSearchTimeout
	}
	if c.OutcomeRate <= 0 {
		c.OutcomeRate = DefaultRateLimit
	}
	if c.OutcomeBurst <= 0 {
		c.OutcomeBurst = DefaultRateBurst
	}
}

// Search is the pipeline entry point: cache check, normalization,
// parallel retrieval, ranking, cache population, and asynchronous
// analytics. It implements driving.SearchService.
//
// The service is explicitly constructed and dependency-injected; its
// lifecycle (construction, warm-up, shutdown) belongs to the caller.
type Search struct {
	cfg             SearchConfig
	normalizer      *Normalizer
	orchestrator    *Orchestrator
	ranker          *Ranker
	cache           *ResultCache
	popularity      *PopularityTracker
	personalization driven.PersonalizationProvider
	analytics       driven.AnalyticsSink

	outcomeLimiter *rate.Limiter
}

var _ driving.SearchService = (*Search)(nil)

// NewSearch assembles the search pipeline. The personalization
// provider and analytics sink are optional; the rest are required.
func NewSearch(cfg SearchConfig, normalizer *Normalizer, orchestrator *Orchestrator, ranker *Ranker, cache *ResultCache, popularity *PopularityTracker, personalization driven.PersonalizationProvider, analytics driven.AnalyticsSink) *Search {
	cfg.ApplyDefaults()
	return &Search{
		cfg:             cfg,
		normalizer:      normalizer,
		orchestrator:    orchestrator,
		ranker:          ranker,
		cache:           cache,
		popularity:      popularity,
		personalization: personalization,
		analytics:       analytics,
		outcomeLimiter:  rate.NewLimiter(rate.Limit(cfg.OutcomeRate), cfg.OutcomeBurst),
	}
}

// Search runs the full pipeline for one query. It returns an error
// only for invalid input or options; subsystem failures degrade the
// response status instead.
func (s *Search) Search(ctx context.Context, query string, opts domain.SearchOptions) (*domain.SearchResponse, error) {
	started := time.Now()

	opts.ApplyDefaults()
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("search options: %w", err)
	}

	resp := &domain.SearchResponse{
		SearchID: uuid.NewString(),
		Query:    query,
		Strategy: opts.Strategy,
	}

	profile := s.loadProfile(ctx, opts)

	processed, err := s.normalizer.Normalize(ctx, query, NormalizeOptions{
		CulturalContext:      opts.CulturalContext,
		EnableTypoCorrection: opts.EnableTypoCorrection,
		EnableExpansion:      opts.EnableExpansion,
		SkipEmbedding:        opts.Strategy == domain.RankingBM25,
	})
	if err != nil {
		return nil, fmt.Errorf("normalize query: %w", err)
	}
	resp.EnhancedQuery = processed.Enhanced
	resp.TyposCorrected = processed.TyposCorrected

	key := CacheKey(processed.Enhanced, opts)
	if opts.EnableCaching {
		if entry, ok := s.cache.Get(ctx, key); ok {
			resp.Results = entry.Results
			resp.Status = entry.Status
			if resp.Status == "" {
				// Entries written before statuses were cached.
				resp.Status = statusFor(entry.Results, 0)
			}
			resp.CacheHit = true
			resp.ProcessingTime = time.Since(started)
			s.finish(ctx, resp, processed, opts)
			return resp, nil
		}
	}

	rctx, cancel := context.WithTimeout(ctx, s.cfg.SearchTimeout)
	candidates, failedStrategies := s.orchestrator.Retrieve(rctx, processed, RetrieveOptions{
		MaxResults:         opts.MaxResults,
		CulturalContext:    opts.CulturalContext,
		TherapeuticContext: opts.TherapeuticContext,
		Profile:            profile,
	})
	cancel()

	results := s.ranker.Rank(ctx, candidates, processed, domain.RankingOptions{
		Strategy:           opts.Strategy,
		CulturalContext:    opts.CulturalContext,
		TherapeuticContext: opts.TherapeuticContext,
		MaxResults:         opts.MaxResults,
		DiversityFactor:    opts.DiversityFactor,
		BiasThreshold:      opts.BiasThreshold,
		UserID:             opts.UserID,
	}, profile)

	resp.Results = results
	resp.Status = statusFor(results, failedStrategies)
	if len(results) > 0 {
		resp.Strategy = results[0].Strategy
	}
	resp.ProcessingTime = time.Since(started)

	if opts.EnableCaching && len(results) > 0 {
		s.cache.Put(ctx, key, results, resp.Status)
	}

	s.finish(ctx, resp, processed, opts)
	return resp, nil
}

// InvalidateContent drops cached results referencing the given content
// IDs. Called after content mutations.
func (s *Search) InvalidateContent(ctx context.Context, ids []string) {
	if len(ids) == 0 {
		return
	}
	if err := s.cache.Invalidate(ctx, ids); err != nil {
		logger.Warn("Cache invalidation incomplete: %v", err)
	}
}

// Close releases pipeline resources.
func (s *Search) Close() error {
	return s.cache.Close()
}

// loadProfile fetches the user profile when personalization applies.
// A missing or failed profile disables personalization for the
// request, it never fails it.
func (s *Search) loadProfile(ctx context.Context, opts domain.SearchOptions) *driven.UserProfile {
	if !opts.IncludePersonalization || opts.UserID == "" || s.personalization == nil {
		return nil
	}

	profile, err := s.personalization.GetProfile(ctx, opts.UserID)
	if err != nil {
		logger.Debug("No profile for %s: %v", opts.UserID, err)
		return nil
	}
	return profile
}

// finish records popularity, analytics, and the personalization
// outcome. All of it is fire-and-forget; failures are logged and never
// surface.
func (s *Search) finish(ctx context.Context, resp *domain.SearchResponse, processed *domain.ProcessedQuery, opts domain.SearchOptions) {
	if len(resp.Results) > 0 {
		s.popularity.Record(contentIDs(resp.Results)...)
	}

	record := driven.SearchRecord{
		SearchID:       resp.SearchID,
		Query:          resp.Query,
		EnhancedQuery:  resp.EnhancedQuery,
		ResultCount:    len(resp.Results),
		ProcessingTime: resp.ProcessingTime,
		CacheHit:       resp.CacheHit,
		Strategy:       resp.Strategy,
		Status:         resp.Status,
		UserID:         opts.UserID,
		SessionID:      opts.SessionID,
		Timestamp:      time.Now(),
	}
	results := resp.Results
	userID := opts.UserID

	go func() {
		actx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()

		if s.analytics != nil {
			if err := s.analytics.Record(actx, record); err != nil {
				logger.Warn("Analytics record failed: %v", err)
			}
		}

		if s.personalization != nil && userID != "" && len(results) > 0 {
			if !s.outcomeLimiter.Allow() {
				logger.Debug("Outcome recording rate-limited for %s", userID)
				return
			}
			if err := s.personalization.RecordOutcome(actx, userID, processed, results); err != nil {
				logger.Warn("Outcome recording failed: %v", err)
			}
		}
	}()
}

// statusFor derives the response status from the result list and the
// number of failed retrieval strategies.
func statusFor(results []domain.RankingResult, failedStrategies int) domain.SearchStatus {
	switch {
	case len(results) == 0:
		return domain.StatusEmpty
	case failedStrategies > 0:
		return domain.StatusDegraded
	default:
		return domain.StatusOK
	}
}
