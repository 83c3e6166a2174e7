package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/mindwell-labs/sanara/internal/core/domain"
	"github.com/mindwell-labs/sanara/internal/core/ports/driven"
	"github.com/mindwell-labs/sanara/internal/logger"
)

// Orchestrator default tuning values.
const (
	// DefaultStrategyTimeout bounds each individual strategy call.
	DefaultStrategyTimeout = 2 * time.Second

	// DefaultSemanticThreshold is the minimum similarity for semantic
	// hits.
	DefaultSemanticThreshold = 0.5

	// overFetchFactor widens each strategy's fetch so ranking has
	// material for diversity filtering.
	overFetchFactor = 2
)

// OrchestratorConfig tunes the retrieval orchestrator.
type OrchestratorConfig struct {
	// StrategyTimeout bounds each strategy call (default 2s).
	StrategyTimeout time.Duration

	// SemanticThreshold is the minimum similarity for semantic hits
	// (default 0.5).
	SemanticThreshold float64
}

// ApplyDefaults fills zero values with defaults.
func (c *OrchestratorConfig) ApplyDefaults() {
	if c.StrategyTimeout <= 0 {
		c.StrategyTimeout = DefaultStrategyTimeout
	}
	if c.SemanticThreshold <= 0 {
		c.SemanticThreshold = DefaultSemanticThreshold
	}
}

// RetrieveOptions configures one retrieval pass.
type RetrieveOptions struct {
	// MaxResults is the caller's requested result count; each strategy
	// over-fetches a multiple of it.
	MaxResults int

	// CulturalContext enables the cultural strategy.
	CulturalContext []string

	// TherapeuticContext enables the therapeutic strategy.
	TherapeuticContext []string

	// Profile enables the collaborative strategy when non-nil.
	Profile *driven.UserProfile
}

// strategyResult is one strategy's settled outcome.
type strategyResult struct {
	strategy   domain.RetrievalStrategy
	candidates []domain.Candidate
	err        error
}

// Orchestrator fans a processed query out to every applicable
// retrieval strategy, joins with settle-all semantics, and merges the
// results by content ID. Strategy failures are logged and contribute
// zero candidates; Retrieve itself never fails.
type Orchestrator struct {
	cfg    OrchestratorConfig
	store  driven.ContentStore
	vector driven.VectorIndex
}

// NewOrchestrator creates a retrieval orchestrator. The vector index
// is optional; when nil the semantic strategy falls back to the
// content store's embedding scan.
func NewOrchestrator(cfg OrchestratorConfig, store driven.ContentStore, vector driven.VectorIndex) *Orchestrator {
	cfg.ApplyDefaults()
	return &Orchestrator{
		cfg:    cfg,
		store:  store,
		vector: vector,
	}
}

// Retrieve runs every applicable strategy concurrently and returns the
// merged candidate set plus the number of strategies that failed or
// timed out. An empty result means no strategy produced candidates.
func (o *Orchestrator) Retrieve(ctx context.Context, query *domain.ProcessedQuery, opts RetrieveOptions) ([]domain.Candidate, int) {
	strategies := o.applicable(query, opts)
	if len(strategies) == 0 {
		return nil, 0
	}

	limit := opts.MaxResults * overFetchFactor
	results := make(chan strategyResult, len(strategies))

	for _, strategy := range strategies {
		go func(s domain.RetrievalStrategy) {
			sctx, cancel := context.WithTimeout(ctx, o.cfg.StrategyTimeout)
			defer cancel()

			candidates, err := o.run(sctx, s, query, opts, limit)
			results <- strategyResult{strategy: s, candidates: candidates, err: err}
		}(strategy)
	}

	merged := make(map[string]*domain.Candidate)
	var order []string
	var failed int

	for range strategies {
		res := <-results
		if res.err != nil {
			logger.Warn("Strategy %s failed: %v", res.strategy, res.err)
			failed++
			continue
		}
		logger.Debug("Strategy %s returned %d candidates", res.strategy, len(res.candidates))

		for _, c := range res.candidates {
			existing, ok := merged[c.Item.ID]
			if !ok {
				candidate := c
				merged[c.Item.ID] = &candidate
				order = append(order, c.Item.ID)
				continue
			}
			mergeCandidate(existing, &c)
		}
	}

	out := make([]domain.Candidate, 0, len(order))
	for _, id := range order {
		out = append(out, *merged[id])
	}
	return out, failed
}

// applicable builds the strategy set for this query. Semantic needs an
// embedding, cultural and therapeutic need their contexts, and
// collaborative needs a profile with similar-user data.
func (o *Orchestrator) applicable(query *domain.ProcessedQuery, opts RetrieveOptions) []domain.RetrievalStrategy {
	strategies := []domain.RetrievalStrategy{domain.StrategyKeyword}

	if len(query.Embedding) > 0 {
		strategies = append(strategies, domain.StrategySemantic)
	}
	if len(opts.CulturalContext) > 0 {
		strategies = append(strategies, domain.StrategyCultural)
	}
	if len(opts.TherapeuticContext) > 0 {
		strategies = append(strategies, domain.StrategyTherapeutic)
	}
	if opts.Profile != nil && len(opts.Profile.ContentAffinity) > 0 {
		strategies = append(strategies, domain.StrategyCollaborative)
	}

	return strategies
}

// run dispatches one strategy.
func (o *Orchestrator) run(ctx context.Context, s domain.RetrievalStrategy, query *domain.ProcessedQuery, opts RetrieveOptions, limit int) ([]domain.Candidate, error) {
	switch s {
	case domain.StrategySemantic:
		return o.runSemantic(ctx, query, limit)
	case domain.StrategyKeyword:
		return o.runKeyword(ctx, query, limit)
	case domain.StrategyCultural:
		return o.runCultural(ctx, opts.CulturalContext, limit)
	case domain.StrategyTherapeutic:
		return o.runTherapeutic(ctx, query, opts.TherapeuticContext, limit)
	case domain.StrategyCollaborative:
		return o.runCollaborative(ctx, opts.Profile, limit)
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidStrategy, s)
	}
}

// runSemantic searches by embedding similarity, preferring the vector
// index over a store scan.
func (o *Orchestrator) runSemantic(ctx context.Context, query *domain.ProcessedQuery, limit int) ([]domain.Candidate, error) {
	if o.vector != nil {
		hits, err := o.vector.Search(ctx, query.Embedding, limit)
		if err != nil {
			return nil, fmt.Errorf("vector search: %w", err)
		}

		var candidates []domain.Candidate
		for _, hit := range hits {
			if hit.Similarity < o.cfg.SemanticThreshold {
				continue
			}
			item, err := o.store.Get(ctx, hit.ContentID)
			if err != nil {
				logger.Debug("Indexed item %s not in store: %v", hit.ContentID, err)
				continue
			}
			candidates = append(candidates, domain.Candidate{
				Item:       *item,
				Strategies: []domain.RetrievalStrategy{domain.StrategySemantic},
				Similarity: hit.Similarity,
				RawScore:   hit.Similarity,
			})
		}
		return candidates, nil
	}

	hits, err := o.store.FindByEmbedding(ctx, query.Embedding, o.cfg.SemanticThreshold, limit)
	if err != nil {
		return nil, fmt.Errorf("embedding scan: %w", err)
	}

	candidates := make([]domain.Candidate, 0, len(hits))
	for _, hit := range hits {
		candidates = append(candidates, domain.Candidate{
			Item:       hit.Item,
			Strategies: []domain.RetrievalStrategy{domain.StrategySemantic},
			Similarity: hit.Similarity,
			RawScore:   hit.Similarity,
		})
	}
	return candidates, nil
}

// runKeyword does a full-text search over the enhanced query plus its
// expansion terms. Raw score decays with store rank.
func (o *Orchestrator) runKeyword(ctx context.Context, query *domain.ProcessedQuery, limit int) ([]domain.Candidate, error) {
	items, err := o.store.FindByFullText(ctx, query.SearchText(), limit)
	if err != nil {
		return nil, fmt.Errorf("full-text search: %w", err)
	}

	candidates := make([]domain.Candidate, 0, len(items))
	for i, item := range items {
		candidates = append(candidates, domain.Candidate{
			Item:       item,
			Strategies: []domain.RetrievalStrategy{domain.StrategyKeyword},
			RawScore:   rankDecay(i, limit),
		})
	}
	return candidates, nil
}

// runCultural fetches items tagged with the caller's cultural context
// and scores them by overlap fraction.
func (o *Orchestrator) runCultural(ctx context.Context, context []string, limit int) ([]domain.Candidate, error) {
	items, err := o.store.FindByTags(ctx, context, limit)
	if err != nil {
		return nil, fmt.Errorf("cultural tag search: %w", err)
	}

	candidates := make([]domain.Candidate, 0, len(items))
	for _, item := range items {
		match := overlapFraction(item.CulturalTags, context)
		candidates = append(candidates, domain.Candidate{
			Item:          item,
			Strategies:    []domain.RetrievalStrategy{domain.StrategyCultural},
			CulturalMatch: match,
			RawScore:      match,
		})
	}
	return candidates, nil
}

// runTherapeutic fetches items tagged with the caller's therapeutic
// context, folding the query terms in so theme matches on the query
// itself also surface.
func (o *Orchestrator) runTherapeutic(ctx context.Context, query *domain.ProcessedQuery, context []string, limit int) ([]domain.Candidate, error) {
	tags := make([]string, 0, len(context)+len(query.Terms))
	tags = append(tags, context...)
	tags = append(tags, query.Terms...)

	items, err := o.store.FindByTags(ctx, tags, limit)
	if err != nil {
		return nil, fmt.Errorf("therapeutic tag search: %w", err)
	}

	candidates := make([]domain.Candidate, 0, len(items))
	for _, item := range items {
		match := therapeuticFit(&item, context)
		candidates = append(candidates, domain.Candidate{
			Item:             item,
			Strategies:       []domain.RetrievalStrategy{domain.StrategyTherapeutic},
			TherapeuticMatch: match,
			RawScore:         match,
		})
	}
	return candidates, nil
}

// runCollaborative surfaces items similar users engaged with, scored
// by affinity. Affinities are visited best-first so the fetch limit
// cuts deterministically.
func (o *Orchestrator) runCollaborative(ctx context.Context, profile *driven.UserProfile, limit int) ([]domain.Candidate, error) {
	type affinityEntry struct {
		contentID string
		affinity  float64
	}
	entries := make([]affinityEntry, 0, len(profile.ContentAffinity))
	for id, affinity := range profile.ContentAffinity {
		entries = append(entries, affinityEntry{contentID: id, affinity: affinity})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].affinity != entries[j].affinity {
			return entries[i].affinity > entries[j].affinity
		}
		return entries[i].contentID < entries[j].contentID
	})

	var candidates []domain.Candidate
	for _, entry := range entries {
		if len(candidates) >= limit {
			break
		}
		item, err := o.store.Get(ctx, entry.contentID)
		if err != nil {
			logger.Debug("Affinity item %s not in store: %v", entry.contentID, err)
			continue
		}
		candidates = append(candidates, domain.Candidate{
			Item:       *item,
			Strategies: []domain.RetrievalStrategy{domain.StrategyCollaborative},
			RawScore:   entry.affinity,
		})
	}
	return candidates, nil
}

// mergeCandidate folds a duplicate hit into the existing candidate:
// provenance is unioned, per-feature raw scores keep their maximum.
func mergeCandidate(dst, src *domain.Candidate) {
	for _, s := range src.Strategies {
		if !dst.FoundBy(s) {
			dst.Strategies = append(dst.Strategies, s)
		}
	}
	dst.Similarity = max(dst.Similarity, src.Similarity)
	dst.CulturalMatch = max(dst.CulturalMatch, src.CulturalMatch)
	dst.TherapeuticMatch = max(dst.TherapeuticMatch, src.TherapeuticMatch)
	dst.RawScore = max(dst.RawScore, src.RawScore)
}

// rankDecay converts a zero-based position into a raw score in (0,1].
func rankDecay(position, limit int) float64 {
	if limit <= 0 {
		return 0
	}
	return 1 - float64(position)/float64(limit)
}
