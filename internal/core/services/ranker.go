package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/mindwell-labs/sanara/internal/core/domain"
	"github.com/mindwell-labs/sanara/internal/core/ports/driven"
	"github.com/mindwell-labs/sanara/internal/logger"
)

// Diversity penalty rates, scaled by the caller's diversity factor.
const (
	penaltyPerRepeatedCulture = 0.1
	penaltyPerRepeatedType    = 0.05
)

// Ranker turns merged candidates into the final ordered result list:
// feature extraction, strategy scoring, diversity filtering, bias
// filtering, the optional learning-to-rank hook, and truncation.
//
// Ranking never fails the request. Any panic or model error inside the
// pipeline degrades to sorting candidates by their raw retrieval
// score.
type Ranker struct {
	popularity *PopularityTracker
	model      driven.RankingModel
	now        func() time.Time
}

// NewRanker creates a ranker. The model is the optional
// learning-to-rank hook; pass nil to disable it.
func NewRanker(popularity *PopularityTracker, model driven.RankingModel) *Ranker {
	return &Ranker{
		popularity: popularity,
		model:      model,
		now:        time.Now,
	}
}

// Rank scores, filters, and orders the candidates. The returned list
// is deterministic for a fixed candidate set and a fixed external
// snapshot (profile, popularity).
func (r *Ranker) Rank(ctx context.Context, candidates []domain.Candidate, query *domain.ProcessedQuery, opts domain.RankingOptions, profile *driven.UserProfile) (results []domain.RankingResult) {
	if len(candidates) == 0 {
		return nil
	}

	defer func() {
		if rec := recover(); rec != nil {
			logger.Warn("Ranking panicked, degrading to raw relevance: %v", rec)
			results = r.rawFallback(candidates, opts)
		}
	}()

	strategy := opts.Strategy
	if strategy == "" {
		strategy = domain.RankingHybrid
	}

	// Features for every candidate are materialized before any scoring
	// pass; scoring assumes a complete feature set.
	avgLen := averageDocLength(candidates)
	now := r.now()

	results = make([]domain.RankingResult, 0, len(candidates))
	for i := range candidates {
		c := &candidates[i]
		factors := extractFeatures(c, query, opts, profile, avgLen, now)
		factors.Popularity = r.popularity.Score(c.Item.ID)
		results = append(results, domain.RankingResult{
			Item:       c.Item,
			Strategies: c.Strategies,
			Factors:    factors,
			Strategy:   strategy,
		})
	}

	effective := r.score(results, strategy, profile)
	sortByScore(results)

	if opts.DiversityFactor > 0 {
		applyDiversityPenalties(results, opts.DiversityFactor)
		sortByScore(results)
	}

	results = filterByBias(results, opts.BiasThreshold)

	if r.model != nil && r.model.Ready() && profile != nil {
		r.applyModel(ctx, results, opts.UserID)
		sortByScore(results)
	}

	if opts.MaxResults > 0 && len(results) > opts.MaxResults {
		results = results[:opts.MaxResults]
	}
	for i := range results {
		results[i].Rank = i + 1
		results[i].Strategy = effective
	}

	return results
}

// score computes the composite score per result for the selected
// strategy and returns the strategy actually applied (collaborative
// degrades to hybrid without similar-user data).
func (r *Ranker) score(results []domain.RankingResult, strategy domain.RankingStrategy, profile *driven.UserProfile) domain.RankingStrategy {
	if strategy == domain.RankingCollaborative && !hasCollaborativeData(profile) {
		logger.Debug("No similar-user data, collaborative ranking falls back to hybrid")
		strategy = domain.RankingHybrid
	}

	for i := range results {
		f := &results[i].Factors
		switch strategy {
		case domain.RankingSemantic:
			results[i].Score = f.Semantic
		case domain.RankingBM25:
			results[i].Score = f.Keyword
		case domain.RankingTherapeutic:
			results[i].Score = 0.5*f.Therapeutic + 0.2*f.Semantic + 0.15*f.Cultural + 0.1*f.Quality + 0.05*f.Popularity
		case domain.RankingCollaborative:
			affinity := profile.ContentAffinity[results[i].Item.ID]
			results[i].Score = 0.6*affinity + 0.25*f.Semantic + 0.15*f.Cultural
		default:
			results[i].Score = 0.4*f.Semantic + 0.25*f.Keyword + 0.15*f.Cultural + 0.10*f.Therapeutic + 0.05*f.Recency + 0.05*f.Popularity
		}
	}

	return strategy
}

// hasCollaborativeData reports whether the profile carries enough
// similar-user signal for collaborative scoring.
func hasCollaborativeData(profile *driven.UserProfile) bool {
	return profile != nil && len(profile.SimilarUserIDs) > 0 && len(profile.ContentAffinity) > 0
}

// applyDiversityPenalties walks the list in rank order, deducting for
// every cultural tag and content type already seen above. The factor
// scales the deduction; the penalty is recorded on the result.
func applyDiversityPenalties(results []domain.RankingResult, factor float64) {
	seenCultures := make(map[string]int)
	seenTypes := make(map[domain.ContentType]int)

	for i := range results {
		var penalty float64
		for _, tag := range results[i].Item.CulturalTags {
			tag = strings.ToLower(tag)
			penalty += penaltyPerRepeatedCulture * float64(seenCultures[tag])
			seenCultures[tag]++
		}
		penalty += penaltyPerRepeatedType * float64(seenTypes[results[i].Item.Type])
		seenTypes[results[i].Item.Type]++

		penalty *= factor
		results[i].Factors.DiversityPenalty = penalty
		results[i].Score -= penalty
	}
}

// filterByBias enforces the safety floor: results with a bias score
// above 1-threshold are dropped, and unvalidated content targeting a
// sensitive issue is dropped regardless of score.
func filterByBias(results []domain.RankingResult, biasThreshold float64) []domain.RankingResult {
	kept := results[:0]
	for _, res := range results {
		if res.Item.BiasScore > 1-biasThreshold {
			logger.Debug("Dropping %s: bias %.2f above floor", res.Item.ID, res.Item.BiasScore)
			continue
		}
		if !res.Item.Validated && res.Item.HasSensitiveIssue() {
			logger.Debug("Dropping %s: unvalidated content with sensitive target issue", res.Item.ID)
			continue
		}
		kept = append(kept, res)
	}
	return kept
}

// applyModel replaces composite scores with model predictions over the
// same feature vectors. A prediction error leaves that result's
// composite score in place.
func (r *Ranker) applyModel(ctx context.Context, results []domain.RankingResult, userID string) {
	for i := range results {
		predicted, err := r.model.Predict(ctx, userID, results[i].Factors)
		if err != nil {
			logger.Warn("Ranking model prediction failed for %s: %v", results[i].Item.ID, err)
			continue
		}
		results[i].Score = predicted
	}
}

// rawFallback sorts candidates by their raw retrieval relevance. Used
// when the ranking pipeline fails; it still honors the bias floor.
func (r *Ranker) rawFallback(candidates []domain.Candidate, opts domain.RankingOptions) []domain.RankingResult {
	results := make([]domain.RankingResult, 0, len(candidates))
	for i := range candidates {
		results = append(results, domain.RankingResult{
			Item:       candidates[i].Item,
			Strategies: candidates[i].Strategies,
			Score:      candidates[i].RawScore,
			Strategy:   domain.RankingHybrid,
		})
	}

	sortByScore(results)
	results = filterByBias(results, opts.BiasThreshold)

	if opts.MaxResults > 0 && len(results) > opts.MaxResults {
		results = results[:opts.MaxResults]
	}
	for i := range results {
		results[i].Rank = i + 1
	}
	return results
}

// sortByScore orders results by score descending, breaking ties by
// content ID for determinism.
func sortByScore(results []domain.RankingResult) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Item.ID < results[j].Item.ID
	})
}
