package domain

// RankingStrategy selects how candidate features are combined into a
// final score.
type RankingStrategy string

// Known ranking strategies. Hybrid is the default.
const (
	RankingHybrid        RankingStrategy = "hybrid"
	RankingSemantic      RankingStrategy = "semantic"
	RankingBM25          RankingStrategy = "bm25"
	RankingCollaborative RankingStrategy = "collaborative"
	RankingTherapeutic   RankingStrategy = "therapeutic"
)

// Valid reports whether the ranking strategy is a known value.
func (s RankingStrategy) Valid() bool {
	switch s {
	case RankingHybrid, RankingSemantic, RankingBM25, RankingCollaborative, RankingTherapeutic:
		return true
	}
	return false
}

// RankingFactors is the per-candidate feature breakdown produced by
// feature extraction. Every feature is in [0,1] except DiversityPenalty,
// which is a deduction.
type RankingFactors struct {
	// Semantic is the vector similarity from the semantic strategy.
	Semantic float64

	// Keyword is the normalized BM25-style term score.
	Keyword float64

	// Cultural is the overlap between item tags and the caller's
	// cultural context.
	Cultural float64

	// Therapeutic is the overlap between item themes/issues and the
	// caller's therapeutic context.
	Therapeutic float64

	// Personalization is the user-preference score (0.5 default).
	Personalization float64

	// Recency is the piecewise age decay score.
	Recency float64

	// Popularity is the collaborative popularity score.
	Popularity float64

	// Quality is the authority score (validation, source, author,
	// period).
	Quality float64

	// BiasAdjustment is 1 minus the item's bias score.
	BiasAdjustment float64

	// DiversityPenalty is the deduction applied for repeated cultures
	// and content types among higher-ranked results.
	DiversityPenalty float64
}

// RankingResult is the externally visible unit: a candidate with its
// feature breakdown, final score, and 1-based rank.
type RankingResult struct {
	// Item is the ranked content item.
	Item ContentItem

	// Strategies records the retrieval strategies that found the item.
	Strategies []RetrievalStrategy

	// Factors is the full feature breakdown.
	Factors RankingFactors

	// Score is the final scalar score after penalties.
	Score float64

	// Rank is the 1-based position in the result list.
	Rank int

	// Strategy names the ranking strategy that produced the score.
	Strategy RankingStrategy
}

// RankingOptions configures a ranking pass.
type RankingOptions struct {
	// Strategy selects the scoring strategy (default hybrid).
	Strategy RankingStrategy

	// CulturalContext is the caller's cultural context tags.
	CulturalContext []string

	// TherapeuticContext is the caller's therapeutic context themes.
	TherapeuticContext []string

	// MaxResults bounds the returned list.
	MaxResults int

	// DiversityFactor scales the diversity penalties (0 disables).
	DiversityFactor float64

	// BiasThreshold is the maximum tolerated bias; items with
	// BiasScore > 1-BiasThreshold are dropped.
	BiasThreshold float64

	// UserID enables personalization features when set.
	UserID string
}
