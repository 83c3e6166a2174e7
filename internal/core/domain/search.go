package domain

import "time"

// Default option values applied by SearchOptions.ApplyDefaults.
const (
	DefaultMaxResults      = 10
	DefaultBiasThreshold   = 0.7
	DefaultDiversityFactor = 0.3
)

// SearchStatus distinguishes a normal result list from degraded ones.
type SearchStatus string

// Search statuses. Empty is a valid, displayable state — the caller
// must not treat it as an error.
const (
	// StatusOK means at least one strategy returned candidates and
	// ranking succeeded.
	StatusOK SearchStatus = "ok"

	// StatusEmpty means no strategy returned candidates (e.g. the
	// content store was unreachable).
	StatusEmpty SearchStatus = "empty"

	// StatusDegraded means results were produced but one or more
	// subsystems failed (a strategy, a cache tier, or ranking fell
	// back to raw relevance).
	StatusDegraded SearchStatus = "degraded"
)

// SearchOptions configures a search request.
type SearchOptions struct {
	// CulturalContext restricts and boosts by cultural tags.
	CulturalContext []string

	// TherapeuticContext restricts and boosts by therapeutic themes.
	TherapeuticContext []string

	// MaxResults is the maximum number of results (default 10).
	MaxResults int

	// Strategy selects the ranking strategy (default hybrid).
	Strategy RankingStrategy

	// IncludePersonalization enables profile-based features for UserID.
	IncludePersonalization bool

	// EnableCaching allows serving from and populating the result
	// cache.
	EnableCaching bool

	// BiasThreshold is the maximum tolerated bias (default 0.7).
	BiasThreshold float64

	// DiversityFactor scales diversity penalties (default 0.3).
	DiversityFactor float64

	// EnableTypoCorrection turns on dictionary-based typo correction.
	EnableTypoCorrection bool

	// EnableExpansion turns on synonym/cultural expansion.
	EnableExpansion bool

	// UserID identifies the requesting user for personalization.
	UserID string

	// SessionID identifies the conversation session for analytics.
	SessionID string
}

// ApplyDefaults fills zero-valued options with their defaults.
func (o *SearchOptions) ApplyDefaults() {
	if o.MaxResults <= 0 {
		o.MaxResults = DefaultMaxResults
	}
	if o.Strategy == "" {
		o.Strategy = RankingHybrid
	}
	if o.BiasThreshold <= 0 {
		o.BiasThreshold = DefaultBiasThreshold
	}
	if o.DiversityFactor <= 0 {
		o.DiversityFactor = DefaultDiversityFactor
	}
}

// Validate reports the first invalid option, if any.
func (o *SearchOptions) Validate() error {
	if !o.Strategy.Valid() {
		return ErrInvalidStrategy
	}
	if o.BiasThreshold < 0 || o.BiasThreshold > 1 {
		return ErrInvalidOption
	}
	if o.DiversityFactor < 0 || o.DiversityFactor > 1 {
		return ErrInvalidOption
	}
	return nil
}

// SearchResponse is what the search entry point returns. It always
// carries a (possibly empty) ranked list plus cache and timing
// metadata; internal failures surface as Status, never as panics.
type SearchResponse struct {
	// SearchID uniquely identifies this request.
	SearchID string

	// Query is the original query text.
	Query string

	// EnhancedQuery is the normalized/expanded query text.
	EnhancedQuery string

	// Results is the final ordered result list.
	Results []RankingResult

	// Status distinguishes ok, empty, and degraded outcomes.
	Status SearchStatus

	// CacheHit indicates the response was served from cache.
	CacheHit bool

	// Strategy is the ranking strategy actually used.
	Strategy RankingStrategy

	// ProcessingTime is the wall time spent serving the request.
	ProcessingTime time.Duration

	// TyposCorrected lists typo substitutions made during
	// normalization.
	TyposCorrected []TypoCorrection
}
