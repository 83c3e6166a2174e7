package domain

// RetrievalStrategy identifies one independent retrieval signal.
type RetrievalStrategy string

// Known retrieval strategies.
const (
	StrategySemantic      RetrievalStrategy = "semantic"
	StrategyKeyword       RetrievalStrategy = "keyword"
	StrategyCultural      RetrievalStrategy = "cultural"
	StrategyTherapeutic   RetrievalStrategy = "therapeutic"
	StrategyCollaborative RetrievalStrategy = "collaborative"
)

// Candidate is a content item found by one or more retrieval
// strategies, annotated with the raw scores those strategies produced.
// Candidates are request-scoped; ranking consumes them and emits
// RankingResults.
type Candidate struct {
	// Item is the matched content item.
	Item ContentItem

	// Strategies records which strategies found this item.
	Strategies []RetrievalStrategy

	// Similarity is the raw vector similarity (0 when not found
	// semantically).
	Similarity float64

	// CulturalMatch is the raw cultural tag overlap score.
	CulturalMatch float64

	// TherapeuticMatch is the raw therapeutic theme overlap score.
	TherapeuticMatch float64

	// RawScore is the best raw relevance reported by any strategy.
	// It is the fallback sort key when ranking degrades.
	RawScore float64
}

// FoundBy reports whether the candidate was produced by the given
// strategy.
func (c *Candidate) FoundBy(s RetrievalStrategy) bool {
	for _, have := range c.Strategies {
		if have == s {
			return true
		}
	}
	return false
}
