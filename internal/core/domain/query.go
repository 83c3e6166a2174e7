package domain

// QueryIntent is the classified purpose of a search query.
type QueryIntent string

// Known query intents, in rough priority order. Therapeutic intent
// dominates classification because it changes ranking weights
// downstream.
const (
	IntentTherapeutic   QueryIntent = "therapeutic"
	IntentComparative   QueryIntent = "comparative"
	IntentExploratory   QueryIntent = "exploratory"
	IntentNavigational  QueryIntent = "navigational"
	IntentInformational QueryIntent = "informational"
)

// TypoCorrection records a single token substitution made during
// normalization.
type TypoCorrection struct {
	// Original is the token as the user typed it.
	Original string

	// Corrected is the dictionary term it was replaced with.
	Corrected string
}

// ProcessedQuery is the enriched, request-scoped form of a raw query.
// It is created per request and discarded after ranking; it is never
// persisted.
type ProcessedQuery struct {
	// Original is the raw query text as received.
	Original string

	// Enhanced is the cleaned (and typo-corrected) query text.
	Enhanced string

	// Terms are the stemmed, deduplicated key terms.
	Terms []string

	// Synonyms are expansion terms merged from the synonym sources.
	Synonyms []string

	// CulturalVariants are culture-specific expansion terms.
	CulturalVariants []string

	// Intent is the classified query intent.
	Intent QueryIntent

	// Confidence is the classifier confidence in [0,1]. It is reduced
	// when enrichment steps (e.g. embedding) fail.
	Confidence float64

	// Embedding is the query vector, when the embedding service was
	// available. Nil disables the semantic retrieval strategy.
	Embedding []float32

	// TyposCorrected lists every substitution made during typo
	// correction.
	TyposCorrected []TypoCorrection
}

// SearchText returns the text retrieval strategies should match
// against: the enhanced query plus expansion terms.
func (q *ProcessedQuery) SearchText() string {
	text := q.Enhanced
	for _, s := range q.Synonyms {
		text += " " + s
	}
	for _, v := range q.CulturalVariants {
		text += " " + v
	}
	return text
}
