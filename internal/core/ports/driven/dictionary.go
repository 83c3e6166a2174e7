package driven

// Dictionary supplies the term lists the query normalizer matches
// against: therapeutic vocabulary, cultural vocabulary, stopwords, and
// the synonym tables used for expansion. Implementations may reload
// underlying files at any time; all methods must be safe for
// concurrent use.
type Dictionary interface {
	// TherapeuticTerms returns the therapeutic vocabulary used for
	// typo correction and intent classification.
	TherapeuticTerms() []string

	// CulturalTerms returns the cultural vocabulary used for typo
	// correction.
	CulturalTerms() []string

	// Stopwords returns the stopword set.
	Stopwords() map[string]bool

	// Synonyms returns general synonyms for a term.
	Synonyms(term string) []string

	// TherapeuticSynonyms returns therapeutic synonyms for a term.
	TherapeuticSynonyms(term string) []string

	// CulturalSynonyms returns culture-specific synonyms for a term
	// within the given culture.
	CulturalSynonyms(culture, term string) []string
}
