package services

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"github.com/kljensen/snowball/english"
	"github.com/xrash/smetrics"

	"github.com/mindwell-labs/sanara/internal/core/domain"
	"github.com/mindwell-labs/sanara/internal/core/ports/driven"
	"github.com/mindwell-labs/sanara/internal/logger"
)

// Normalizer default tuning values.
const (
	// DefaultMaxSynonyms caps expansion terms per query.
	DefaultMaxSynonyms = 5

	// DefaultTypoThreshold is the minimum Jaro-Winkler similarity for
	// a dictionary substitution.
	DefaultTypoThreshold = 0.85

	// DefaultMinTermLength drops terms shorter than this after
	// stemming.
	DefaultMinTermLength = 3
)

// Intent classification confidences. Therapeutic dominates because it
// changes downstream ranking weights materially.
const (
	confidenceTherapeutic   = 0.9
	confidenceComparative   = 0.85
	confidenceExploratory   = 0.8
	confidenceNavigational  = 0.8
	confidenceInformational = 0.7
)

// nonWordChars matches everything outside word characters, hyphens,
// apostrophes, and whitespace.
var nonWordChars = regexp.MustCompile(`[^\p{L}\p{N}\s'-]+`)

// whitespaceRuns collapses runs of whitespace.
var whitespaceRuns = regexp.MustCompile(`\s+`)

// NormalizerConfig tunes the query normalizer.
type NormalizerConfig struct {
	// MaxSynonyms caps expansion terms (default 5).
	MaxSynonyms int

	// TypoThreshold is the minimum similarity for typo substitution
	// (default 0.85).
	TypoThreshold float64

	// MinTermLength drops shorter terms (default 3).
	MinTermLength int
}

// ApplyDefaults fills zero values with defaults.
func (c *NormalizerConfig) ApplyDefaults() {
	if c.MaxSynonyms <= 0 {
		c.MaxSynonyms = DefaultMaxSynonyms
	}
	if c.TypoThreshold <= 0 {
		c.TypoThreshold = DefaultTypoThreshold
	}
	if c.MinTermLength <= 0 {
		c.MinTermLength = DefaultMinTermLength
	}
}

// NormalizeOptions configures one normalization pass.
type NormalizeOptions struct {
	// CulturalContext selects the cultural synonym tables to merge.
	CulturalContext []string

	// EnableTypoCorrection turns on dictionary-based typo correction.
	EnableTypoCorrection bool

	// EnableExpansion turns on synonym/cultural expansion.
	EnableExpansion bool

	// SkipEmbedding disables the embedding call (used when serving a
	// request that will not run the semantic strategy).
	SkipEmbedding bool
}

// Normalizer cleans, corrects, expands, and classifies raw query text
// into a ProcessedQuery. It is a pure transformation apart from the
// optional embedding call.
type Normalizer struct {
	cfg      NormalizerConfig
	dict     driven.Dictionary
	embedder driven.EmbeddingService
}

// NewNormalizer creates a query normalizer. The embedder is optional
// (can be nil); the dictionary is required.
func NewNormalizer(cfg NormalizerConfig, dict driven.Dictionary, embedder driven.EmbeddingService) *Normalizer {
	cfg.ApplyDefaults()
	return &Normalizer{
		cfg:      cfg,
		dict:     dict,
		embedder: embedder,
	}
}

// Normalize produces a ProcessedQuery from raw text. It returns
// domain.ErrInvalidInput when nothing survives cleaning; embedding
// failure is not an error, it reduces confidence and leaves the
// embedding nil.
func (n *Normalizer) Normalize(ctx context.Context, raw string, opts NormalizeOptions) (*domain.ProcessedQuery, error) {
	cleaned := CleanText(raw)
	if cleaned == "" {
		return nil, domain.ErrInvalidInput
	}

	query := &domain.ProcessedQuery{
		Original: raw,
		Enhanced: cleaned,
	}

	if opts.EnableTypoCorrection {
		query.Enhanced, query.TyposCorrected = n.correctTypos(cleaned)
		if len(query.TyposCorrected) > 0 {
			logger.Debug("Typo correction: %d substitutions", len(query.TyposCorrected))
		}
	}

	query.Terms = n.extractTerms(query.Enhanced)
	query.Intent, query.Confidence = n.classifyIntent(query.Enhanced, query.Terms)

	if opts.EnableExpansion {
		query.Synonyms, query.CulturalVariants = n.expand(query.Terms, opts.CulturalContext)
	}

	if n.embedder != nil && !opts.SkipEmbedding {
		embedding, err := n.embedder.Embed(ctx, query.Enhanced)
		if err != nil {
			// Semantic retrieval is simply skipped downstream.
			logger.Warn("Query embedding failed: %v", err)
			query.Confidence = max(0, query.Confidence-0.1)
		} else {
			query.Embedding = embedding
		}
	}

	return query, nil
}

// CleanText trims, collapses whitespace, strips characters outside
// word/hyphen/apostrophe, and lowercases.
func CleanText(raw string) string {
	text := nonWordChars.ReplaceAllString(raw, " ")
	text = whitespaceRuns.ReplaceAllString(text, " ")
	return strings.ToLower(strings.TrimSpace(text))
}

// correctTypos compares each token against the therapeutic and
// cultural dictionaries and substitutes the best match above the
// similarity threshold. Every substitution is recorded.
func (n *Normalizer) correctTypos(text string) (string, []domain.TypoCorrection) {
	tokens := strings.Fields(text)
	var corrections []domain.TypoCorrection

	vocabulary := append(n.dict.TherapeuticTerms(), n.dict.CulturalTerms()...)

	for i, token := range tokens {
		best, score := closestTerm(token, vocabulary)
		if best != "" && best != token && score > n.cfg.TypoThreshold {
			corrections = append(corrections, domain.TypoCorrection{
				Original:  token,
				Corrected: best,
			})
			tokens[i] = best
		}
	}

	return strings.Join(tokens, " "), corrections
}

// closestTerm returns the vocabulary term with the highest
// Jaro-Winkler similarity to the token.
func closestTerm(token string, vocabulary []string) (string, float64) {
	var best string
	var bestScore float64

	for _, term := range vocabulary {
		score := smetrics.JaroWinkler(token, term, 0.7, 4)
		if score > bestScore {
			best = term
			bestScore = score
		}
	}

	return best, bestScore
}

// extractTerms tokenizes, removes stopwords, stems, deduplicates, and
// drops short terms.
func (n *Normalizer) extractTerms(text string) []string {
	stopwords := n.dict.Stopwords()
	seen := make(map[string]bool)
	var terms []string

	for _, token := range strings.Fields(text) {
		if stopwords[token] {
			continue
		}
		stem := english.Stem(token, false)
		if len(stem) < n.cfg.MinTermLength {
			continue
		}
		if seen[stem] {
			continue
		}
		seen[stem] = true
		terms = append(terms, stem)
	}

	return terms
}

// Phrase patterns for the non-therapeutic intents, checked in priority
// order after the therapeutic keyword test.
var (
	comparativePhrases  = []string{"versus", " vs ", "difference between", "compared to", "compare"}
	exploratoryPhrases  = []string{"show me", "discover", "explore", "what are some", "tell me about"}
	navigationalPhrases = []string{"find", "locate", "where is", "look up", "search for"}
)

// classifyIntent applies rule-based pattern matching in priority
// order. The ordering is a deliberate tie-break: therapeutic intent
// wins because it changes downstream ranking weights.
func (n *Normalizer) classifyIntent(text string, terms []string) (domain.QueryIntent, float64) {
	therapeutic := make(map[string]bool)
	for _, t := range n.dict.TherapeuticTerms() {
		therapeutic[t] = true
		therapeutic[english.Stem(t, false)] = true
	}

	for _, term := range terms {
		if therapeutic[term] {
			return domain.IntentTherapeutic, confidenceTherapeutic
		}
	}
	for _, token := range strings.Fields(text) {
		if therapeutic[token] {
			return domain.IntentTherapeutic, confidenceTherapeutic
		}
	}

	if containsAny(text, comparativePhrases) {
		return domain.IntentComparative, confidenceComparative
	}
	if containsAny(text, exploratoryPhrases) {
		return domain.IntentExploratory, confidenceExploratory
	}
	if containsAny(text, navigationalPhrases) {
		return domain.IntentNavigational, confidenceNavigational
	}

	return domain.IntentInformational, confidenceInformational
}

func containsAny(text string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}

// scoredSynonym is an expansion candidate with its relevance score.
type scoredSynonym struct {
	term     string
	score    float64
	cultural bool
}

// expand merges per-culture synonym tables, therapeutic synonym
// tables, and the general synonym source, ranks candidates by a
// relevance score that boosts therapeutic and culturally-matched
// terms, and caps at MaxSynonyms.
func (n *Normalizer) expand(terms, culturalContext []string) (synonyms, culturalVariants []string) {
	seen := make(map[string]bool)
	for _, t := range terms {
		seen[t] = true
	}

	var candidates []scoredSynonym
	add := func(term string, score float64, cultural bool) {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" || seen[term] {
			return
		}
		seen[term] = true
		candidates = append(candidates, scoredSynonym{term: term, score: score, cultural: cultural})
	}

	for _, term := range terms {
		for _, syn := range n.dict.TherapeuticSynonyms(term) {
			add(syn, 0.8, false)
		}
		for _, culture := range culturalContext {
			for _, syn := range n.dict.CulturalSynonyms(culture, term) {
				add(syn, 0.7, true)
			}
		}
		for _, syn := range n.dict.Synonyms(term) {
			add(syn, 0.5, false)
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	if len(candidates) > n.cfg.MaxSynonyms {
		candidates = candidates[:n.cfg.MaxSynonyms]
	}

	for _, c := range candidates {
		if c.cultural {
			culturalVariants = append(culturalVariants, c.term)
		} else {
			synonyms = append(synonyms, c.term)
		}
	}

	return synonyms, culturalVariants
}
