package services

import (
	"strings"
	"time"

	"github.com/mindwell-labs/sanara/internal/core/domain"
	"github.com/mindwell-labs/sanara/internal/core/ports/driven"
)

// BM25 tuning constants for the keyword feature.
const (
	bm25K1 = 1.5
	bm25B  = 0.75
)

// extractFeatures materializes the full feature vector for one
// candidate. All features land in [0,1]. The popularity and
// collaborative signals are filled in by the ranker from its own
// snapshots.
func extractFeatures(c *domain.Candidate, query *domain.ProcessedQuery, opts domain.RankingOptions, profile *driven.UserProfile, avgDocLen float64, now time.Time) domain.RankingFactors {
	return domain.RankingFactors{
		Semantic:        c.Similarity,
		Keyword:         keywordScore(&c.Item, query.Terms, avgDocLen),
		Cultural:        overlapFraction(c.Item.CulturalTags, opts.CulturalContext),
		Therapeutic:     therapeuticFit(&c.Item, opts.TherapeuticContext),
		Personalization: preferenceScore(profile, &c.Item),
		Recency:         recencyScore(c.Item.UpdatedAt, now),
		Quality:         authorityScore(&c.Item),
		BiasAdjustment:  1 - c.Item.BiasScore,
	}
}

// keywordScore is a normalized BM25-style term-frequency/length score
// for the query terms against the candidate's title and body. The
// per-term saturation (k1+1)·tf / (tf + K) is divided by k1+1 so each
// term contributes at most 1, then averaged over the query terms.
func keywordScore(item *domain.ContentItem, terms []string, avgDocLen float64) float64 {
	if len(terms) == 0 {
		return 0
	}

	tokens := contentTokens(item)
	docLen := float64(len(tokens))
	if docLen == 0 {
		return 0
	}
	if avgDocLen <= 0 {
		avgDocLen = docLen
	}

	freq := make(map[string]int, len(tokens))
	for _, tok := range tokens {
		freq[tok]++
	}

	norm := bm25K1 * (1 - bm25B + bm25B*docLen/avgDocLen)

	var total float64
	for _, term := range terms {
		tf := float64(termFrequency(freq, term))
		if tf == 0 {
			continue
		}
		total += (tf * (bm25K1 + 1)) / (tf + norm) / (bm25K1 + 1)
	}

	return total / float64(len(terms))
}

// termFrequency counts occurrences of a stemmed term, matching tokens
// by prefix so "medit" hits "meditation" and "meditative".
func termFrequency(freq map[string]int, term string) int {
	if n, ok := freq[term]; ok {
		return n
	}
	var n int
	for tok, count := range freq {
		if strings.HasPrefix(tok, term) {
			n += count
		}
	}
	return n
}

// contentTokens lowercases and tokenizes the searchable text of an
// item.
func contentTokens(item *domain.ContentItem) []string {
	text := strings.ToLower(item.Title + " " + item.Body)
	return strings.Fields(nonWordChars.ReplaceAllString(text, " "))
}

// overlapFraction is the fraction of the caller's context values
// matched by the candidate's tags, case-insensitive. Empty context
// yields 0.
func overlapFraction(tags, context []string) float64 {
	if len(context) == 0 {
		return 0
	}

	have := make(map[string]bool, len(tags))
	for _, t := range tags {
		have[strings.ToLower(t)] = true
	}

	var matched int
	for _, c := range context {
		if have[strings.ToLower(c)] {
			matched++
		}
	}

	return float64(matched) / float64(len(context))
}

// therapeuticFit measures overlap between the caller's therapeutic
// context and the union of the candidate's themes and target issues.
func therapeuticFit(item *domain.ContentItem, context []string) float64 {
	combined := make([]string, 0, len(item.TherapeuticThemes)+len(item.TargetIssues))
	combined = append(combined, item.TherapeuticThemes...)
	combined = append(combined, item.TargetIssues...)
	return overlapFraction(combined, context)
}

// authorityScore rewards validated, well-attributed content: base 0.5,
// +0.3 validated, +0.1 non-trivial source, +0.1 named author, +0.1
// dated historical period, clamped to 1.
func authorityScore(item *domain.ContentItem) float64 {
	score := 0.5
	if item.Validated {
		score += 0.3
	}
	if strings.TrimSpace(item.Source) != "" {
		score += 0.1
	}
	if strings.TrimSpace(item.Author) != "" {
		score += 0.1
	}
	if strings.TrimSpace(item.Period) != "" {
		score += 0.1
	}
	return min(score, 1.0)
}

// recencyScore decays piecewise with content age.
func recencyScore(updatedAt time.Time, now time.Time) float64 {
	if updatedAt.IsZero() {
		return 0.1
	}

	age := now.Sub(updatedAt)
	switch {
	case age < 24*time.Hour:
		return 1.0
	case age < 7*24*time.Hour:
		return 0.8
	case age < 30*24*time.Hour:
		return 0.6
	case age < 90*24*time.Hour:
		return 0.4
	case age < 365*24*time.Hour:
		return 0.2
	default:
		return 0.1
	}
}

// preferenceScore derives a user-preference signal from the profile:
// 0.5 default, boosted by direct content affinity and preferred
// culture/type matches, clamped to 1.
func preferenceScore(profile *driven.UserProfile, item *domain.ContentItem) float64 {
	if profile == nil {
		return 0.5
	}

	score := 0.5
	if affinity, ok := profile.ContentAffinity[item.ID]; ok {
		score += 0.3 * affinity
	}
	if overlapFraction(item.CulturalTags, profile.PreferredCultures) > 0 {
		score += 0.1
	}
	for _, ct := range profile.PreferredContentTypes {
		if ct == item.Type {
			score += 0.1
			break
		}
	}
	return min(score, 1.0)
}

// averageDocLength computes the mean token count over a candidate
// set, the document-length baseline for the keyword feature.
func averageDocLength(candidates []domain.Candidate) float64 {
	if len(candidates) == 0 {
		return 0
	}
	var total int
	for i := range candidates {
		total += len(contentTokens(&candidates[i].Item))
	}
	return float64(total) / float64(len(candidates))
}
