package memory

import (
	"context"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/mindwell-labs/sanara/internal/core/domain"
	"github.com/mindwell-labs/sanara/internal/core/ports/driven"
)

// Ensure ContentStore implements the interface.
var _ driven.ContentStore = (*ContentStore)(nil)

// ContentStore is an in-memory implementation of driven.ContentStore.
// It backs tests and small single-process deployments; production uses
// the sqlite store.
type ContentStore struct {
	mu    sync.RWMutex
	items map[string]domain.ContentItem
}

// NewContentStore creates a new in-memory content store.
func NewContentStore() *ContentStore {
	return &ContentStore{
		items: make(map[string]domain.ContentItem),
	}
}

// Save stores or updates a content item. Not part of the driven port;
// the core never writes content.
func (s *ContentStore) Save(_ context.Context, item *domain.ContentItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[item.ID] = *item
	return nil
}

// Delete removes a content item.
func (s *ContentStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, id)
	return nil
}

// Get retrieves a content item by ID.
func (s *ContentStore) Get(_ context.Context, id string) (*domain.ContentItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &item, nil
}

// FindByTags returns items whose cultural tags, therapeutic themes, or
// target issues intersect the given tags. Items matching more tags
// rank earlier.
func (s *ContentStore) FindByTags(_ context.Context, tags []string, limit int) ([]domain.ContentItem, error) {
	wanted := make(map[string]bool, len(tags))
	for _, t := range tags {
		wanted[strings.ToLower(t)] = true
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	type scored struct {
		item    domain.ContentItem
		matches int
	}
	var hits []scored
	for _, item := range s.items {
		var matches int
		for _, tag := range itemTags(&item) {
			if wanted[strings.ToLower(tag)] {
				matches++
			}
		}
		if matches > 0 {
			hits = append(hits, scored{item: item, matches: matches})
		}
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].matches != hits[j].matches {
			return hits[i].matches > hits[j].matches
		}
		return hits[i].item.ID < hits[j].item.ID
	})

	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	items := make([]domain.ContentItem, 0, len(hits))
	for _, h := range hits {
		items = append(items, h.item)
	}
	return items, nil
}

// FindByFullText returns items whose title or body contains query
// tokens, items with more token hits first.
func (s *ContentStore) FindByFullText(_ context.Context, query string, limit int) ([]domain.ContentItem, error) {
	tokens := strings.Fields(strings.ToLower(query))
	if len(tokens) == 0 {
		return nil, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	type scored struct {
		item domain.ContentItem
		hits int
	}
	var matched []scored
	for _, item := range s.items {
		text := strings.ToLower(item.Title + " " + item.Body)
		var hits int
		for _, tok := range tokens {
			if strings.Contains(text, tok) {
				hits++
			}
		}
		if hits > 0 {
			matched = append(matched, scored{item: item, hits: hits})
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].hits != matched[j].hits {
			return matched[i].hits > matched[j].hits
		}
		return matched[i].item.ID < matched[j].item.ID
	})

	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	items := make([]domain.ContentItem, 0, len(matched))
	for _, m := range matched {
		items = append(items, m.item)
	}
	return items, nil
}

// FindByEmbedding scans stored embeddings and returns cosine matches
// meeting the threshold, most similar first.
func (s *ContentStore) FindByEmbedding(_ context.Context, vector []float32, threshold float64, limit int) ([]driven.EmbeddingHit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var hits []driven.EmbeddingHit
	for _, item := range s.items {
		if len(item.Embedding) == 0 {
			continue
		}
		sim := cosineSimilarity(vector, item.Embedding)
		if sim >= threshold {
			hits = append(hits, driven.EmbeddingHit{Item: item, Similarity: sim})
		}
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Similarity != hits[j].Similarity {
			return hits[i].Similarity > hits[j].Similarity
		}
		return hits[i].Item.ID < hits[j].Item.ID
	})

	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}

// itemTags is the union of an item's taggable fields.
func itemTags(item *domain.ContentItem) []string {
	tags := make([]string, 0, len(item.CulturalTags)+len(item.TherapeuticThemes)+len(item.TargetIssues))
	tags = append(tags, item.CulturalTags...)
	tags = append(tags, item.TherapeuticThemes...)
	tags = append(tags, item.TargetIssues...)
	return tags
}

// cosineSimilarity computes the cosine similarity between two vectors,
// 0 for mismatched dimensions.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
