package services

import (
	"context"
	"sync"
	"time"

	"github.com/mindwell-labs/sanara/internal/core/domain"
	"github.com/mindwell-labs/sanara/internal/core/ports/driven"
)

// --- Shared mock implementations ---

// mockDictionary implements driven.Dictionary with a small fixed
// vocabulary for tests.
type mockDictionary struct{}

func (mockDictionary) TherapeuticTerms() []string {
	return []string{
		"anxiety", "stress", "meditation", "depression", "trauma",
		"healing", "grief", "mindfulness", "breathing", "relief",
	}
}

func (mockDictionary) CulturalTerms() []string {
	return []string{"buddhist", "taoist", "yoruba", "celtic", "sufi"}
}

func (mockDictionary) Stopwords() map[string]bool {
	return map[string]bool{
		"a": true, "an": true, "the": true, "for": true, "and": true,
		"me": true, "my": true, "of": true, "to": true, "with": true,
		"how": true, "do": true, "i": true, "deal": true,
	}
}

func (mockDictionary) Synonyms(term string) []string {
	general := map[string][]string{
		"stress": {"tension"},
		"calm":   {"peaceful"},
	}
	return general[term]
}

func (mockDictionary) TherapeuticSynonyms(term string) []string {
	therapeutic := map[string][]string{
		"anxieti": {"worry", "unease"},
		"anxiety": {"worry", "unease"},
		"medit":   {"contemplation"},
	}
	return therapeutic[term]
}

func (mockDictionary) CulturalSynonyms(culture, term string) []string {
	if culture == "Buddhist" && (term == "medit" || term == "meditation") {
		return []string{"vipassana", "samatha"}
	}
	return nil
}

// mockEmbedder implements driven.EmbeddingService.
type mockEmbedder struct {
	embedding []float32
	embedErr  error
}

func (m *mockEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	return m.embedding, nil
}

func (m *mockEmbedder) Dimensions() int { return len(m.embedding) }

func (m *mockEmbedder) ModelName() string { return "mock-embed" }

func (m *mockEmbedder) Ping(_ context.Context) error { return nil }

func (m *mockEmbedder) Close() error { return nil }

// mockContentStore implements driven.ContentStore over a fixed item
// slice.
type mockContentStore struct {
	items       []domain.ContentItem
	tagsErr     error
	fullTextErr error
	embedErr    error
	getErr      error
}

func (m *mockContentStore) Get(_ context.Context, id string) (*domain.ContentItem, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	for i := range m.items {
		if m.items[i].ID == id {
			return &m.items[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockContentStore) FindByTags(_ context.Context, tags []string, limit int) ([]domain.ContentItem, error) {
	if m.tagsErr != nil {
		return nil, m.tagsErr
	}
	wanted := make(map[string]bool)
	for _, t := range tags {
		wanted[t] = true
	}
	var out []domain.ContentItem
	for _, item := range m.items {
		all := append(append(append([]string{}, item.CulturalTags...), item.TherapeuticThemes...), item.TargetIssues...)
		for _, tag := range all {
			if wanted[tag] {
				out = append(out, item)
				break
			}
		}
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (m *mockContentStore) FindByFullText(_ context.Context, _ string, limit int) ([]domain.ContentItem, error) {
	if m.fullTextErr != nil {
		return nil, m.fullTextErr
	}
	if limit > len(m.items) {
		limit = len(m.items)
	}
	return m.items[:limit], nil
}

func (m *mockContentStore) FindByEmbedding(_ context.Context, _ []float32, _ float64, limit int) ([]driven.EmbeddingHit, error) {
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	var hits []driven.EmbeddingHit
	for i, item := range m.items {
		if len(hits) >= limit {
			break
		}
		hits = append(hits, driven.EmbeddingHit{
			Item:       item,
			Similarity: 0.9 - float64(i)*0.05,
		})
	}
	return hits, nil
}

// mockPersonalization implements driven.PersonalizationProvider.
type mockPersonalization struct {
	mu       sync.Mutex
	profile  *driven.UserProfile
	getErr   error
	recorded int
}

func (m *mockPersonalization) GetProfile(_ context.Context, _ string) (*driven.UserProfile, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if m.profile == nil {
		return nil, domain.ErrProfileUnavailable
	}
	return m.profile, nil
}

func (m *mockPersonalization) RecordOutcome(_ context.Context, _ string, _ *domain.ProcessedQuery, _ []domain.RankingResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recorded++
	return nil
}

func (m *mockPersonalization) recordedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.recorded
}

// mockCacheTier implements driven.CacheTier over a plain map.
type mockCacheTier struct {
	mu      sync.Mutex
	entries map[string]*domain.CacheEntry
	getErr  bool
	putErr  error
}

func newMockCacheTier() *mockCacheTier {
	return &mockCacheTier{entries: make(map[string]*domain.CacheEntry)}
}

func (m *mockCacheTier) Get(_ context.Context, key string) (*domain.CacheEntry, bool) {
	if m.getErr {
		return nil, false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.entries[key]
	if !ok || entry.Expired(timeNow()) {
		return nil, false
	}
	return entry, true
}

func (m *mockCacheTier) Put(_ context.Context, entry *domain.CacheEntry, _ time.Duration) error {
	if m.putErr != nil {
		return m.putErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[entry.Key] = entry
	return nil
}

func (m *mockCacheTier) Invalidate(_ context.Context, contentIDs []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, entry := range m.entries {
		for _, id := range contentIDs {
			if entry.References(id) {
				delete(m.entries, key)
				break
			}
		}
	}
	return nil
}

func (m *mockCacheTier) Close() error { return nil }

func (m *mockCacheTier) size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

func timeNow() time.Time { return time.Now() }

// mockVectorIndex implements driven.VectorIndex.
type mockVectorIndex struct {
	hits      []driven.VectorHit
	searchErr error
	slow      time.Duration
	added     []string
	removed   []string
}

func (m *mockVectorIndex) Add(_ context.Context, contentID string, _ []float32) error {
	m.added = append(m.added, contentID)
	return nil
}

func (m *mockVectorIndex) Delete(_ context.Context, contentID string) error {
	m.removed = append(m.removed, contentID)
	return nil
}

func (m *mockVectorIndex) Search(ctx context.Context, _ []float32, _ int) ([]driven.VectorHit, error) {
	if m.slow > 0 {
		select {
		case <-time.After(m.slow):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	return m.hits, nil
}

func (m *mockVectorIndex) Close() error { return nil }

// mockRankingModel implements driven.RankingModel.
type mockRankingModel struct {
	score float64
	err   error
	ready bool
}

func (m *mockRankingModel) Predict(_ context.Context, _ string, _ domain.RankingFactors) (float64, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.score, nil
}

func (m *mockRankingModel) Ready() bool { return m.ready }

// mockAnalytics implements driven.AnalyticsSink.
type mockAnalytics struct {
	mu      sync.Mutex
	records []driven.SearchRecord
	err     error
}

func (m *mockAnalytics) Record(_ context.Context, rec driven.SearchRecord) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, rec)
	return nil
}

func (m *mockAnalytics) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}

// mockContentWriter implements driven.ContentWriter.
type mockContentWriter struct {
	saved   map[string]domain.ContentItem
	deleted []string
	saveErr error
}

func newMockContentWriter() *mockContentWriter {
	return &mockContentWriter{saved: make(map[string]domain.ContentItem)}
}

func (m *mockContentWriter) Save(_ context.Context, item *domain.ContentItem) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved[item.ID] = *item
	return nil
}

func (m *mockContentWriter) Delete(_ context.Context, id string) error {
	m.deleted = append(m.deleted, id)
	return nil
}

// mockSearchService implements driving.SearchService for invalidation
// tracking.
type mockSearchService struct {
	invalidated [][]string
}

func (m *mockSearchService) Search(_ context.Context, _ string, _ domain.SearchOptions) (*domain.SearchResponse, error) {
	return &domain.SearchResponse{}, nil
}

func (m *mockSearchService) InvalidateContent(_ context.Context, contentIDs []string) {
	m.invalidated = append(m.invalidated, contentIDs)
}
