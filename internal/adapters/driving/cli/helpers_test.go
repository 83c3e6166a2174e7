package cli

import (
	"context"
	"testing"

	"github.com/mindwell-labs/sanara/internal/adapters/driven/storage/memory"
	"github.com/mindwell-labs/sanara/internal/core/domain"
	"github.com/mindwell-labs/sanara/internal/core/services"
)

// stubSearchService is a canned driving.SearchService for command
// tests.
type stubSearchService struct {
	response    *domain.SearchResponse
	err         error
	gotQuery    string
	gotOpts     domain.SearchOptions
	invalidated [][]string
}

func (s *stubSearchService) Search(
	_ context.Context,
	query string,
	opts domain.SearchOptions,
) (*domain.SearchResponse, error) {
	s.gotQuery = query
	s.gotOpts = opts
	if s.err != nil {
		return nil, s.err
	}
	if s.response != nil {
		return s.response, nil
	}
	return &domain.SearchResponse{Query: query, Status: domain.StatusEmpty}, nil
}

func (s *stubSearchService) InvalidateContent(_ context.Context, contentIDs []string) {
	s.invalidated = append(s.invalidated, contentIDs)
}

// sampleSearchResponse returns a response with one ranked practice.
func sampleSearchResponse() *domain.SearchResponse {
	return &domain.SearchResponse{
		SearchID: "s-1",
		Query:    "anxiety",
		Status:   domain.StatusOK,
		Results: []domain.RankingResult{
			{
				Item: domain.ContentItem{
					ID:           "c-1",
					Type:         domain.ContentTypePractice,
					Title:        "Breath Counting",
					Body:         "Count each exhale from one to ten.",
					CulturalTags: []string{"zen"},
				},
				Score: 0.91,
				Rank:  1,
			},
		},
	}
}

// setupTestServices swaps the package-level services for in-memory
// test doubles and restores them on cleanup.
func setupTestServices(t *testing.T) *stubSearchService {
	t.Helper()

	origSearch := searchService
	origManager := contentManager
	origStore := contentStore
	origSettings := settings

	stub := &stubSearchService{response: sampleSearchResponse()}
	mem := memory.NewContentStore()

	searchService = stub
	contentStore = mem
	contentManager = services.NewContentManager(mem, nil, nil, stub)

	t.Cleanup(func() {
		searchService = origSearch
		contentManager = origManager
		contentStore = origStore
		settings = origSettings
		rootCmd.SetArgs(nil)
	})

	return stub
}
