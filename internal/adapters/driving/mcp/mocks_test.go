package mcp

import (
	"context"

	"github.com/mindwell-labs/sanara/internal/core/domain"
	"github.com/mindwell-labs/sanara/internal/core/ports/driven"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	response    *domain.SearchResponse
	err         error
	gotQuery    string
	gotOpts     domain.SearchOptions
	invalidated [][]string
}

func (m *mockSearchService) Search(
	_ context.Context,
	query string,
	opts domain.SearchOptions,
) (*domain.SearchResponse, error) {
	m.gotQuery = query
	m.gotOpts = opts
	if m.err != nil {
		return nil, m.err
	}
	if m.response != nil {
		return m.response, nil
	}
	return &domain.SearchResponse{Query: query, Status: domain.StatusEmpty}, nil
}

func (m *mockSearchService) InvalidateContent(_ context.Context, contentIDs []string) {
	m.invalidated = append(m.invalidated, contentIDs)
}

// mockContentStore is a mock implementation of driven.ContentStore.
type mockContentStore struct {
	item *domain.ContentItem
	err  error
}

func (m *mockContentStore) Get(_ context.Context, _ string) (*domain.ContentItem, error) {
	return m.item, m.err
}

func (m *mockContentStore) FindByTags(_ context.Context, _ []string, _ int) ([]domain.ContentItem, error) {
	return nil, m.err
}

func (m *mockContentStore) FindByFullText(_ context.Context, _ string, _ int) ([]domain.ContentItem, error) {
	return nil, m.err
}

func (m *mockContentStore) FindByEmbedding(
	_ context.Context,
	_ []float32,
	_ float64,
	_ int,
) ([]driven.EmbeddingHit, error) {
	return nil, m.err
}
