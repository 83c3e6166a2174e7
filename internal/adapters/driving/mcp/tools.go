package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mindwell-labs/sanara/internal/core/domain"
)

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query              string   `json:"query" jsonschema:"the search query describing the issue or theme"`
	Limit              int      `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 10)"`
	CulturalContext    []string `json:"cultural_context,omitempty" jsonschema:"cultural traditions to prefer (e.g. buddhist, taoist, yoruba)"`
	TherapeuticContext []string `json:"therapeutic_context,omitempty" jsonschema:"therapeutic themes to prefer (e.g. mindfulness, acceptance)"`
	Strategy           string   `json:"strategy,omitempty" jsonschema:"ranking strategy: hybrid, semantic, bm25, collaborative, or therapeutic (default hybrid)"`
	UserID             string   `json:"user_id,omitempty" jsonschema:"user identifier enabling personalized ranking"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Results       []SearchResultOutput `json:"results"`
	Count         int                  `json:"count"`
	Status        string               `json:"status"`
	EnhancedQuery string               `json:"enhanced_query,omitempty"`
}

// SearchResultOutput represents a single search result.
type SearchResultOutput struct {
	ContentID         string   `json:"content_id"`
	Type              string   `json:"type"`
	Title             string   `json:"title"`
	Body              string   `json:"body"`
	CulturalTags      []string `json:"cultural_tags,omitempty"`
	TherapeuticThemes []string `json:"therapeutic_themes,omitempty"`
	Score             float64  `json:"score"`
	Rank              int      `json:"rank"`
}

// InvalidateInput is the input schema for the invalidate_content tool.
type InvalidateInput struct {
	ContentIDs []string `json:"content_ids" jsonschema:"content item IDs whose cached results should be dropped"`
}

// InvalidateOutput is the output schema for the invalidate_content tool.
type InvalidateOutput struct {
	Invalidated int `json:"invalidated"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Search the culturally-tagged therapeutic content corpus",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "invalidate_content",
		Description: "Drop cached search results referencing the given content items",
	}, s.handleInvalidate)
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	opts := domain.SearchOptions{
		MaxResults:             input.Limit,
		CulturalContext:        input.CulturalContext,
		TherapeuticContext:     input.TherapeuticContext,
		Strategy:               domain.RankingStrategy(input.Strategy),
		UserID:                 input.UserID,
		IncludePersonalization: input.UserID != "",
		EnableCaching:          true,
		EnableExpansion:        true,
		EnableTypoCorrection:   true,
	}

	resp, err := s.ports.Search.Search(ctx, input.Query, opts)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results:       make([]SearchResultOutput, len(resp.Results)),
		Count:         len(resp.Results),
		Status:        string(resp.Status),
		EnhancedQuery: resp.EnhancedQuery,
	}

	for i := range resp.Results {
		res := &resp.Results[i]
		output.Results[i] = SearchResultOutput{
			ContentID:         res.Item.ID,
			Type:              string(res.Item.Type),
			Title:             res.Item.Title,
			Body:              res.Item.Body,
			CulturalTags:      res.Item.CulturalTags,
			TherapeuticThemes: res.Item.TherapeuticThemes,
			Score:             res.Score,
			Rank:              res.Rank,
		}
	}

	return nil, output, nil
}

// handleInvalidate handles the invalidate_content tool invocation.
func (s *Server) handleInvalidate(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input InvalidateInput,
) (*mcp.CallToolResult, InvalidateOutput, error) {
	s.ports.Search.InvalidateContent(ctx, input.ContentIDs)
	return nil, InvalidateOutput{Invalidated: len(input.ContentIDs)}, nil
}
