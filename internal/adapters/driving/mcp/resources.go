package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mindwell-labs/sanara/internal/core/domain"
)

// uriScheme is the custom URI scheme for Sanara resources.
const uriScheme = "sanara://"

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Template for individual content items.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "content/{contentId}",
		Name:        "content-item",
		Description: "A single therapeutic content item with its cultural tags and metadata",
		MIMEType:    "application/json",
	}, s.handleContentResource)
}

// contentResource is the JSON shape of the content item resource.
type contentResource struct {
	ID                string   `json:"id"`
	Type              string   `json:"type"`
	Title             string   `json:"title"`
	Body              string   `json:"body"`
	CulturalTags      []string `json:"cultural_tags,omitempty"`
	TherapeuticThemes []string `json:"therapeutic_themes,omitempty"`
	TargetIssues      []string `json:"target_issues,omitempty"`
	Source            string   `json:"source,omitempty"`
	Author            string   `json:"author,omitempty"`
	Period            string   `json:"period,omitempty"`
	Validated         bool     `json:"validated"`
}

// handleContentResource returns one content item as JSON.
func (s *Server) handleContentResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	contentID := strings.TrimPrefix(req.Params.URI, uriScheme+"content/")
	if contentID == "" || contentID == req.Params.URI {
		return nil, fmt.Errorf("invalid content URI: %s", req.Params.URI)
	}

	if s.ports.Content == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	item, err := s.ports.Content.Get(ctx, contentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, mcp.ResourceNotFoundError(req.Params.URI)
		}
		return nil, fmt.Errorf("reading content %s: %w", contentID, err)
	}

	data, err := json.MarshalIndent(contentResource{
		ID:                item.ID,
		Type:              string(item.Type),
		Title:             item.Title,
		Body:              item.Body,
		CulturalTags:      item.CulturalTags,
		TherapeuticThemes: item.TherapeuticThemes,
		TargetIssues:      item.TargetIssues,
		Source:            item.Source,
		Author:            item.Author,
		Period:            item.Period,
		Validated:         item.Validated,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling content %s: %w", contentID, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
