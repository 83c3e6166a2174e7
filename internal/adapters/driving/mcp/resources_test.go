package mcp

import (
	"context"
	"encoding/json"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindwell-labs/sanara/internal/core/domain"
)

func readRequest(uri string) *sdkmcp.ReadResourceRequest {
	return &sdkmcp.ReadResourceRequest{
		Params: &sdkmcp.ReadResourceParams{URI: uri},
	}
}

func TestServer_handleContentResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns content item as JSON", func(t *testing.T) {
		store := &mockContentStore{
			item: &domain.ContentItem{
				ID:                "c-1",
				Type:              domain.ContentTypeProverb,
				Title:             "Falling Seven Times",
				Body:              "Fall seven times, stand up eight.",
				CulturalTags:      []string{"japanese"},
				TherapeuticThemes: []string{"resilience"},
				Source:            "folk tradition",
				Validated:         true,
			},
		}
		ports := &Ports{Search: &mockSearchService{}, Content: store}
		server, err := NewServer(ports)
		require.NoError(t, err)

		result, err := server.handleContentResource(ctx, readRequest("sanara://content/c-1"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "sanara://content/c-1", result.Contents[0].URI)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)

		var got contentResource
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &got))
		assert.Equal(t, "c-1", got.ID)
		assert.Equal(t, "proverb", got.Type)
		assert.Equal(t, "Falling Seven Times", got.Title)
		assert.Equal(t, []string{"japanese"}, got.CulturalTags)
		assert.True(t, got.Validated)
	})

	t.Run("unknown content is resource not found", func(t *testing.T) {
		store := &mockContentStore{err: domain.ErrNotFound}
		ports := &Ports{Search: &mockSearchService{}, Content: store}
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, err = server.handleContentResource(ctx, readRequest("sanara://content/missing"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "sanara://content/missing")
	})

	t.Run("nil content port is resource not found", func(t *testing.T) {
		ports := &Ports{Search: &mockSearchService{}}
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, err = server.handleContentResource(ctx, readRequest("sanara://content/c-1"))

		require.Error(t, err)
	})

	t.Run("rejects malformed URI", func(t *testing.T) {
		ports := &Ports{Search: &mockSearchService{}, Content: &mockContentStore{}}
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, err = server.handleContentResource(ctx, readRequest("sanara://other/c-1"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid content URI")
	})
}
