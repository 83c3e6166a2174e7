package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmbeddingService_Defaults(t *testing.T) {
	s := NewEmbeddingService(Config{})

	assert.Equal(t, DefaultBaseURL, s.baseURL)
	assert.Equal(t, DefaultModel, s.ModelName())
	assert.Equal(t, DefaultDimensions, s.Dimensions())
}

func TestEmbed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/embeddings", r.URL.Path)

		var req embedRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "nomic-embed-text", req.Model)
		assert.Equal(t, "calm breathing", req.Prompt)

		json.NewEncoder(w).Encode(embedResponse{Embedding: []float64{0.1, 0.2, 0.3}})
	}))
	defer server.Close()

	s := NewEmbeddingService(Config{BaseURL: server.URL})

	vec, err := s.Embed(context.Background(), "calm breathing")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, vec)
}

func TestEmbed_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer server.Close()

	s := NewEmbeddingService(Config{BaseURL: server.URL})

	_, err := s.Embed(context.Background(), "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}

func TestEmbedBatch(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		json.NewEncoder(w).Encode(embedResponse{Embedding: []float64{float64(calls)}})
	}))
	defer server.Close()

	s := NewEmbeddingService(Config{BaseURL: server.URL})

	vecs, err := s.EmbedBatch(context.Background(), []string{"a", "b"})
	require.NoError(t, err)
	require.Len(t, vecs, 2)
	assert.Equal(t, []float32{1}, vecs[0])
	assert.Equal(t, []float32{2}, vecs[1])
}

func TestPing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/tags", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	s := NewEmbeddingService(Config{BaseURL: server.URL})
	assert.NoError(t, s.Ping(context.Background()))
}

func TestPing_Unreachable(t *testing.T) {
	s := NewEmbeddingService(Config{BaseURL: "http://127.0.0.1:1"})
	assert.Error(t, s.Ping(context.Background()))
}
