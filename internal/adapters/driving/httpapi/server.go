// Package httpapi exposes the search service over HTTP. It is a thin
// JSON layer: request DTOs map onto domain.SearchOptions and the
// response mirrors domain.SearchResponse.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mindwell-labs/sanara/internal/core/domain"
	"github.com/mindwell-labs/sanara/internal/core/ports/driving"
	"github.com/mindwell-labs/sanara/internal/logger"
)

// Server serves the HTTP API.
type Server struct {
	search  driving.SearchService
	handler http.Handler
}

// New creates the HTTP API server around a search service.
func New(search driving.SearchService) *Server {
	s := &Server{search: search}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Post("/search", s.handleSearch)
		r.Post("/invalidate", s.handleInvalidate)
	})

	s.handler = r
	return s
}

// Handler returns the underlying HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ListenAndServe runs the server until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// searchRequest is the POST /api/search payload.
type searchRequest struct {
	Query              string   `json:"query"`
	CulturalContext    []string `json:"cultural_context,omitempty"`
	TherapeuticContext []string `json:"therapeutic_context,omitempty"`
	MaxResults         int      `json:"max_results,omitempty"`
	Strategy           string   `json:"strategy,omitempty"`
	UserID             string   `json:"user_id,omitempty"`
	SessionID          string   `json:"session_id,omitempty"`
	Personalize        bool     `json:"personalize,omitempty"`
	NoCache            bool     `json:"no_cache,omitempty"`
	CorrectTypos       bool     `json:"correct_typos,omitempty"`
	ExpandQuery        bool     `json:"expand_query,omitempty"`
}

// searchResponse is the POST /api/search reply.
type searchResponse struct {
	SearchID         string             `json:"search_id"`
	Query            string             `json:"query"`
	EnhancedQuery    string             `json:"enhanced_query"`
	Status           string             `json:"status"`
	Strategy         string             `json:"strategy"`
	CacheHit         bool               `json:"cache_hit"`
	ProcessingTimeMs int64              `json:"processing_time_ms"`
	TyposCorrected   []typoCorrection   `json:"typos_corrected,omitempty"`
	Results          []searchResultItem `json:"results"`
}

type typoCorrection struct {
	Original  string `json:"original"`
	Corrected string `json:"corrected"`
}

type searchResultItem struct {
	ID                string             `json:"id"`
	Type              string             `json:"type"`
	Title             string             `json:"title"`
	Body              string             `json:"body"`
	CulturalTags      []string           `json:"cultural_tags,omitempty"`
	TherapeuticThemes []string           `json:"therapeutic_themes,omitempty"`
	Source            string             `json:"source,omitempty"`
	Rank              int                `json:"rank"`
	Score             float64            `json:"score"`
	Strategies        []string           `json:"strategies,omitempty"`
	Factors           map[string]float64 `json:"factors,omitempty"`
}

type invalidateRequest struct {
	ContentIDs []string `json:"content_ids"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	opts := domain.SearchOptions{
		CulturalContext:        req.CulturalContext,
		TherapeuticContext:     req.TherapeuticContext,
		MaxResults:             req.MaxResults,
		Strategy:               domain.RankingStrategy(req.Strategy),
		IncludePersonalization: req.Personalize,
		EnableCaching:          !req.NoCache,
		EnableTypoCorrection:   req.CorrectTypos,
		EnableExpansion:        req.ExpandQuery,
		UserID:                 req.UserID,
		SessionID:              req.SessionID,
	}

	resp, err := s.search.Search(r.Context(), req.Query, opts)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrInvalidInput) ||
			errors.Is(err, domain.ErrInvalidStrategy) ||
			errors.Is(err, domain.ErrInvalidOption) {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, toSearchResponse(resp))
}

func (s *Server) handleInvalidate(w http.ResponseWriter, r *http.Request) {
	var req invalidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	if len(req.ContentIDs) == 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "content_ids must not be empty"})
		return
	}

	s.search.InvalidateContent(r.Context(), req.ContentIDs)
	writeJSON(w, http.StatusOK, map[string]int{"invalidated": len(req.ContentIDs)})
}

func toSearchResponse(resp *domain.SearchResponse) searchResponse {
	out := searchResponse{
		SearchID:         resp.SearchID,
		Query:            resp.Query,
		EnhancedQuery:    resp.EnhancedQuery,
		Status:           string(resp.Status),
		Strategy:         string(resp.Strategy),
		CacheHit:         resp.CacheHit,
		ProcessingTimeMs: resp.ProcessingTime.Milliseconds(),
		Results:          make([]searchResultItem, 0, len(resp.Results)),
	}

	for _, typo := range resp.TyposCorrected {
		out.TyposCorrected = append(out.TyposCorrected, typoCorrection{
			Original:  typo.Original,
			Corrected: typo.Corrected,
		})
	}

	for _, res := range resp.Results {
		strategies := make([]string, 0, len(res.Strategies))
		for _, st := range res.Strategies {
			strategies = append(strategies, string(st))
		}
		out.Results = append(out.Results, searchResultItem{
			ID:                res.Item.ID,
			Type:              string(res.Item.Type),
			Title:             res.Item.Title,
			Body:              res.Item.Body,
			CulturalTags:      res.Item.CulturalTags,
			TherapeuticThemes: res.Item.TherapeuticThemes,
			Source:            res.Item.Source,
			Rank:              res.Rank,
			Score:             res.Score,
			Strategies:        strategies,
			Factors: map[string]float64{
				"semantic":          res.Factors.Semantic,
				"keyword":           res.Factors.Keyword,
				"cultural":          res.Factors.Cultural,
				"therapeutic":       res.Factors.Therapeutic,
				"personalization":   res.Factors.Personalization,
				"recency":           res.Factors.Recency,
				"popularity":        res.Factors.Popularity,
				"quality":           res.Factors.Quality,
				"bias_adjustment":   res.Factors.BiasAdjustment,
				"diversity_penalty": res.Factors.DiversityPenalty,
			},
		})
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Debug("writing response failed: %v", err)
	}
}
