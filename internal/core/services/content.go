package services

import (
	"context"
	"fmt"

	"github.com/mindwell-labs/sanara/internal/core/domain"
	"github.com/mindwell-labs/sanara/internal/core/ports/driven"
	"github.com/mindwell-labs/sanara/internal/core/ports/driving"
	"github.com/mindwell-labs/sanara/internal/logger"
)

// ContentManager publishes content into the corpus: it embeds items
// that arrive without a vector, writes them to the store, mirrors the
// vector into the index, and invalidates cached results that reference
// them. The embedder, vector index, and search service are optional
// collaborators.
type ContentManager struct {
	writer   driven.ContentWriter
	embedder driven.EmbeddingService
	vectors  driven.VectorIndex
	search   driving.SearchService
}

// NewContentManager creates a content manager. embedder, vectors, and
// search may be nil.
func NewContentManager(writer driven.ContentWriter, embedder driven.EmbeddingService, vectors driven.VectorIndex, search driving.SearchService) *ContentManager {
	return &ContentManager{
		writer:   writer,
		embedder: embedder,
		vectors:  vectors,
		search:   search,
	}
}

// Load publishes the given items and returns how many were stored.
// Items failing validation abort the load before anything is written.
func (m *ContentManager) Load(ctx context.Context, items []domain.ContentItem) (int, error) {
	for i := range items {
		if err := validateItem(&items[i]); err != nil {
			return 0, fmt.Errorf("item %d (%s): %w", i, items[i].ID, err)
		}
	}

	stored := 0
	changed := make([]string, 0, len(items))
	for i := range items {
		item := &items[i]

		if len(item.Embedding) == 0 && m.embedder != nil {
			vec, err := m.embedder.Embed(ctx, item.Title+"\n"+item.Body)
			if err != nil {
				logger.Warn("embedding %s failed, storing without vector: %v", item.ID, err)
			} else {
				item.Embedding = vec
			}
		}

		if err := m.writer.Save(ctx, item); err != nil {
			return stored, fmt.Errorf("saving %s: %w", item.ID, err)
		}
		stored++
		changed = append(changed, item.ID)

		if m.vectors != nil && len(item.Embedding) > 0 {
			if err := m.vectors.Add(ctx, item.ID, item.Embedding); err != nil {
				logger.Warn("indexing vector for %s failed: %v", item.ID, err)
			}
		}
	}

	m.invalidate(ctx, changed)
	return stored, nil
}

// Remove deletes the given items from the corpus and the vector index.
func (m *ContentManager) Remove(ctx context.Context, ids []string) error {
	for _, id := range ids {
		if err := m.writer.Delete(ctx, id); err != nil {
			return fmt.Errorf("deleting %s: %w", id, err)
		}
		if m.vectors != nil {
			if err := m.vectors.Delete(ctx, id); err != nil {
				logger.Warn("removing vector for %s failed: %v", id, err)
			}
		}
	}

	m.invalidate(ctx, ids)
	return nil
}

func (m *ContentManager) invalidate(ctx context.Context, ids []string) {
	if m.search == nil || len(ids) == 0 {
		return
	}
	m.search.InvalidateContent(ctx, ids)
}

func validateItem(item *domain.ContentItem) error {
	if item.ID == "" {
		return fmt.Errorf("%w: missing id", domain.ErrInvalidInput)
	}
	if !item.Type.Valid() {
		return fmt.Errorf("%w: unknown content type %q", domain.ErrInvalidInput, item.Type)
	}
	if item.Title == "" && item.Body == "" {
		return fmt.Errorf("%w: empty content", domain.ErrInvalidInput)
	}
	if item.BiasScore < 0 || item.BiasScore > 1 {
		return fmt.Errorf("%w: bias score %v outside [0,1]", domain.ErrInvalidInput, item.BiasScore)
	}
	return nil
}
