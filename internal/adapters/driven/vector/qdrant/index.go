// Package qdrant provides a VectorIndex adapter backed by a Qdrant
// instance. Content IDs are mapped to deterministic point UUIDs and
// kept in the point payload, so the same content always lands on the
// same point.
package qdrant

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"

	"github.com/mindwell-labs/sanara/internal/core/ports/driven"
	"github.com/mindwell-labs/sanara/internal/logger"
)

// Default configuration values.
const (
	DefaultCollection = "sanara_content"
	DefaultGRPCPort   = 6334
)

const contentIDField = "content_id"

// Index is the Qdrant-backed vector index.
type Index struct {
	client     *qdrant.Client
	collection string
}

var _ driven.VectorIndex = (*Index)(nil)

// Config holds connection settings for the index.
type Config struct {
	// URL is the Qdrant HTTP URL (e.g. http://localhost:6333). The
	// gRPC port is derived as HTTP port + 1.
	URL string

	// APIKey authenticates against a secured instance, if set.
	APIKey string

	// Collection is the collection name (default: sanara_content).
	Collection string

	// Dimensions is the embedding vector size, used when the
	// collection has to be created.
	Dimensions int
}

// New connects to Qdrant and ensures the collection exists with a
// cosine-distance vector config.
func New(ctx context.Context, cfg Config) (*Index, error) {
	if cfg.Collection == "" {
		cfg.Collection = DefaultCollection
	}

	host, port, err := grpcEndpoint(cfg.URL)
	if err != nil {
		return nil, err
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("creating qdrant client: %w", err)
	}

	idx := &Index{client: client, collection: cfg.Collection}
	if err := idx.ensureCollection(ctx, cfg.Dimensions); err != nil {
		client.Close()
		return nil, err
	}
	return idx, nil
}

// Add inserts or updates the vector for a content ID.
func (x *Index) Add(ctx context.Context, contentID string, embedding []float32) error {
	point := &qdrant.PointStruct{
		Id:      qdrant.NewID(pointID(contentID)),
		Vectors: qdrant.NewVectors(embedding...),
		Payload: qdrant.NewValueMap(map[string]any{contentIDField: contentID}),
	}

	_, err := x.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: x.collection,
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return fmt.Errorf("upserting vector for %s: %w", contentID, err)
	}
	return nil
}

// Delete removes the vector for a content ID.
func (x *Index) Delete(ctx context.Context, contentID string) error {
	_, err := x.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: x.collection,
		Points:         qdrant.NewPointsSelector(qdrant.NewID(pointID(contentID))),
	})
	if err != nil {
		return fmt.Errorf("deleting vector for %s: %w", contentID, err)
	}
	return nil
}

// Search finds the k nearest neighbours to the query vector. Points
// without a content_id payload are skipped.
func (x *Index) Search(ctx context.Context, query []float32, k int) ([]driven.VectorHit, error) {
	if k <= 0 {
		return nil, nil
	}

	limit := uint64(k)
	scored, err := x.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: x.collection,
		Query:          qdrant.NewQuery(query...),
		Limit:          &limit,
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("querying vectors: %w", err)
	}

	hits := make([]driven.VectorHit, 0, len(scored))
	for _, point := range scored {
		contentID := payloadContentID(point.Payload)
		if contentID == "" {
			logger.Debug("qdrant point %v has no content id, skipping", point.Id)
			continue
		}
		hits = append(hits, driven.VectorHit{
			ContentID:  contentID,
			Similarity: float64(point.Score),
		})
	}
	return hits, nil
}

// Close closes the underlying gRPC connection.
func (x *Index) Close() error {
	return x.client.Close()
}

// ensureCollection creates the collection when missing.
func (x *Index) ensureCollection(ctx context.Context, dimensions int) error {
	exists, err := x.client.CollectionExists(ctx, x.collection)
	if err != nil {
		return fmt.Errorf("checking collection: %w", err)
	}
	if exists {
		return nil
	}

	logger.Debug("creating qdrant collection %s (dims=%d)", x.collection, dimensions)
	err = x.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: x.collection,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     uint64(dimensions),
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("creating collection: %w", err)
	}
	return nil
}

// pointID derives a stable UUID for a content ID. Qdrant point IDs
// must be UUIDs or integers, content IDs are free-form strings.
func pointID(contentID string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(contentID)).String()
}

// grpcEndpoint extracts host and gRPC port from an HTTP URL.
func grpcEndpoint(urlStr string) (string, int, error) {
	if urlStr == "" {
		return "localhost", DefaultGRPCPort, nil
	}

	parsed, err := url.Parse(urlStr)
	if err != nil {
		return "", 0, fmt.Errorf("invalid qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	if host == "" {
		host = "localhost"
	}

	port := DefaultGRPCPort
	if parsed.Port() != "" {
		if httpPort, err := strconv.Atoi(parsed.Port()); err == nil {
			// gRPC listens one above the HTTP port
			port = httpPort + 1
		}
	}
	return host, port, nil
}

// payloadContentID pulls the content id out of a point payload.
func payloadContentID(payload map[string]*qdrant.Value) string {
	v, ok := payload[contentIDField]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.Kind.(*qdrant.Value_StringValue); ok {
		return s.StringValue
	}
	return ""
}
