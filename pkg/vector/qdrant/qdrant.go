// Package qdrant provides a Qdrant-backed vector index over gRPC. Every index
// lives in its own cosine collection, deleted when the index is closed.
package qdrant

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
	"go.uber.org/zap"

	"github.com/papercomputeco/jigyasa/pkg/vector"
)

const (
	// DefaultHost is the default Qdrant host.
	DefaultHost = "localhost"

	// DefaultPort is the default Qdrant gRPC port.
	DefaultPort = 6334

	// CollectionPrefix prefixes every per-request collection name.
	CollectionPrefix = "jigyasa-"

	teardownTimeout = 10 * time.Second
)

// Config holds configuration for the Qdrant store.
type Config struct {
	Host   string
	Port   int
	APIKey string
	UseTLS bool
}

// Store holds the gRPC client shared by all indexes.
type Store struct {
	client *qdrant.Client
	logger *zap.Logger
}

// NewStore connects a Qdrant client.
func NewStore(c Config, logger *zap.Logger) (*Store, error) {
	host := c.Host
	if host == "" {
		host = DefaultHost
	}
	port := c.Port
	if port == 0 {
		port = DefaultPort
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:                   host,
		Port:                   port,
		APIKey:                 c.APIKey,
		UseTLS:                 c.UseTLS,
		SkipCompatibilityCheck: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: qdrant: %v", vector.ErrConnection, err)
	}

	logger.Info("using qdrant vector store",
		zap.String("host", host),
		zap.Int("port", port),
	)

	return &Store{client: client, logger: logger}, nil
}

// NewIndex returns an index bound to a fresh collection name. The collection
// is created by the first Add, once the dimensionality is known. It
// satisfies vector.Factory.
func (s *Store) NewIndex(ctx context.Context) (vector.Index, error) {
	return &Index{
		store:       s,
		name:        CollectionPrefix + uuid.NewString(),
		teardownCtx: context.WithoutCancel(ctx),
	}, nil
}

// Close closes the gRPC client.
func (s *Store) Close() error {
	return s.client.Close()
}

// Index implements vector.Index over one Qdrant collection.
type Index struct {
	store       *Store
	name        string
	teardownCtx context.Context

	mu      sync.Mutex
	dims    int
	count   int
	created bool
	closed  bool
}

// Name returns the collection name.
func (i *Index) Name() string {
	return i.name
}

// Add stores documents with their embeddings.
func (i *Index) Add(ctx context.Context, docs []vector.Document) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.closed {
		return vector.ErrClosed
	}
	if len(docs) == 0 {
		return nil
	}

	dims, err := vector.CheckDimensions(i.dims, docs)
	if err != nil {
		return err
	}

	if !i.created {
		err := i.store.client.CreateCollection(ctx, &qdrant.CreateCollection{
			CollectionName: i.name,
			VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
				Size:     uint64(dims),
				Distance: qdrant.Distance_Cosine,
			}),
		})
		if err != nil {
			return fmt.Errorf("%w: creating collection %q: %v", vector.ErrConnection, i.name, err)
		}
		i.created = true
		i.dims = dims
	}

	points := make([]*qdrant.PointStruct, len(docs))
	for n, doc := range docs {
		payload, err := qdrant.TryValueMap(map[string]any{
			"doc_id": doc.ID,
			"seq":    doc.Seq,
			"text":   doc.Text,
		})
		if err != nil {
			return fmt.Errorf("building payload for doc %s: %w", doc.ID, err)
		}
		points[n] = &qdrant.PointStruct{
			Id:      qdrant.NewIDNum(uint64(i.count + n)),
			Vectors: qdrant.NewVectors(doc.Embedding...),
			Payload: payload,
		}
	}

	if _, err := i.store.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: i.name,
		Wait:           qdrant.PtrOf(true),
		Points:         points,
	}); err != nil {
		return fmt.Errorf("upserting points: %w", err)
	}
	i.count += len(docs)

	i.store.logger.Debug("added documents to qdrant",
		zap.String("collection", i.name),
		zap.Int("count", len(docs)),
	)
	return nil
}

// Query finds the k most similar documents to the given embedding.
func (i *Index) Query(ctx context.Context, embedding []float32, k int) ([]vector.QueryResult, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.closed {
		return nil, vector.ErrClosed
	}
	if vector.CapK(k, i.count) == 0 {
		return []vector.QueryResult{}, nil
	}
	if len(embedding) != i.dims {
		return nil, vector.ErrDimensionMismatch
	}

	points, err := i.store.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: i.name,
		Query:          qdrant.NewQuery(embedding...),
		Limit:          qdrant.PtrOf(uint64(i.count)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("querying points: %w", err)
	}

	results := make([]vector.QueryResult, 0, len(points))
	for _, p := range points {
		payload := p.GetPayload()
		results = append(results, vector.QueryResult{
			Document: vector.Document{
				ID:   payload["doc_id"].GetStringValue(),
				Seq:  int(payload["seq"].GetIntegerValue()),
				Text: payload["text"].GetStringValue(),
			},
			Score: p.GetScore(),
		})
	}

	return vector.Rank(results, k), nil
}

// Close deletes the collection if one was created.
func (i *Index) Close() error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.closed {
		return nil
	}
	i.closed = true

	if !i.created {
		return nil
	}

	ctx, cancel := context.WithTimeout(i.teardownCtx, teardownTimeout)
	defer cancel()

	if err := i.store.client.DeleteCollection(ctx, i.name); err != nil {
		return fmt.Errorf("deleting collection %q: %w", i.name, err)
	}
	return nil
}

var _ vector.Index = (*Index)(nil)
