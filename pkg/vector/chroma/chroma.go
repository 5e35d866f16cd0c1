// Package chroma provides a Chroma-backed vector index. Every index lives in
// its own collection, deleted when the index is closed.
package chroma

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/papercomputeco/jigyasa/pkg/vector"
)

const (
	// CollectionPrefix prefixes every per-request collection name.
	CollectionPrefix = "jigyasa-"

	teardownTimeout = 10 * time.Second
)

// Config holds configuration for the Chroma store.
type Config struct {
	// URL is the Chroma server URL (e.g., "http://localhost:8000").
	URL string
}

// Store creates per-request collections on a Chroma server.
type Store struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewStore creates a new Chroma store.
func NewStore(c Config, logger *zap.Logger) (*Store, error) {
	if c.URL == "" {
		return nil, fmt.Errorf("chroma URL is required")
	}

	return &Store{
		baseURL: strings.TrimRight(c.URL, "/"),
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		logger: logger,
	}, nil
}

func (s *Store) collectionsURL() string {
	return s.baseURL + "/api/v2/tenants/default_tenant/databases/default_database/collections"
}

// NewIndex creates a uniquely named collection and returns an index over it.
// It satisfies vector.Factory.
func (s *Store) NewIndex(ctx context.Context) (vector.Index, error) {
	name := CollectionPrefix + uuid.NewString()

	jsonBody, err := json.Marshal(chromaCreateRequest{
		Name:     name,
		Metadata: map[string]any{"hnsw:space": "cosine"},
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling create request: %w", err)
	}

	var collection chromaCollection
	if err := s.do(ctx, http.MethodPost, s.collectionsURL(), jsonBody, &collection); err != nil {
		return nil, fmt.Errorf("%w: creating collection %q: %v", vector.ErrConnection, name, err)
	}

	s.logger.Debug("created chroma collection",
		zap.String("collection", name),
		zap.String("collection_id", collection.ID),
	)

	return &Index{
		store:        s,
		name:         name,
		collectionID: collection.ID,
		teardownCtx:  context.WithoutCancel(ctx),
	}, nil
}

// do sends a JSON request and decodes a JSON response into out when non-nil.
func (s *Store) do(ctx context.Context, method, url string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(respBody))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// Index implements vector.Index over one Chroma collection.
type Index struct {
	store        *Store
	name         string
	collectionID string
	teardownCtx  context.Context

	mu     sync.Mutex
	dims   int
	count  int
	closed bool
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

	reqBody := chromaAddRequest{
		IDs:        make([]string, len(docs)),
		Embeddings: make([][]float32, len(docs)),
		Metadatas:  make([]map[string]any, len(docs)),
		Documents:  make([]string, len(docs)),
	}
	for n, doc := range docs {
		reqBody.IDs[n] = doc.ID
		reqBody.Embeddings[n] = doc.Embedding
		reqBody.Metadatas[n] = map[string]any{"seq": doc.Seq}
		reqBody.Documents[n] = doc.Text
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("marshaling add request: %w", err)
	}

	if err := i.store.do(ctx, http.MethodPost, i.collectionURL("/add"), jsonBody, nil); err != nil {
		return fmt.Errorf("failed to add documents: %w", err)
	}

	i.dims = dims
	i.count += len(docs)

	i.store.logger.Debug("added documents to chroma",
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

	jsonBody, err := json.Marshal(chromaQueryRequest{
		QueryEmbeddings: [][]float32{embedding},
		NResults:        i.count,
		Include:         []string{"metadatas", "distances", "documents"},
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling query request: %w", err)
	}

	var queryResp chromaQueryResponse
	if err := i.store.do(ctx, http.MethodPost, i.collectionURL("/query"), jsonBody, &queryResp); err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}

	// Process first group (we only query with one embedding)
	if len(queryResp.IDs) == 0 || len(queryResp.IDs[0]) == 0 {
		return []vector.QueryResult{}, nil
	}

	ids := queryResp.IDs[0]
	var (
		distances []float32
		metadatas []map[string]any
		documents []string
	)
	if len(queryResp.Distances) > 0 {
		distances = queryResp.Distances[0]
	}
	if len(queryResp.Metadatas) > 0 {
		metadatas = queryResp.Metadatas[0]
	}
	if len(queryResp.Documents) > 0 {
		documents = queryResp.Documents[0]
	}

	results := make([]vector.QueryResult, 0, len(ids))
	for n, id := range ids {
		result := vector.QueryResult{Document: vector.Document{ID: id}}

		if n < len(metadatas) && metadatas[n] != nil {
			// JSON numbers decode as float64
			if seq, ok := metadatas[n]["seq"].(float64); ok {
				result.Seq = int(seq)
			}
		}
		if n < len(documents) {
			result.Text = documents[n]
		}

		// Convert distance to similarity score
		// Lower distance = higher similarity
		if n < len(distances) {
			result.Score = 1.0 / (1.0 + distances[n])
		}

		results = append(results, result)
	}

	i.store.logger.Debug("queried chroma",
		zap.String("collection", i.name),
		zap.Int("results", len(results)),
	)

	return vector.Rank(results, k), nil
}

// Close deletes the collection. It runs even when the request context has
// been cancelled.
func (i *Index) Close() error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.closed {
		return nil
	}
	i.closed = true

	ctx, cancel := context.WithTimeout(i.teardownCtx, teardownTimeout)
	defer cancel()

	if err := i.store.do(ctx, http.MethodDelete, i.store.collectionsURL()+"/"+i.name, nil, nil); err != nil {
		return fmt.Errorf("deleting collection %q: %w", i.name, err)
	}

	i.store.logger.Debug("deleted chroma collection", zap.String("collection", i.name))
	return nil
}

func (i *Index) collectionURL(action string) string {
	return i.store.collectionsURL() + "/" + i.collectionID + action
}

var _ vector.Index = (*Index)(nil)
