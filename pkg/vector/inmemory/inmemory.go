// Package inmemory provides a brute-force cosine similarity index held in
// process memory.
package inmemory

import (
	"context"
	"math"
	"sync"

	"github.com/papercomputeco/jigyasa/pkg/vector"
)

// Index implements vector.Index over a slice of documents.
type Index struct {
	mu     sync.Mutex
	docs   []vector.Document
	dims   int
	closed bool
}

// New creates an empty in-memory index.
func New() *Index {
	return &Index{}
}

// Factory is a vector.Factory producing in-memory indexes.
func Factory(_ context.Context) (vector.Index, error) {
	return New(), nil
}

// Add stores documents with their embeddings.
func (i *Index) Add(_ context.Context, docs []vector.Document) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.closed {
		return vector.ErrClosed
	}

	dims, err := vector.CheckDimensions(i.dims, docs)
	if err != nil {
		return err
	}
	i.dims = dims
	i.docs = append(i.docs, docs...)
	return nil
}

// Query returns the k documents with the highest cosine similarity.
func (i *Index) Query(_ context.Context, embedding []float32, k int) ([]vector.QueryResult, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.closed {
		return nil, vector.ErrClosed
	}
	if vector.CapK(k, len(i.docs)) == 0 {
		return []vector.QueryResult{}, nil
	}
	if len(embedding) != i.dims {
		return nil, vector.ErrDimensionMismatch
	}

	results := make([]vector.QueryResult, len(i.docs))
	for n, doc := range i.docs {
		results[n] = vector.QueryResult{
			Document: doc,
			Score:    cosine(embedding, doc.Embedding),
		}
	}
	return vector.Rank(results, k), nil
}

// Len returns the number of stored documents.
func (i *Index) Len() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return len(i.docs)
}

// Close drops the stored documents.
func (i *Index) Close() error {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.closed = true
	i.docs = nil
	return nil
}

func cosine(a, b []float32) float32 {
	var dot, na, nb float64
	for n := range a {
		dot += float64(a[n]) * float64(b[n])
		na += float64(a[n]) * float64(a[n])
		nb += float64(b[n]) * float64(b[n])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(na) * math.Sqrt(nb)))
}

var _ vector.Index = (*Index)(nil)
