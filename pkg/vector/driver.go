// Package vector provides the request-scoped similarity index used for
// retrieval, plus backends for it.
package vector

import "context"

// Document represents an indexed fragment with its embedding.
type Document struct {
	// ID is a unique identifier for the document within one index.
	ID string

	// Seq is the insertion ordinal. Equal-score results are ordered by it.
	Seq int

	// Text is the fragment content returned on retrieval.
	Text string

	// Embedding is the vector representation of Text.
	Embedding []float32
}

// QueryResult represents a search result with similarity score.
type QueryResult struct {
	Document

	// Score represents the similarity score (higher = more similar).
	Score float32
}

// Index is a similarity index over one request's fragments. It lives for a
// single request and Close tears it down.
type Index interface {
	// Add stores documents with their embeddings. All embeddings in one index
	// must share a dimensionality.
	Add(ctx context.Context, docs []Document) error

	// Query returns up to k documents most similar to the embedding, ordered
	// by descending score with ties kept in insertion order. k is capped at
	// the number of documents; k <= 0 yields an empty result.
	Query(ctx context.Context, embedding []float32, k int) ([]QueryResult, error)

	// Close releases the index and everything it holds. Calling Close more
	// than once is a no-op.
	Close() error
}

// Factory creates a fresh, empty Index.
type Factory func(ctx context.Context) (Index, error)
