// Package embeddings defines the text embedding capability used to index
// notes and queries.
package embeddings

import (
	"context"
	"fmt"
)

// Embedder provides text embedding capabilities.
type Embedder interface {
	// Embed converts texts into vector embeddings, one per input, in input
	// order. Vectors from one Embedder share a single dimensionality.
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// Close releases any resources held by the embedder.
	Close() error
}

// EmbedOne embeds a single text.
func EmbedOne(ctx context.Context, e Embedder, text string) ([]float32, error) {
	vectors, err := e.Embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vectors) != 1 {
		return nil, fmt.Errorf("%w: expected 1 embedding, got %d", ErrEmbedding, len(vectors))
	}
	return vectors[0], nil
}

// CheckCount verifies that a provider returned one vector per input.
func CheckCount(inputs int, vectors [][]float32) error {
	if len(vectors) != inputs {
		return fmt.Errorf("%w: expected %d embeddings, got %d", ErrEmbedding, inputs, len(vectors))
	}
	return nil
}
