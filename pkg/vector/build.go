package vector

import (
	"context"
	"fmt"
)

// Build creates an index with factory and adds docs to it. If adding fails
// the fresh index is closed before returning, so the caller only owns an
// index when err is nil.
func Build(ctx context.Context, factory Factory, docs []Document) (Index, error) {
	idx, err := factory(ctx)
	if err != nil {
		return nil, err
	}

	if err := idx.Add(ctx, docs); err != nil {
		_ = idx.Close()
		return nil, err
	}
	return idx, nil
}

// Documents pairs texts with their embeddings as documents numbered in order.
func Documents(texts []string, embeddings [][]float32) ([]Document, error) {
	if len(texts) != len(embeddings) {
		return nil, fmt.Errorf("%w: %d texts, %d embeddings", ErrDimensionMismatch, len(texts), len(embeddings))
	}

	docs := make([]Document, len(texts))
	for i, text := range texts {
		docs[i] = Document{
			ID:        fmt.Sprintf("frag-%d", i),
			Seq:       i,
			Text:      text,
			Embedding: embeddings[i],
		}
	}
	return docs, nil
}

func fmtDimension(id string, want, got int) error {
	return fmt.Errorf("%w: document %s has %d dimensions, index has %d", ErrDimensionMismatch, id, got, want)
}
