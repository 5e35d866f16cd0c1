package vector

import "errors"

var (
	// ErrDimensionMismatch is returned when an embedding does not match the
	// dimensionality of the index.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrConnection is returned when the vector store connection fails.
	ErrConnection = errors.New("vector store connection failed")

	// ErrClosed is returned when an index is used after Close.
	ErrClosed = errors.New("vector index closed")
)
