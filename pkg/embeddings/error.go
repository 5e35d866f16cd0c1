package embeddings

import "errors"

// ErrEmbedding is returned when an embedding provider fails to produce vectors.
var ErrEmbedding = errors.New("embedding failed")
