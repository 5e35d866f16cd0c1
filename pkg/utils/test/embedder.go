package testutils

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/papercomputeco/jigyasa/pkg/embeddings"
)

// MockEmbedder is a test embedder that returns predictable embeddings
type MockEmbedder struct {
	mu sync.Mutex

	Embeddings map[string][]float32

	// FailOn causes Embed to return an error when any input text matches
	FailOn string

	// Err, when set, is returned by every Embed call
	Err error

	Calls  int
	Inputs [][]string
	Closed int
}

var _ embeddings.Embedder = (*MockEmbedder)(nil)

func NewMockEmbedder() *MockEmbedder {
	return &MockEmbedder{
		Embeddings: make(map[string][]float32),
	}
}

func (m *MockEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls++
	m.Inputs = append(m.Inputs, append([]string(nil), texts...))

	if m.Err != nil {
		return nil, m.Err
	}

	out := make([][]float32, len(texts))
	for i, text := range texts {
		if m.FailOn != "" && strings.Contains(text, m.FailOn) {
			return nil, fmt.Errorf("%w: mock embedding failure for: %s", embeddings.ErrEmbedding, text)
		}
		if emb, ok := m.Embeddings[text]; ok {
			out[i] = emb
			continue
		}
		// Return a default embedding for any text
		out[i] = []float32{0.1, 0.2, 0.3}
	}
	return out, nil
}

// TotalCalls returns how many times Embed was called.
func (m *MockEmbedder) TotalCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Calls
}

func (m *MockEmbedder) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Closed++
	return nil
}
