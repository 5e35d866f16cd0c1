package testutils

import (
	"context"
	"errors"
	"sync"

	"github.com/papercomputeco/jigyasa/pkg/vector"
	"github.com/papercomputeco/jigyasa/pkg/vector/inmemory"
)

// MockIndex wraps an in-memory index and counts lifecycle calls.
type MockIndex struct {
	inner *inmemory.Index

	// FailAdd, FailQuery and FailClose make the matching call return an error.
	FailAdd   bool
	FailQuery bool
	FailClose bool

	Added   []vector.Document
	LastK   int
	Queries int
	Closes  int
}

var _ vector.Index = (*MockIndex)(nil)

// ErrMockIndex is returned by MockIndex when told to fail.
var ErrMockIndex = errors.New("mock index failure")

func NewMockIndex() *MockIndex {
	return &MockIndex{inner: inmemory.New()}
}

func (m *MockIndex) Add(ctx context.Context, docs []vector.Document) error {
	if m.FailAdd {
		return ErrMockIndex
	}
	m.Added = append(m.Added, docs...)
	return m.inner.Add(ctx, docs)
}

func (m *MockIndex) Query(ctx context.Context, embedding []float32, k int) ([]vector.QueryResult, error) {
	m.Queries++
	m.LastK = k
	if m.FailQuery {
		return nil, ErrMockIndex
	}
	return m.inner.Query(ctx, embedding, k)
}

func (m *MockIndex) Close() error {
	m.Closes++
	_ = m.inner.Close()
	if m.FailClose {
		return ErrMockIndex
	}
	return nil
}

// MockIndexFactory hands out MockIndexes and remembers them.
type MockIndexFactory struct {
	mu sync.Mutex

	// Err, when set, is returned instead of creating an index.
	Err error

	// Configure, when set, is applied to each new index.
	Configure func(*MockIndex)

	Indexes []*MockIndex
}

func NewMockIndexFactory() *MockIndexFactory {
	return &MockIndexFactory{}
}

// Factory returns the vector.Factory to hand to code under test.
func (f *MockIndexFactory) Factory() vector.Factory {
	return func(_ context.Context) (vector.Index, error) {
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.Err != nil {
			return nil, f.Err
		}
		idx := NewMockIndex()
		if f.Configure != nil {
			f.Configure(idx)
		}
		f.Indexes = append(f.Indexes, idx)
		return idx, nil
	}
}

// Created returns how many indexes were created.
func (f *MockIndexFactory) Created() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Indexes)
}

// TotalCloses sums Close calls across every index created.
func (f *MockIndexFactory) TotalCloses() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, idx := range f.Indexes {
		n += idx.Closes
	}
	return n
}
