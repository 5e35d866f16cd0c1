package testutils

import (
	"context"
	"fmt"

	"github.com/papercomputeco/jigyasa/pkg/extract"
)

// MockExtractor returns canned page text.
type MockExtractor struct {
	Text string

	// Err, when set, is wrapped in extract.ErrFetch and returned.
	Err error

	URLs []string
}

var _ extract.Extractor = (*MockExtractor)(nil)

func NewMockExtractor(text string) *MockExtractor {
	return &MockExtractor{Text: text}
}

func (m *MockExtractor) ReadableText(_ context.Context, url string) (string, error) {
	m.URLs = append(m.URLs, url)
	if m.Err != nil {
		return "", fmt.Errorf("%w: %v", extract.ErrFetch, m.Err)
	}
	return m.Text, nil
}
