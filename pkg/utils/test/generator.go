package testutils

import (
	"context"
	"errors"
	"sync"

	"github.com/papercomputeco/jigyasa/pkg/llm"
)

// ErrMockGeneration is the default error MockGenerator returns when told to fail.
var ErrMockGeneration = errors.New("mock generation failure")

// MockGenerator is a scripted generation model.
type MockGenerator struct {
	mu sync.Mutex

	// Responses are returned in order; the last one repeats.
	Responses []string

	// Err, when set, is returned by every call.
	Err error

	// Block makes calls wait for context cancellation.
	Block bool

	Prompts []string
}

func NewMockGenerator(responses ...string) *MockGenerator {
	return &MockGenerator{Responses: responses}
}

// Call is the llm.CallFunc to hand to code under test.
func (m *MockGenerator) Call(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.Prompts = append(m.Prompts, prompt)
	n := len(m.Prompts)
	block := m.Block
	err := m.Err
	m.mu.Unlock()

	if block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	if err != nil {
		return "", err
	}
	if len(m.Responses) == 0 {
		return "", nil
	}
	return m.Responses[min(n, len(m.Responses))-1], nil
}

// CallFunc returns Call as an llm.CallFunc.
func (m *MockGenerator) CallFunc() llm.CallFunc {
	return m.Call
}

// Calls returns how many prompts were sent.
func (m *MockGenerator) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Prompts)
}

// LastPrompt returns the most recent prompt, or "" when none was sent.
func (m *MockGenerator) LastPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Prompts) == 0 {
		return ""
	}
	return m.Prompts[len(m.Prompts)-1]
}
