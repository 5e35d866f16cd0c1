// Package llm calls text generation models. Every provider is reduced to a
// CallFunc taking a prompt and returning the generated text.
package llm

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// DefaultTimeout bounds a single generation call.
const DefaultTimeout = 60 * time.Second

var (
	// ErrGeneration is returned when the model call fails.
	ErrGeneration = errors.New("generation failed")

	// ErrTimeout is returned, alongside ErrGeneration, when a call exceeds
	// its time bound.
	ErrTimeout = errors.New("generation timed out")
)

// CallFunc sends a prompt to a model and returns its text output.
type CallFunc func(ctx context.Context, prompt string) (string, error)

// WithTimeout bounds every call to d and normalizes errors so that they wrap
// ErrGeneration, and ErrTimeout when the deadline was hit. A non-positive d
// uses DefaultTimeout.
func WithTimeout(call CallFunc, d time.Duration) CallFunc {
	if d <= 0 {
		d = DefaultTimeout
	}
	return func(ctx context.Context, prompt string) (string, error) {
		ctx, cancel := context.WithTimeout(ctx, d)
		defer cancel()

		out, err := call(ctx, prompt)
		if err == nil {
			return out, nil
		}

		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: %w after %s: %v", ErrGeneration, ErrTimeout, d, err)
		}
		if errors.Is(err, ErrGeneration) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", ErrGeneration, err)
	}
}
