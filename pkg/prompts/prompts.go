// Package prompts holds the fixed instruction templates sent to the
// generation model.
package prompts

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingBinding is returned when a template placeholder has no value.
var ErrMissingBinding = errors.New("missing prompt binding")

const (
	// ContradictionMarker starts a verifier answer that found a contradiction.
	ContradictionMarker = "CONTRADICTION:"

	// NoContradictionMarker is the verifier answer when nothing conflicts.
	NoContradictionMarker = "NO_CONTRADICTION"
)

// Template is a named prompt with {placeholder} slots.
type Template struct {
	Name         string
	Text         string
	Placeholders []string
}

// Render substitutes every placeholder with its binding. Values are inserted
// literally in a single pass, so a value containing "{x}" is not expanded.
func (t Template) Render(bindings map[string]string) (string, error) {
	pairs := make([]string, 0, 2*len(t.Placeholders))
	for _, name := range t.Placeholders {
		value, ok := bindings[name]
		if !ok {
			return "", fmt.Errorf("%w: %s requires %q", ErrMissingBinding, t.Name, name)
		}
		pairs = append(pairs, "{"+name+"}", value)
	}
	return strings.NewReplacer(pairs...).Replace(t.Text), nil
}
