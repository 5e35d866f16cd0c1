// Package notebook holds the user's research notes for the lifetime of the
// process.
package notebook

import (
	"slices"
	"sync"
)

// ManualPrefix marks notes entered by hand or saved from an AI answer.
const ManualPrefix = "Manual Note or AI Summary: "

// Observer is notified after a note is appended.
type Observer func(note string, count int)

// Notebook is an append-only, concurrency-safe list of notes. Duplicates are
// allowed.
type Notebook struct {
	mu       sync.RWMutex
	notes    []string
	observer Observer
}

// New creates an empty notebook. observer may be nil.
func New(observer Observer) *Notebook {
	return &Notebook{observer: observer}
}

// Add appends a note and returns the new note count.
func (n *Notebook) Add(text string) int {
	n.mu.Lock()
	n.notes = append(n.notes, text)
	count := len(n.notes)
	n.mu.Unlock()

	if n.observer != nil {
		n.observer(text, count)
	}
	return count
}

// AddManual appends a note with ManualPrefix.
func (n *Notebook) AddManual(text string) int {
	return n.Add(ManualPrefix + text)
}

// Snapshot returns a copy of the notes. Later additions do not affect it.
func (n *Notebook) Snapshot() []string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return slices.Clone(n.notes)
}

// Len returns the number of notes.
func (n *Notebook) Len() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.notes)
}

// Latest returns the most recent note and a copy of the notes before it.
// ok is false for an empty notebook.
func (n *Notebook) Latest() (latest string, previous []string, ok bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	if len(n.notes) == 0 {
		return "", nil, false
	}
	last := len(n.notes) - 1
	return n.notes[last], slices.Clone(n.notes[:last]), true
}
