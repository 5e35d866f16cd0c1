// Package chunker splits note and article text into overlapping fragments
// for retrieval. Splitting is recursive: paragraphs first, then lines, then
// words, then characters, so that no fragment exceeds the configured size.
package chunker

import (
	"iter"
	"unicode/utf8"

	"github.com/tmc/langchaingo/textsplitter"
)

const (
	// DefaultMaxSize is the maximum fragment length in runes.
	DefaultMaxSize = 1000

	// DefaultOverlap is the number of runes shared by consecutive fragments
	// of the same document.
	DefaultOverlap = 100
)

// Fragment is a contiguous slice of one source document.
type Fragment struct {
	// Source is the index of the originating document in the input slice.
	Source int

	// Seq is the position of the fragment within its source document.
	Seq int

	// Text is the fragment content.
	Text string
}

// Option configures a Chunker.
type Option func(*Chunker)

// WithMaxSize sets the maximum fragment length in runes.
func WithMaxSize(n int) Option {
	return func(c *Chunker) {
		if n > 0 {
			c.maxSize = n
		}
	}
}

// WithOverlap sets the overlap between consecutive fragments in runes.
func WithOverlap(n int) Option {
	return func(c *Chunker) {
		if n >= 0 {
			c.overlap = n
		}
	}
}

// Chunker produces fragments from a set of documents. A Chunker holds no
// per-call state and is safe for concurrent use.
type Chunker struct {
	maxSize  int
	overlap  int
	splitter textsplitter.RecursiveCharacter
}

// New creates a Chunker. Defaults to DefaultMaxSize and DefaultOverlap.
func New(opts ...Option) *Chunker {
	c := &Chunker{
		maxSize: DefaultMaxSize,
		overlap: DefaultOverlap,
	}
	for _, opt := range opts {
		opt(c)
	}

	// Overlap must leave room for new content in every fragment.
	if c.overlap >= c.maxSize {
		c.overlap = c.maxSize / 10
	}

	c.splitter = textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(c.maxSize),
		textsplitter.WithChunkOverlap(c.overlap),
		textsplitter.WithLenFunc(utf8.RuneCountInString),
	)

	return c
}

// MaxSize returns the configured maximum fragment length.
func (c *Chunker) MaxSize() int {
	return c.maxSize
}

// Overlap returns the configured overlap length.
func (c *Chunker) Overlap() int {
	return c.overlap
}

// Fragments returns a lazy sequence over the fragments of docs, in document
// order. Each document is only split when the iteration reaches it, and the
// sequence may be ranged over more than once with identical results.
func (c *Chunker) Fragments(docs []string) iter.Seq[Fragment] {
	return func(yield func(Fragment) bool) {
		for source, doc := range docs {
			for seq, text := range c.splitDocument(doc) {
				if !yield(Fragment{Source: source, Seq: seq, Text: text}) {
					return
				}
			}
		}
	}
}

// Split collects every fragment of docs.
func (c *Chunker) Split(docs []string) []Fragment {
	fragments := make([]Fragment, 0, len(docs))
	for f := range c.Fragments(docs) {
		fragments = append(fragments, f)
	}
	return fragments
}

// Whole wraps each document as a single fragment without splitting.
func Whole(docs []string) []Fragment {
	fragments := make([]Fragment, 0, len(docs))
	for i, doc := range docs {
		if doc == "" {
			continue
		}
		fragments = append(fragments, Fragment{Source: i, Text: doc})
	}
	return fragments
}

func (c *Chunker) splitDocument(doc string) []string {
	if doc == "" {
		return nil
	}

	if utf8.RuneCountInString(doc) <= c.maxSize {
		return []string{doc}
	}

	parts, err := c.splitter.SplitText(doc)
	if err != nil {
		return c.window(doc)
	}
	return parts
}

// window is a plain sliding window over runes, used only if the recursive
// splitter reports an error.
func (c *Chunker) window(doc string) []string {
	runes := []rune(doc)
	step := c.maxSize - c.overlap

	var parts []string
	for start := 0; start < len(runes); start += step {
		end := min(start+c.maxSize, len(runes))
		parts = append(parts, string(runes[start:end]))
		if end == len(runes) {
			break
		}
	}
	return parts
}
