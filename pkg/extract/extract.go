// Package extract pulls readable text out of external sources: web pages
// for smart summaries and PDF files for document x-rays.
package extract

import (
	"context"
	"errors"
)

var (
	// ErrFetch is returned when a URL cannot be fetched or parsed.
	ErrFetch = errors.New("fetch failed")

	// ErrPDF is returned when a PDF cannot be read.
	ErrPDF = errors.New("pdf read failed")
)

// Extractor fetches a URL and returns its readable text. An empty string
// with a nil error means the page had no readable text.
type Extractor interface {
	ReadableText(ctx context.Context, url string) (string, error)
}
