package extract

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/tmc/langchaingo/documentloaders"
)

// PDFText reads every page of a PDF and joins the page texts with single
// spaces.
func PDFText(ctx context.Context, r io.ReaderAt, size int64) (text string, err error) {
	// the pdf reader panics on some malformed files
	defer func() {
		if rec := recover(); rec != nil {
			text = ""
			err = fmt.Errorf("%w: %v", ErrPDF, rec)
		}
	}()

	pages, err := documentloaders.NewPDF(r, size).Load(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPDF, err)
	}

	parts := make([]string, len(pages))
	for i, page := range pages {
		parts[i] = page.PageContent
	}
	return strings.Join(parts, " "), nil
}
