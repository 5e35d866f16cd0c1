package extract

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

const (
	// DefaultUserAgent is sent with every page request.
	DefaultUserAgent = "Mozilla/5.0"

	maxPageBytes = 10 << 20
)

// WebConfig configures the web extractor.
type WebConfig struct {
	// UserAgent overrides DefaultUserAgent.
	UserAgent string

	// Timeout bounds a page fetch. Defaults to 30 seconds.
	Timeout time.Duration

	Logger *zap.Logger
}

// Web extracts the paragraph text of HTML pages.
type Web struct {
	client    *http.Client
	userAgent string
	logger    *zap.Logger
}

// NewWeb creates a web extractor.
func NewWeb(cfg WebConfig) *Web {
	ua := cfg.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Web{
		client:    &http.Client{Timeout: timeout},
		userAgent: ua,
		logger:    logger,
	}
}

// ReadableText fetches url and returns the text of its <p> elements joined
// by single spaces.
func (w *Web) ReadableText(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFetch, err)
	}
	req.Header.Set("User-Agent", w.userAgent)

	resp, err := w.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: %s returned status %d", ErrFetch, url, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return "", fmt.Errorf("%w: parsing html: %v", ErrFetch, err)
	}

	text := Paragraphs(doc)

	w.logger.Debug("extracted page text",
		zap.String("url", url),
		zap.Int("chars", len(text)),
	)

	return text, nil
}

// Paragraphs joins the text of every <p> in doc with single spaces. A page
// whose paragraphs are all blank yields "".
func Paragraphs(doc *goquery.Document) string {
	parts := doc.Find("p").Map(func(_ int, s *goquery.Selection) string {
		return s.Text()
	})
	text := strings.Join(parts, " ")
	if strings.TrimSpace(text) == "" {
		return ""
	}
	return text
}

var _ Extractor = (*Web)(nil)
