// Package ingest turns files in a watched directory into notebook notes.
package ingest

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/papercomputeco/jigyasa/pkg/extract"
)

// ErrNoDir is returned when no directory is configured.
var ErrNoDir = errors.New("no ingest directory configured")

// Sink receives the text of each ingested file.
type Sink func(path, text string)

// Config configures a Watcher.
type Config struct {
	Dir    string
	Sink   Sink
	Logger *zap.Logger
}

// Watcher adds the contents of supported files in a directory as notes:
// once for files present at Scan, then on every create or write.
type Watcher struct {
	dir    string
	sink   Sink
	logger *zap.Logger

	mu   sync.Mutex
	seen map[string]string
}

// New creates a Watcher for cfg.Dir.
func New(cfg Config) (*Watcher, error) {
	if cfg.Dir == "" {
		return nil, ErrNoDir
	}
	if cfg.Sink == nil {
		return nil, errors.New("ingest requires a sink")
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	info, err := os.Stat(cfg.Dir)
	if err != nil {
		return nil, fmt.Errorf("ingest directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("ingest directory: %s is not a directory", cfg.Dir)
	}
	return &Watcher{
		dir:    cfg.Dir,
		sink:   cfg.Sink,
		logger: cfg.Logger,
		seen:   make(map[string]string),
	}, nil
}

// Supported reports whether path has an ingestible extension.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md", ".pdf":
		return true
	}
	return false
}

// Scan ingests every supported file already in the directory, in name order,
// and returns how many were added.
func (w *Watcher) Scan(ctx context.Context) (int, error) {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return 0, fmt.Errorf("reading ingest directory: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	added := 0
	for _, entry := range entries {
		if ctx.Err() != nil {
			return added, ctx.Err()
		}
		if entry.IsDir() || !Supported(entry.Name()) {
			continue
		}
		if w.ingest(ctx, filepath.Join(w.dir, entry.Name())) {
			added++
		}
	}
	return added, nil
}

// Run watches the directory until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating ingest watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(w.dir); err != nil {
		return fmt.Errorf("watching ingest directory: %w", err)
	}
	w.logger.Info("watching for notes", zap.String("dir", w.dir))

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !Supported(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.ingest(ctx, event.Name)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("ingest watcher error", zap.Error(err))
		}
	}
}

// ingest reads path and hands its text to the sink unless the content is
// empty or unchanged since it was last ingested.
func (w *Watcher) ingest(ctx context.Context, path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		w.logger.Warn("could not read note file", zap.String("path", path), zap.Error(err))
		return false
	}

	sum := sha256.Sum256(data)
	hash := hex.EncodeToString(sum[:])

	w.mu.Lock()
	if w.seen[path] == hash {
		w.mu.Unlock()
		return false
	}
	w.seen[path] = hash
	w.mu.Unlock()

	text, err := Text(ctx, path, data)
	if err != nil {
		w.logger.Warn("could not extract note text", zap.String("path", path), zap.Error(err))
		return false
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}

	w.sink(path, text)
	w.logger.Debug("ingested note file", zap.String("path", path), zap.Int("bytes", len(data)))
	return true
}

// Text returns the note text of a file's contents, reading PDFs page by page.
func Text(ctx context.Context, path string, data []byte) (string, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return extract.PDFText(ctx, bytes.NewReader(data), int64(len(data)))
	}
	return string(data), nil
}
