// Package agent runs the research agents: retrieval-augmented answers,
// contradiction checks and contextual summaries over the caller's notes,
// plus the single-shot extraction, guidance, x-ray and company analysis
// prompts.
package agent

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/papercomputeco/jigyasa/pkg/chunker"
	"github.com/papercomputeco/jigyasa/pkg/embeddings"
	"github.com/papercomputeco/jigyasa/pkg/extract"
	"github.com/papercomputeco/jigyasa/pkg/llm"
	"github.com/papercomputeco/jigyasa/pkg/vector"
)

// DefaultArticleLimit is the number of runes of a fetched article passed to
// the summary agent.
const DefaultArticleLimit = 8000

var (
	// ErrRetrieval wraps embedding and index failures.
	ErrRetrieval = errors.New("retrieval failed")

	// ErrMisconfigured is returned by New when a collaborator is missing.
	ErrMisconfigured = errors.New("agent misconfigured")
)

// CompletionFunc observes finished operations.
type CompletionFunc func(op string, r Result, elapsed time.Duration)

// Config wires the agents to their collaborators.
type Config struct {
	Embedder     embeddings.Embedder
	IndexFactory vector.Factory
	Generate     llm.CallFunc
	Extractor    extract.Extractor
	Chunker      *chunker.Chunker
	Logger       *zap.Logger

	// ArticleLimit caps the article length given to the summary agent.
	ArticleLimit int

	// GenerateTimeout bounds each generation call.
	GenerateTimeout time.Duration

	// OnComplete, if set, is called after every operation.
	OnComplete CompletionFunc
}

// Agents runs every agent operation. It holds no per-request state and is
// safe for concurrent use.
type Agents struct {
	embedder     embeddings.Embedder
	factory      vector.Factory
	generate     llm.CallFunc
	extractor    extract.Extractor
	chunker      *chunker.Chunker
	logger       *zap.Logger
	articleLimit int
	onComplete   CompletionFunc
}

// New creates Agents from cfg.
func New(cfg Config) (*Agents, error) {
	if cfg.Generate == nil {
		return nil, errors.Join(ErrMisconfigured, errors.New("no generation function"))
	}
	if cfg.Embedder == nil {
		return nil, errors.Join(ErrMisconfigured, errors.New("no embedder"))
	}
	if cfg.IndexFactory == nil {
		return nil, errors.Join(ErrMisconfigured, errors.New("no index factory"))
	}
	if cfg.Chunker == nil {
		cfg.Chunker = chunker.New()
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.ArticleLimit <= 0 {
		cfg.ArticleLimit = DefaultArticleLimit
	}

	return &Agents{
		embedder:     cfg.Embedder,
		factory:      cfg.IndexFactory,
		generate:     llm.WithTimeout(cfg.Generate, cfg.GenerateTimeout),
		extractor:    cfg.Extractor,
		chunker:      cfg.Chunker,
		logger:       cfg.Logger,
		articleLimit: cfg.ArticleLimit,
		onComplete:   cfg.OnComplete,
	}, nil
}

func (a *Agents) done(op string, start time.Time, r Result) Result {
	elapsed := time.Since(start)
	fields := []zap.Field{
		zap.String("op", op),
		zap.String("kind", string(r.Kind)),
		zap.Duration("elapsed", elapsed),
	}
	if r.Err != nil {
		a.logger.Warn("agent failed", append(fields, zap.Error(r.Err))...)
	} else {
		a.logger.Debug("agent finished", fields...)
	}
	if a.onComplete != nil {
		a.onComplete(op, r, elapsed)
	}
	return r
}
