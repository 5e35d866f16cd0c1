package agent

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/papercomputeco/jigyasa/pkg/chunker"
	"github.com/papercomputeco/jigyasa/pkg/embeddings"
	"github.com/papercomputeco/jigyasa/pkg/prompts"
	"github.com/papercomputeco/jigyasa/pkg/vector"
)

// retrieve runs the retrieval pipeline for p: fragment notes, embed them
// into a fresh index, take the top fragments for query and generate from the
// rendered template. The index is torn down before retrieve returns. Embedding
// and index failures wrap ErrRetrieval; generation failures wrap
// llm.ErrGeneration.
func (a *Agents) retrieve(ctx context.Context, p Profile, query string, notes []string) (string, error) {
	var fragments []chunker.Fragment
	if p.Chunk {
		fragments = a.chunker.Split(notes)
	} else {
		fragments = chunker.Whole(notes)
	}

	retrieved, err := a.topFragments(ctx, p, query, fragments)
	if err != nil {
		return "", err
	}

	prompt, err := p.Template.Render(map[string]string{
		p.ContextKey: strings.Join(retrieved, p.Separator),
		p.QueryKey:   query,
	})
	if err != nil {
		return "", err
	}

	return a.generate(ctx, prompt)
}

func (a *Agents) topFragments(ctx context.Context, p Profile, query string, fragments []chunker.Fragment) ([]string, error) {
	if len(fragments) == 0 {
		return nil, nil
	}

	texts := make([]string, len(fragments))
	for i, f := range fragments {
		texts[i] = f.Text
	}

	a.logger.Debug("embedding fragments",
		zap.String("agent", p.Name),
		zap.Int("fragments", len(texts)),
	)

	vectors, err := a.embedder.Embed(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRetrieval, err)
	}
	if err := embeddings.CheckCount(len(texts), vectors); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRetrieval, err)
	}

	docs, err := vector.Documents(texts, vectors)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRetrieval, err)
	}

	idx, err := vector.Build(ctx, a.factory, docs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRetrieval, err)
	}
	defer a.closeIndex(p.Name, idx)

	queryVector, err := embeddings.EmbedOne(ctx, a.embedder, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRetrieval, err)
	}

	results, err := idx.Query(ctx, queryVector, p.TopK)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRetrieval, err)
	}

	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Text
	}
	return out, nil
}

// closeIndex tears down idx. Failures are logged and never change the
// operation's outcome.
func (a *Agents) closeIndex(name string, idx vector.Index) {
	if err := idx.Close(); err != nil {
		a.logger.Warn("could not tear down index",
			zap.String("agent", name),
			zap.Error(err),
		)
	}
}

// single renders t with bindings and generates, with no retrieval.
func (a *Agents) single(ctx context.Context, t prompts.Template, bindings map[string]string) Result {
	prompt, err := t.Render(bindings)
	if err != nil {
		return failure(KindGenerationFailed, generationMessage(err), err)
	}
	out, err := a.generate(ctx, prompt)
	if err != nil {
		return failure(KindGenerationFailed, generationMessage(err), err)
	}
	return answer(out)
}

// outcome maps a pipeline error onto a tagged result.
func outcome(out string, err error) Result {
	switch {
	case err == nil:
		return answer(out)
	case isRetrieval(err):
		return failure(KindRetrievalFailed, "Error: Could not search your notes. Details: "+err.Error(), err)
	default:
		return failure(KindGenerationFailed, generationMessage(err), err)
	}
}

func generationMessage(err error) string {
	return "Error: The model could not generate a response. Details: " + err.Error()
}
