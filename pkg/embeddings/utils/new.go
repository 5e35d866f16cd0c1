// Package embeddingutils is the embeddings utility package
package embeddingutils

import (
	"context"
	"fmt"

	"github.com/papercomputeco/jigyasa/pkg/embeddings"
	"github.com/papercomputeco/jigyasa/pkg/embeddings/gemini"
	"github.com/papercomputeco/jigyasa/pkg/embeddings/ollama"
)

type NewEmbedderOpts struct {
	ProviderType string
	TargetURL    string
	Model        string
	APIKey       string
}

func NewEmbedder(ctx context.Context, o *NewEmbedderOpts) (embeddings.Embedder, error) {
	switch o.ProviderType {
	case "ollama", "":
		return ollama.NewEmbedder(ollama.EmbedderConfig{
			BaseURL: o.TargetURL,
			Model:   o.Model,
		})
	case "gemini":
		return gemini.NewEmbedder(ctx, gemini.EmbedderConfig{
			APIKey:  o.APIKey,
			Model:   o.Model,
			BaseURL: o.TargetURL,
		})
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", o.ProviderType)
	}
}
