package llm

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/papercomputeco/jigyasa/pkg/credentials"
)

const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderOllama    = "ollama"
	ProviderGemini    = "gemini"
)

// CallerConfig holds configuration for creating a model caller.
type CallerConfig struct {
	Provider string               // "openai", "anthropic", "ollama" or "gemini"
	Model    string               // e.g. "gpt-4o-mini", "gemma:2b"
	APIKey   string               // explicit API key (highest priority)
	BaseURL  string               // override base URL
	CredMgr  *credentials.Manager // credentials from jigyasa auth
	Logger   *zap.Logger
}

// NewCaller creates a CallFunc based on the provided configuration.
// Resolution order for API key:
//  1. Explicit APIKey in config
//  2. credentials.Manager (from jigyasa auth)
//  3. Environment variables (OPENAI_API_KEY / ANTHROPIC_API_KEY / GEMINI_API_KEY)
//  4. Fall back to Ollama at localhost:11434
func NewCaller(ctx context.Context, cfg CallerConfig) (CallFunc, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	provider := strings.ToLower(cfg.Provider)
	if provider == "" {
		provider = ProviderOllama
	}
	model := cfg.Model

	var apiKey string
	if provider != ProviderOllama {
		apiKey = credentials.Resolve(cfg.CredMgr, provider, cfg.APIKey)
		if apiKey == "" && credentials.IsSupportedProvider(provider) {
			logger.Warn("no API key found, falling back to ollama", zap.String("provider", provider))
			provider = ProviderOllama
			model = ""
		}
	}

	switch provider {
	case ProviderOpenAI:
		if model == "" {
			model = "gpt-4o-mini"
		}
		return newOpenAICaller(apiKey, model, baseURLOr(cfg.BaseURL, "https://api.openai.com")), nil

	case ProviderAnthropic:
		if model == "" {
			model = "claude-haiku-4-5-20251001"
		}
		return newAnthropicCaller(apiKey, model, baseURLOr(cfg.BaseURL, "https://api.anthropic.com")), nil

	case ProviderOllama:
		if model == "" {
			model = "gemma:2b"
		}
		return newOllamaCaller(model, baseURLOr(cfg.BaseURL, "http://localhost:11434")), nil

	case ProviderGemini:
		if model == "" {
			model = "gemini-2.0-flash"
		}
		return newGeminiCaller(ctx, apiKey, model, cfg.BaseURL)

	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
}

func baseURLOr(baseURL, fallback string) string {
	if baseURL == "" {
		return fallback
	}
	return strings.TrimRight(baseURL, "/")
}
