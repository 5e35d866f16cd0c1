package config

const (
	defaultAPIListen       = ":8000"
	defaultClientAPITarget = "http://localhost:8000"

	defaultOllamaTarget = "http://localhost:11434"

	defaultLLMProvider       = "ollama"
	defaultLLMModel          = "gemma:2b"
	defaultLLMTimeoutSeconds = 60

	defaultEmbeddingProvider   = "ollama"
	defaultEmbeddingModel      = "nomic-embed-text"
	defaultEmbeddingDimensions = 768

	defaultVectorProvider = "inmemory"

	defaultChunkSize    = 1000
	defaultChunkOverlap = 100
	defaultArticleLimit = 8000

	defaultEventsProvider = "nop"
	defaultEventsTopic    = "jigyasa.events"

	defaultMarketTarget = "https://query2.finance.yahoo.com"
)

// NewDefaultConfig returns a Config with sane defaults for all fields.
// This is the single source of truth for default values.
func NewDefaultConfig() *Config {
	return &Config{
		Version: CurrentV,
		API: APIConfig{
			Listen: defaultAPIListen,
		},
		Client: ClientConfig{
			APITarget: defaultClientAPITarget,
		},
		LLM: LLMConfig{
			Provider:       defaultLLMProvider,
			Model:          defaultLLMModel,
			Target:         defaultOllamaTarget,
			TimeoutSeconds: defaultLLMTimeoutSeconds,
		},
		Embedding: EmbeddingConfig{
			Provider:   defaultEmbeddingProvider,
			Target:     defaultOllamaTarget,
			Model:      defaultEmbeddingModel,
			Dimensions: defaultEmbeddingDimensions,
		},
		VectorStore: VectorStoreConfig{
			Provider: defaultVectorProvider,
		},
		Retrieval: RetrievalConfig{
			ChunkSize:    defaultChunkSize,
			ChunkOverlap: defaultChunkOverlap,
			ArticleLimit: defaultArticleLimit,
		},
		Events: EventsConfig{
			Provider: defaultEventsProvider,
			Topic:    defaultEventsTopic,
		},
		Market: MarketConfig{
			Target: defaultMarketTarget,
		},
	}
}
