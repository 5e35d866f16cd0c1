package config

import (
	"fmt"
	"strconv"
)

// Config represents the persistent jigyasa configuration stored as
// config.toml in the .jigyasa/ directory. The TOML layout uses sections for
// logical grouping.
type Config struct {
	Version     int               `toml:"version"`
	API         APIConfig         `toml:"api"`
	Client      ClientConfig      `toml:"client"`
	LLM         LLMConfig         `toml:"llm"`
	Embedding   EmbeddingConfig   `toml:"embedding"`
	VectorStore VectorStoreConfig `toml:"vector_store"`
	Retrieval   RetrievalConfig   `toml:"retrieval"`
	Events      EventsConfig      `toml:"events"`
	Market      MarketConfig      `toml:"market"`
	Ingest      IngestConfig      `toml:"ingest"`
}

// APIConfig holds API server settings.
type APIConfig struct {
	Listen string `toml:"listen,omitempty"`
}

// ClientConfig holds settings for CLI commands that connect to the running
// API server (e.g. jigyasa ask, jigyasa note add). Values are full URLs.
type ClientConfig struct {
	APITarget string `toml:"api_target,omitempty"`
}

// LLMConfig holds generation model settings.
type LLMConfig struct {
	Provider string `toml:"provider,omitempty"`
	Model    string `toml:"model,omitempty"`
	Target   string `toml:"target,omitempty"`

	// TimeoutSeconds bounds each generation call.
	TimeoutSeconds uint `toml:"timeout_seconds,omitempty"`
}

// EmbeddingConfig holds embedding provider settings.
type EmbeddingConfig struct {
	Provider   string `toml:"provider,omitempty"`
	Target     string `toml:"target,omitempty"`
	Model      string `toml:"model,omitempty"`
	Dimensions uint   `toml:"dimensions,omitempty"`
}

// VectorStoreConfig holds settings for the per-request retrieval index.
type VectorStoreConfig struct {
	Provider string `toml:"provider,omitempty"`
	Target   string `toml:"target,omitempty"`
}

// RetrievalConfig holds chunking and truncation settings.
type RetrievalConfig struct {
	ChunkSize    uint `toml:"chunk_size,omitempty"`
	ChunkOverlap uint `toml:"chunk_overlap,omitempty"`
	ArticleLimit uint `toml:"article_limit,omitempty"`
}

// EventsConfig holds event stream settings.
type EventsConfig struct {
	Provider string `toml:"provider,omitempty"`

	// Brokers is a comma-separated list of host:port addresses.
	Brokers string `toml:"brokers,omitempty"`
	Topic   string `toml:"topic,omitempty"`
}

// MarketConfig holds company data provider settings.
type MarketConfig struct {
	Target string `toml:"target,omitempty"`
}

// IngestConfig holds directory ingestion settings.
type IngestConfig struct {
	WatchDir string `toml:"watch_dir,omitempty"`
}

// configKeyInfo maps a user-facing dotted key name to a getter and setter on *Config.
type configKeyInfo struct {
	get func(c *Config) string
	set func(c *Config, v string) error
}

func stringKey(field func(c *Config) *string) configKeyInfo {
	return configKeyInfo{
		get: func(c *Config) string { return *field(c) },
		set: func(c *Config, v string) error { *field(c) = v; return nil },
	}
}

func uintKey(name string, field func(c *Config) *uint) configKeyInfo {
	return configKeyInfo{
		get: func(c *Config) string {
			if *field(c) == 0 {
				return ""
			}
			return strconv.FormatUint(uint64(*field(c)), 10)
		},
		set: func(c *Config, v string) error {
			n, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid value for %s: %w", name, err)
			}
			*field(c) = uint(n)
			return nil
		},
	}
}

// configKeys is the authoritative map of all supported config keys.
// Keys use dotted notation matching the TOML section structure.
var configKeys = map[string]configKeyInfo{
	"api.listen":        stringKey(func(c *Config) *string { return &c.API.Listen }),
	"client.api_target": stringKey(func(c *Config) *string { return &c.Client.APITarget }),

	"llm.provider":        stringKey(func(c *Config) *string { return &c.LLM.Provider }),
	"llm.model":           stringKey(func(c *Config) *string { return &c.LLM.Model }),
	"llm.target":          stringKey(func(c *Config) *string { return &c.LLM.Target }),
	"llm.timeout_seconds": uintKey("llm.timeout_seconds", func(c *Config) *uint { return &c.LLM.TimeoutSeconds }),

	"embedding.provider":   stringKey(func(c *Config) *string { return &c.Embedding.Provider }),
	"embedding.target":     stringKey(func(c *Config) *string { return &c.Embedding.Target }),
	"embedding.model":      stringKey(func(c *Config) *string { return &c.Embedding.Model }),
	"embedding.dimensions": uintKey("embedding.dimensions", func(c *Config) *uint { return &c.Embedding.Dimensions }),

	"vector_store.provider": stringKey(func(c *Config) *string { return &c.VectorStore.Provider }),
	"vector_store.target":   stringKey(func(c *Config) *string { return &c.VectorStore.Target }),

	"retrieval.chunk_size":    uintKey("retrieval.chunk_size", func(c *Config) *uint { return &c.Retrieval.ChunkSize }),
	"retrieval.chunk_overlap": uintKey("retrieval.chunk_overlap", func(c *Config) *uint { return &c.Retrieval.ChunkOverlap }),
	"retrieval.article_limit": uintKey("retrieval.article_limit", func(c *Config) *uint { return &c.Retrieval.ArticleLimit }),

	"events.provider": stringKey(func(c *Config) *string { return &c.Events.Provider }),
	"events.brokers":  stringKey(func(c *Config) *string { return &c.Events.Brokers }),
	"events.topic":    stringKey(func(c *Config) *string { return &c.Events.Topic }),

	"market.target": stringKey(func(c *Config) *string { return &c.Market.Target }),

	"ingest.watch_dir": stringKey(func(c *Config) *string { return &c.Ingest.WatchDir }),
}
