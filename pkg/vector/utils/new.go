// Package vectorutils builds vector index factories from configuration.
package vectorutils

import (
	"context"
	"fmt"
	"net"
	"strconv"

	"go.uber.org/zap"

	"github.com/papercomputeco/jigyasa/pkg/vector"
	"github.com/papercomputeco/jigyasa/pkg/vector/chroma"
	"github.com/papercomputeco/jigyasa/pkg/vector/inmemory"
	"github.com/papercomputeco/jigyasa/pkg/vector/pgvector"
	"github.com/papercomputeco/jigyasa/pkg/vector/qdrant"
	"github.com/papercomputeco/jigyasa/pkg/vector/sqlitevec"
)

type NewIndexFactoryOpts struct {
	ProviderType string
	TargetURL    string
	APIKey       string
	Dimensions   uint
	Logger       *zap.Logger
}

// NewIndexFactory returns a factory for request-scoped indexes and a closer
// for any connection shared between them.
func NewIndexFactory(ctx context.Context, o *NewIndexFactoryOpts) (vector.Factory, func() error, error) {
	logger := o.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	noop := func() error { return nil }

	switch o.ProviderType {
	case "inmemory", "":
		return inmemory.Factory, noop, nil
	case "sqlitevec":
		return sqlitevec.Factory(sqlitevec.Config{
			DBPath:     o.TargetURL,
			Dimensions: o.Dimensions,
		}, logger), noop, nil
	case "chroma":
		store, err := chroma.NewStore(chroma.Config{URL: o.TargetURL}, logger)
		if err != nil {
			return nil, nil, err
		}
		return store.NewIndex, noop, nil
	case "qdrant":
		cfg, err := qdrantConfig(o.TargetURL, o.APIKey)
		if err != nil {
			return nil, nil, err
		}
		store, err := qdrant.NewStore(cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		return store.NewIndex, store.Close, nil
	case "pgvector":
		store, err := pgvector.NewStore(ctx, pgvector.Config{DSN: o.TargetURL}, logger)
		if err != nil {
			return nil, nil, err
		}
		return store.NewIndex, store.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported vector store provider: %s", o.ProviderType)
	}
}

// qdrantConfig parses a "host:port" target. An empty target uses the
// client defaults.
func qdrantConfig(target, apiKey string) (qdrant.Config, error) {
	cfg := qdrant.Config{APIKey: apiKey}
	if target == "" {
		return cfg, nil
	}

	host, portStr, err := net.SplitHostPort(target)
	if err != nil {
		cfg.Host = target
		return cfg, nil
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return cfg, fmt.Errorf("invalid qdrant port %q: %w", portStr, err)
	}
	cfg.Host = host
	cfg.Port = port
	return cfg, nil
}
