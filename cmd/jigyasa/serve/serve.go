// Package servecmder provides the serve command that runs the research API,
// the MCP endpoint and the optional directory ingester.
package servecmder

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/papercomputeco/jigyasa/api"
	mcpserver "github.com/papercomputeco/jigyasa/api/mcp"
	"github.com/papercomputeco/jigyasa/pkg/agent"
	"github.com/papercomputeco/jigyasa/pkg/chunker"
	"github.com/papercomputeco/jigyasa/pkg/config"
	"github.com/papercomputeco/jigyasa/pkg/credentials"
	embeddingutils "github.com/papercomputeco/jigyasa/pkg/embeddings/utils"
	"github.com/papercomputeco/jigyasa/pkg/eventstream"
	"github.com/papercomputeco/jigyasa/pkg/eventstream/kafka"
	"github.com/papercomputeco/jigyasa/pkg/eventstream/nop"
	"github.com/papercomputeco/jigyasa/pkg/extract"
	"github.com/papercomputeco/jigyasa/pkg/ingest"
	"github.com/papercomputeco/jigyasa/pkg/llm"
	"github.com/papercomputeco/jigyasa/pkg/logger"
	"github.com/papercomputeco/jigyasa/pkg/market"
	"github.com/papercomputeco/jigyasa/pkg/notebook"
	vectorutils "github.com/papercomputeco/jigyasa/pkg/vector/utils"
	"github.com/papercomputeco/jigyasa/pkg/worker"
)

type serveCommander struct {
	cfg       *config.Config
	configDir string
	debug     bool
	noMCP     bool
	logJSON   bool
	logger    *zap.Logger

	// flag targets, read back through viper
	listen         string
	llmProvider    string
	llmModel       string
	llmTarget      string
	llmTimeout     uint
	embedProvider  string
	embedTarget    string
	embedModel     string
	embedDims      uint
	vectorProvider string
	vectorTarget   string
	chunkSize      uint
	chunkOverlap   uint
	articleLimit   uint
	eventsProvider string
	eventsBrokers  string
	eventsTopic    string
	marketTarget   string
	watchDir       string
}

var stringFlags = []string{
	config.FlagAPIListen,
	config.FlagLLMProvider,
	config.FlagLLMModel,
	config.FlagLLMTarget,
	config.FlagEmbeddingProv,
	config.FlagEmbeddingTgt,
	config.FlagEmbeddingModel,
	config.FlagVectorStoreProv,
	config.FlagVectorStoreTgt,
	config.FlagEventsProvider,
	config.FlagEventsBrokers,
	config.FlagEventsTopic,
	config.FlagMarketTarget,
	config.FlagWatchDir,
}

var uintFlags = []string{
	config.FlagLLMTimeout,
	config.FlagEmbeddingDims,
	config.FlagChunkSize,
	config.FlagChunkOverlap,
	config.FlagArticleLimit,
}

const serveLongDesc string = `Run the Jigyasa research server.

Serves the notebook, the research agents, the financial calculators and the
company data endpoints over HTTP, with an MCP endpoint at /mcp.

Settings come from flags, JIGYASA_* environment variables and config.toml,
in that order of precedence.

Examples:
  jigyasa serve
  jigyasa serve --llm-provider openai --llm-model gpt-4o-mini
  jigyasa serve --vector-store-provider qdrant --vector-store-target localhost:6334
  jigyasa serve --events-provider kafka --events-brokers localhost:9092
  jigyasa serve --watch-dir ./research`

const serveShortDesc string = "Run the Jigyasa research server"

func NewServeCmd() *cobra.Command {
	return newServeCommand(&serveCommander{})
}

func newServeCommand(cmder *serveCommander) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: serveShortDesc,
		Long:  serveLongDesc,
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			cmder.configDir, _ = cmd.Flags().GetString("config-dir")

			v, err := config.InitViper(cmder.configDir)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			config.BindRegisteredFlags(v, cmd, config.Flags, append(stringFlags, uintFlags...))
			cmder.cfg = config.FromViper(v)
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %w", err)
			}
			return cmder.run(cmd.Context())
		},
	}

	config.AddStringFlag(cmd, config.Flags, config.FlagAPIListen, &cmder.listen)
	config.AddStringFlag(cmd, config.Flags, config.FlagLLMProvider, &cmder.llmProvider)
	config.AddStringFlag(cmd, config.Flags, config.FlagLLMModel, &cmder.llmModel)
	config.AddStringFlag(cmd, config.Flags, config.FlagLLMTarget, &cmder.llmTarget)
	config.AddUintFlag(cmd, config.Flags, config.FlagLLMTimeout, &cmder.llmTimeout)
	config.AddStringFlag(cmd, config.Flags, config.FlagEmbeddingProv, &cmder.embedProvider)
	config.AddStringFlag(cmd, config.Flags, config.FlagEmbeddingTgt, &cmder.embedTarget)
	config.AddStringFlag(cmd, config.Flags, config.FlagEmbeddingModel, &cmder.embedModel)
	config.AddUintFlag(cmd, config.Flags, config.FlagEmbeddingDims, &cmder.embedDims)
	config.AddStringFlag(cmd, config.Flags, config.FlagVectorStoreProv, &cmder.vectorProvider)
	config.AddStringFlag(cmd, config.Flags, config.FlagVectorStoreTgt, &cmder.vectorTarget)
	config.AddUintFlag(cmd, config.Flags, config.FlagChunkSize, &cmder.chunkSize)
	config.AddUintFlag(cmd, config.Flags, config.FlagChunkOverlap, &cmder.chunkOverlap)
	config.AddUintFlag(cmd, config.Flags, config.FlagArticleLimit, &cmder.articleLimit)
	config.AddStringFlag(cmd, config.Flags, config.FlagEventsProvider, &cmder.eventsProvider)
	config.AddStringFlag(cmd, config.Flags, config.FlagEventsBrokers, &cmder.eventsBrokers)
	config.AddStringFlag(cmd, config.Flags, config.FlagEventsTopic, &cmder.eventsTopic)
	config.AddStringFlag(cmd, config.Flags, config.FlagMarketTarget, &cmder.marketTarget)
	config.AddStringFlag(cmd, config.Flags, config.FlagWatchDir, &cmder.watchDir)
	cmd.Flags().BoolVar(&cmder.noMCP, "no-mcp", false, "Serve /mcp without any tools")
	cmd.Flags().BoolVar(&cmder.logJSON, "log-json", false, "Write JSON log records instead of console output")

	return cmd
}

func (c *serveCommander) run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	c.logger = logger.New(logger.WithDebug(c.debug), logger.WithJSON(c.logJSON))
	defer func() { _ = c.logger.Sync() }()

	credMgr, err := credentials.NewManager(c.configDir)
	if err != nil {
		c.logger.Warn("credentials unavailable, using environment only", zap.Error(err))
		credMgr = nil
	}

	publisher, err := c.newPublisher()
	if err != nil {
		return err
	}
	pool, err := worker.NewPool(&worker.Config{
		Publisher: publisher,
		Logger:    c.logger,
	})
	if err != nil {
		return fmt.Errorf("creating event worker pool: %w", err)
	}
	defer func() {
		pool.Close()
		if err := publisher.Close(); err != nil {
			c.logger.Warn("closing event publisher", zap.Error(err))
		}
	}()

	agents, closeIndex, err := c.newAgents(ctx, credMgr, pool)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeIndex(); err != nil {
			c.logger.Warn("closing vector store", zap.Error(err))
		}
	}()

	notes := notebook.New(func(note string, count int) {
		pool.Enqueue(worker.Job{Note: eventstream.NewNoteAddedEvent("notebook", note, count)})
	})

	mcpServer, err := mcpserver.NewServer(mcpserver.Config{
		Agents: agents,
		Notes:  notes,
		Noop:   c.noMCP,
		Logger: c.logger,
	})
	if err != nil {
		return fmt.Errorf("creating MCP server: %w", err)
	}

	apiServer, err := api.NewServer(api.Config{
		ListenAddr: c.cfg.API.Listen,
		Market: market.NewYahoo(market.YahooConfig{
			BaseURL: c.cfg.Market.Target,
			Logger:  c.logger,
		}),
		MCPHandler: mcpServer.Handler(),
	}, agents, notes, c.logger)
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}

	// Channel to capture errors from goroutines
	errChan := make(chan error, 2)

	if c.cfg.Ingest.WatchDir != "" {
		watcher, err := ingest.New(ingest.Config{
			Dir: c.cfg.Ingest.WatchDir,
			Sink: func(path, text string) {
				count := notes.AddManual(text)
				c.logger.Debug("ingested note", zap.String("path", path), zap.Int("note_count", count))
			},
			Logger: c.logger,
		})
		if err != nil {
			return fmt.Errorf("creating ingester: %w", err)
		}
		added, err := watcher.Scan(ctx)
		if err != nil {
			return fmt.Errorf("scanning ingest directory: %w", err)
		}
		c.logger.Info("ingested existing files", zap.Int("notes", added))

		go func() {
			if err := watcher.Run(ctx); err != nil {
				errChan <- fmt.Errorf("ingest error: %w", err)
			}
		}()
	}

	c.logger.Info("starting jigyasa server",
		zap.String("listen", c.cfg.API.Listen),
		zap.String("llm_provider", c.cfg.LLM.Provider),
		zap.String("embedding_provider", c.cfg.Embedding.Provider),
		zap.String("vector_store", c.cfg.VectorStore.Provider),
		zap.String("events", c.cfg.Events.Provider),
	)

	go func() {
		if err := apiServer.Run(); err != nil {
			errChan <- fmt.Errorf("API server error: %w", err)
		}
	}()

	// Wait for interrupt signal or error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case err := <-errChan:
		cancel()
		_ = apiServer.Shutdown()
		return err
	case sig := <-sigChan:
		c.logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
		cancel()
		return apiServer.Shutdown()
	}
}

// newAgents builds the generation, embedding and retrieval stack. The
// returned closer releases any connection held by the vector store.
func (c *serveCommander) newAgents(ctx context.Context, credMgr *credentials.Manager, pool *worker.Pool) (*agent.Agents, func() error, error) {
	generate, err := llm.NewCaller(ctx, llm.CallerConfig{
		Provider: c.cfg.LLM.Provider,
		Model:    c.cfg.LLM.Model,
		BaseURL:  c.cfg.LLM.Target,
		CredMgr:  credMgr,
		Logger:   c.logger,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("creating model caller: %w", err)
	}

	embedder, err := embeddingutils.NewEmbedder(ctx, &embeddingutils.NewEmbedderOpts{
		ProviderType: c.cfg.Embedding.Provider,
		TargetURL:    c.cfg.Embedding.Target,
		Model:        c.cfg.Embedding.Model,
		APIKey:       credentials.Resolve(credMgr, c.cfg.Embedding.Provider, ""),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("creating embedder: %w", err)
	}

	factory, closeIndex, err := vectorutils.NewIndexFactory(ctx, &vectorutils.NewIndexFactoryOpts{
		ProviderType: c.cfg.VectorStore.Provider,
		TargetURL:    c.cfg.VectorStore.Target,
		Dimensions:   c.cfg.Embedding.Dimensions,
		Logger:       c.logger,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("creating vector store: %w", err)
	}

	agents, err := agent.New(agent.Config{
		Embedder:     embedder,
		IndexFactory: factory,
		Generate:     generate,
		Extractor:    extract.NewWeb(extract.WebConfig{Logger: c.logger}),
		Chunker: chunker.New(
			chunker.WithMaxSize(int(c.cfg.Retrieval.ChunkSize)),
			chunker.WithOverlap(int(c.cfg.Retrieval.ChunkOverlap)),
		),
		Logger:          c.logger,
		ArticleLimit:    int(c.cfg.Retrieval.ArticleLimit),
		GenerateTimeout: time.Duration(c.cfg.LLM.TimeoutSeconds) * time.Second,
		OnComplete:      completionPublisher(pool),
	})
	if err != nil {
		_ = closeIndex()
		return nil, nil, fmt.Errorf("creating agents: %w", err)
	}

	return agents, closeIndex, nil
}

// completionPublisher turns finished agent operations into events.
func completionPublisher(pool *worker.Pool) agent.CompletionFunc {
	return func(op string, r agent.Result, elapsed time.Duration) {
		run := eventstream.AgentRunMeta{
			Operation:  op,
			Kind:       string(r.Kind),
			Failed:     r.Failed(),
			DurationMs: elapsed.Milliseconds(),
		}
		if r.Err != nil {
			run.Error = r.Err.Error()
		}
		pool.Enqueue(worker.Job{Agent: eventstream.NewAgentCompletedEvent("agent", run)})
	}
}

func (c *serveCommander) newPublisher() (eventstream.Publisher, error) {
	switch c.cfg.Events.Provider {
	case "nop", "":
		return nop.NewPublisher(), nil
	case "kafka":
		p, err := kafka.NewPublisher(kafka.Config{
			Brokers: splitBrokers(c.cfg.Events.Brokers),
			Topic:   c.cfg.Events.Topic,
			Logger:  c.logger,
		})
		if err != nil {
			return nil, fmt.Errorf("creating kafka publisher: %w", err)
		}
		return p, nil
	default:
		return nil, errors.New("unsupported events provider: " + c.cfg.Events.Provider)
	}
}

func splitBrokers(s string) []string {
	var brokers []string
	for b := range strings.SplitSeq(s, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
