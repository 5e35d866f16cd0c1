package api

import (
	"errors"
	"net/http"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/papercomputeco/jigyasa/pkg/agent"
	"github.com/papercomputeco/jigyasa/pkg/notebook"
)

// Server is the API server for the jigyasa research notebook.
type Server struct {
	config Config
	agents *agent.Agents
	notes  *notebook.Notebook
	logger *zap.Logger
	app    *fiber.App
}

// NewServer creates a new API server.
// The notebook is injected so it can be shared with the MCP server and the
// directory watcher.
func NewServer(config Config, agents *agent.Agents, notes *notebook.Notebook, logger *zap.Logger) (*Server, error) {
	if agents == nil {
		return nil, errors.New("agents are required")
	}
	if notes == nil {
		return nil, errors.New("notebook is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.BodyLimit <= 0 {
		config.BodyLimit = DefaultBodyLimit
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		BodyLimit:             config.BodyLimit,
	})

	s := &Server{
		config: config,
		agents: agents,
		notes:  notes,
		logger: logger,
		app:    app,
	}

	app.Get("/ping", s.handlePing)

	app.Get("/notes", s.handleListNotes)
	app.Post("/add-note", s.handleAddNote)
	app.Post("/add-manual-note", s.handleAddManualNote)

	app.Post("/ask", s.handleAsk)
	app.Post("/check-contradictions", s.handleCheckContradictions)
	app.Post("/verify", s.handleVerify)
	app.Post("/extract-data", s.handleExtractData)
	app.Post("/guide-research", s.handleGuideResearch)
	app.Post("/summarize-url", s.handleSummarizeURL)
	app.Post("/xray", s.handleXRay)

	app.Post("/calculate-future-value", s.handleFutureValue)
	app.Post("/calculate-compound-interest", s.handleCompoundInterest)
	app.Post("/calculate-npv", s.handleNPV)
	app.Post("/calculate-break-even", s.handleBreakEven)
	app.Post("/calculate-wacc", s.handleWACC)
	app.Post("/calculate-dcf", s.handleDCF)

	app.Post("/get-company-data", s.handleGetCompanyData)
	app.Post("/analyze-company", s.handleAnalyzeCompany)

	if config.MCPHandler != nil {
		app.All("/mcp", adaptor.HTTPHandler(config.MCPHandler))
	}

	return s, nil
}

// Run starts the API server on the configured address.
func (s *Server) Run() error {
	s.logger.Info("starting API server",
		zap.String("listen", s.config.ListenAddr),
	)
	return s.app.Listen(s.config.ListenAddr)
}

// Handler exposes the server as a net/http handler.
func (s *Server) Handler() http.Handler {
	return adaptor.FiberApp(s.app)
}

// Shutdown gracefully shuts down the API server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
