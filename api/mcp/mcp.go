// Package mcp provides an MCP (Model Context Protocol) server exposing the
// research agents and the notebook as tools.
package mcp

import (
	"errors"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/papercomputeco/jigyasa/pkg/agent"
	"github.com/papercomputeco/jigyasa/pkg/notebook"
	"github.com/papercomputeco/jigyasa/pkg/utils"
)

type Config struct {
	// Agents answers every tool call
	Agents *agent.Agents

	// Notes is the notebook shared with the HTTP API
	Notes *notebook.Notebook

	// Noop for empty MCP server
	Noop bool

	// Logger is the configured zap logger
	Logger *zap.Logger
}

type Server struct {
	config    Config
	mcpServer *mcp.Server
	handler   *mcp.StreamableHTTPHandler
}

// NewServer creates a new MCP server with the research tools.
func NewServer(c Config) (*Server, error) {
	s := &Server{
		config: c,
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "jigyasa",
			Version: utils.Version,
		},
		&mcp.ServerOptions{},
	)

	// A noop server serves /mcp with no tools configured (i.e., MCP
	// capabilities are disabled).
	if !c.Noop {
		if c.Agents == nil {
			return nil, errors.New("agents are required")
		}
		if c.Notes == nil {
			return nil, errors.New("notebook is required")
		}
		if c.Logger == nil {
			return nil, errors.New("logger is required")
		}

		mcp.AddTool(mcpServer, &mcp.Tool{Name: askToolName, Description: askDescription}, s.handleAsk)
		mcp.AddTool(mcpServer, &mcp.Tool{Name: checkToolName, Description: checkDescription}, s.handleCheckContradictions)
		mcp.AddTool(mcpServer, &mcp.Tool{Name: extractToolName, Description: extractDescription}, s.handleExtractData)
		mcp.AddTool(mcpServer, &mcp.Tool{Name: guideToolName, Description: guideDescription}, s.handleGuideResearch)
		mcp.AddTool(mcpServer, &mcp.Tool{Name: summarizeToolName, Description: summarizeDescription}, s.handleSummarizeURL)
		mcp.AddTool(mcpServer, &mcp.Tool{Name: addNoteToolName, Description: addNoteDescription}, s.handleAddNote)
	}

	s.mcpServer = mcpServer

	// Create a streamable HTTP net/http handler for stateless operations
	s.handler = mcp.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcp.Server {
			return mcpServer
		},
		&mcp.StreamableHTTPOptions{
			Stateless: true,
		},
	)

	return s, nil
}

// Handler returns the HTTP handler for the MCP server.
func (s *Server) Handler() http.Handler {
	return s.handler
}
