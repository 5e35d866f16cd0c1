// Package api provides the HTTP API server for the research notebook, the
// agents, the financial calculators and company analysis.
package api

import (
	"net/http"

	"github.com/papercomputeco/jigyasa/pkg/market"
)

// DefaultBodyLimit bounds request bodies, including PDF uploads.
const DefaultBodyLimit = 32 << 20

// Config is the API server configuration.
type Config struct {
	// ListenAddr is the address to listen on (e.g., ":8000")
	ListenAddr string

	// BodyLimit is the maximum request body size in bytes.
	BodyLimit int

	// Market looks up company data. Optional, the company endpoints return
	// 503 without it.
	Market market.Provider

	// MCPHandler, if set, is mounted at /mcp.
	MCPHandler http.Handler
}
