// Package server exposes the research services over REST and MCP.
package server

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/bobmcallan/vantage/internal/app"
	"github.com/bobmcallan/vantage/internal/common"
)

// MCPPath is where the streamable HTTP MCP endpoint is mounted.
const MCPPath = "/mcp"

// Research notes and uncached analyses fan out to several upstream calls.
const (
	readTimeout  = 30 * time.Second
	writeTimeout = 5 * time.Minute
	idleTimeout  = 60 * time.Second
)

// Server serves the REST API and the MCP endpoint from one mux.
type Server struct {
	app          *app.App
	server       *http.Server
	mux          *http.ServeMux
	logger       *common.Logger
	shutdownChan chan struct{}
}

// SetShutdownChannel sets the channel signalled by POST /api/shutdown.
func (s *Server) SetShutdownChannel(ch chan struct{}) {
	s.shutdownChan = ch
}

// NewServer registers the REST routes, mounts MCP when the App carries an MCP server,
// and wraps everything in the middleware chain.
func NewServer(a *app.App) *Server {
	s := &Server{
		app:    a,
		logger: a.Logger,
		mux:    http.NewServeMux(),
	}

	s.registerRoutes(s.mux)
	if a.MCPServer != nil {
		s.mux.Handle(MCPPath, s.mcpHandler())
	}

	s.server = &http.Server{
		Addr:         net.JoinHostPort(a.Config.Server.Host, strconv.Itoa(a.Config.Server.Port)),
		Handler:      applyMiddleware(s.mux, a.Logger, a.Config),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return s
}

// Handler returns the middleware-wrapped handler.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.server.Addr
}

// Start listens and serves until Shutdown. It returns http.ErrServerClosed after a clean shutdown.
func (s *Server) Start() error {
	s.logger.Info().
		Str("addr", s.server.Addr).
		Bool("mcp", s.app.MCPServer != nil).
		Bool("auth", s.app.Config.Auth.JWTSecret != "").
		Msg("Starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown stops accepting requests and waits for in-flight ones until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("Stopping HTTP server")
	return s.server.Shutdown(ctx)
}
