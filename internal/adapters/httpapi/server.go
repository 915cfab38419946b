package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"ewaste-lifecycle-service/internal/config"

	"github.com/rs/zerolog"
)

// Server serves the REST API
type Server struct {
	httpServer *http.Server
	logger     zerolog.Logger
}

type ServerParams struct {
	Config   *config.Config
	Handlers *Handlers
	Logger   zerolog.Logger
}

// NewServer creates a new REST API server
func NewServer(params ServerParams) *Server {
	addr := fmt.Sprintf("%s:%s", params.Config.Server.Host, params.Config.Server.Port)

	return &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      InitRoutes(params.Handlers),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: params.Logger.With().Str("component", "http_server").Logger(),
	}
}

// Start begins serving requests and blocks until the server stops
func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.httpServer.Addr).Msg("Starting HTTP server")

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server failed: %w", err)
	}
	return nil
}

// Stop gracefully shuts down the server, draining in-flight requests
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info().Msg("Stopping HTTP server")
	return s.httpServer.Shutdown(ctx)
}
