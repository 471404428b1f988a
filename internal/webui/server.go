// Package webui serves the local single-page UI for the watermarking demo.
// The page is embedded in the binary and talks to same-origin paths, which
// the server reverse-proxies to the watermark backend, so the browser flow
// works without CORS configuration on the backend side.
package webui

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/wmlab/robustwm/internal/config"
	"github.com/wmlab/robustwm/internal/constants"
	"github.com/wmlab/robustwm/internal/pipeline"
)

// Server is the local web UI server.
type Server struct {
	cfg        *config.AppConfig
	ctl        *pipeline.Controller
	router     chi.Router
	httpServer *http.Server
}

// NewServer creates a web UI server with routes configured against the
// backend named in the configuration. The controller backs the download
// route with the session's currently displayed image.
func NewServer(cfg *config.AppConfig, ctl *pipeline.Controller) (*Server, error) {
	s := &Server{cfg: cfg, ctl: ctl}

	if err := s.setupRoutes(); err != nil {
		return nil, fmt.Errorf("failed to set up routes: %w", err)
	}

	s.httpServer = &http.Server{
		Addr:         cfg.WebUI.ServerAddress(),
		Handler:      s.router,
		ReadTimeout:  cfg.WebUI.ReadTimeout,
		WriteTimeout: cfg.WebUI.WriteTimeout,
		IdleTimeout:  constants.DefaultIdleTimeout,
	}

	return s, nil
}

// Start starts the HTTP server and blocks until a server error or a
// shutdown signal, then shuts down gracefully.
func (s *Server) Start() error {
	serverErrors := make(chan error, 1)

	go func() {
		log.Info().
			Str("address", s.cfg.WebUI.ServerAddress()).
			Str("backend", s.cfg.Backend.BaseURL).
			Msg("Starting web UI")

		serverErrors <- s.httpServer.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info().
			Str("signal", sig.String()).
			Msg("Shutdown signal received")

		ctx, cancel := context.WithTimeout(context.Background(), s.cfg.WebUI.ShutdownTimeout)
		defer cancel()

		if err := s.Shutdown(ctx); err != nil {
			if closeErr := s.httpServer.Close(); closeErr != nil {
				log.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the server, waiting for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	log.Info().Msg("Web UI stopped gracefully")
	return nil
}
