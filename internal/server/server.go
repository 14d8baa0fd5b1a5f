// Package server provides the HTTP server for docserve.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/docserve/internal/docroot"
)

// Server serves a directory of documents over HTTP.
type Server struct {
	config     Config
	root       *docroot.Root
	logger     *zerolog.Logger
	handler    http.Handler
	httpServer *http.Server

	shutdownOnce sync.Once
	shutdownErr  error
}

// New creates a new server instance with the given configuration. The
// serving root is opened immediately so a missing directory fails here
// rather than on the first request.
func New(cfg Config, logger *zerolog.Logger) (*Server, error) {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Debug().Str("root", cfg.Root).Msg("Opening serving root")
	root, err := docroot.Open(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("opening serving root: %w", err)
	}

	s := &Server{
		config: cfg,
		root:   root,
		logger: logger,
	}
	s.handler = s.setupRouter()
	s.httpServer = &http.Server{
		Addr:         cfg.Addr(),
		Handler:      s.handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	logger.Debug().
		Str("addr", cfg.Addr()).
		Str("root", root.Dir()).
		Dur("read_timeout", cfg.ReadTimeout).
		Dur("write_timeout", cfg.WriteTimeout).
		Dur("idle_timeout", cfg.IdleTimeout).
		Msg("Server instance created")
	return s, nil
}

// Handler returns the configured http.Handler with middleware chain applied.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Root returns the serving root.
func (s *Server) Root() *docroot.Root {
	return s.root
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.config.Addr()
}

// URL returns the human-readable address of the server.
func (s *Server) URL() string {
	return s.config.DisplayURL()
}

// Listen binds the configured address. Port 0 picks a free port; the
// listener's address reports which.
func (s *Server) Listen(ctx context.Context) (net.Listener, error) {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.Addr())
	if err != nil {
		return nil, fmt.Errorf("listening on %s: %w", s.Addr(), err)
	}
	return ln, nil
}

// ListenAndServe listens on the configured address and serves until ctx is
// cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := s.Listen(ctx)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully within the configured shutdown timeout. It returns nil after a
// clean shutdown.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	serverErr := make(chan error, 1)

	go func() {
		s.logger.Info().
			Str("addr", ln.Addr().String()).
			Str("root", s.root.Dir()).
			Msg("HTTP server listening")

		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- fmt.Errorf("server failed: %w", err)
		}
		close(serverErr)
	}()

	select {
	case err, ok := <-serverErr:
		if ok {
			_ = s.Shutdown(context.Background())
			return err
		}
		return nil
	case <-ctx.Done():
		s.logger.Info().Msg("Shutdown signal received via context")

		// The parent context is already cancelled.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
		defer cancel()

		if err := s.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		s.logger.Info().Msg("Server stopped gracefully")
		return nil
	}
}

// Shutdown stops accepting connections, waits for in-flight requests and
// releases the serving root. Calls after the first return the first result.
func (s *Server) Shutdown(ctx context.Context) error {
	s.shutdownOnce.Do(func() {
		s.logger.Debug().Msg("Shutting down HTTP server")
		err := s.httpServer.Shutdown(ctx)
		if closeErr := s.root.Close(); err == nil {
			err = closeErr
		}
		s.shutdownErr = err
	})
	return s.shutdownErr
}
