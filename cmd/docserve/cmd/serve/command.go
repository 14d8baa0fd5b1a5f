// Package serve starts the document server.
package serve

import (
	"context"
	"fmt"
	"io"
	"net"

	"github.com/rs/zerolog"

	"github.com/agentstation/docserve/internal/server"
	"github.com/agentstation/docserve/pkg/logging"
)

// AppContext defines what the serve command needs from the app.
type AppContext interface {
	ServerConfig() server.Config
	Logger() *zerolog.Logger
	Stdout() io.Writer
}

// Run serves until ctx is cancelled. Once the listener is bound it prints
// a single "Serving on <url>" line to the app's stdout; everything else goes
// to the logger.
func Run(ctx context.Context, app AppContext) error {
	cfg := app.ServerConfig()
	logger := logging.FromContext(logging.WithOperation(logging.WithLogger(ctx, app.Logger()), "serve"))

	logger.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Str("root", cfg.Root).
		Msg("Starting document server")

	srv, err := server.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	ln, err := srv.Listen(ctx)
	if err != nil {
		_ = srv.Shutdown(context.Background())
		return err
	}

	// Port 0 asks the kernel for a free port; show the one we got.
	if tcp, ok := ln.Addr().(*net.TCPAddr); ok {
		cfg.Port = tcp.Port
	}
	if _, err := fmt.Fprintf(app.Stdout(), "Serving on %s\n", cfg.DisplayURL()); err != nil {
		logger.Warn().Err(err).Msg("Failed to write startup line")
	}

	return srv.Serve(ctx, ln)
}
