package server

import (
	"net/http"

	"github.com/agentstation/docserve/internal/server/handlers"
	"github.com/agentstation/docserve/internal/server/middleware"
)

// setupRouter creates the HTTP handler with routes and middleware.
func (s *Server) setupRouter() http.Handler {
	mux := http.NewServeMux()

	// GET also matches HEAD; any other method gets 405 with an Allow header.
	mux.Handle("GET /", handlers.New(s.root, s.logger))

	return middleware.Chain(
		middleware.Recovery(s.logger),
		middleware.Logger(s.logger),
	)(mux)
}
