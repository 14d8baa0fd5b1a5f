// Package handlers provides the HTTP handlers for docserve.
package handlers

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/agentstation/docserve/internal/docroot"
	"github.com/agentstation/docserve/pkg/logging"
)

// Documents serves a directory tree. Markdown files are rendered to HTML
// pages; every other request is delegated to a static file server over the
// same confined root.
type Documents struct {
	root     *docroot.Root
	fallback http.Handler
	logger   *zerolog.Logger
}

// Option configures a Documents handler.
type Option func(*Documents)

// WithFallback replaces the static file server used for non-markdown paths.
func WithFallback(h http.Handler) Option {
	return func(d *Documents) {
		d.fallback = h
	}
}

// New creates a Documents handler over root. A nil logger discards the
// handler's own logs; a logger on the request context still wins.
func New(root *docroot.Root, logger *zerolog.Logger, opts ...Option) *Documents {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	d := &Documents{
		root:     root,
		fallback: http.FileServerFS(root.FS()),
		logger:   logger,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}
