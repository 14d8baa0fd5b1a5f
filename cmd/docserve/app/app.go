// Package app wires configuration, logging and commands for the docserve
// CLI.
package app

import (
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/agentstation/docserve/internal/server"
)

// App represents the docserve application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger
	stdout io.Writer

	// Set by WithConfig and WithLogger; setupCommand leaves them alone.
	fixedConfig bool
	fixedLogger bool
}

// New creates a new App instance with the given version information.
// Configuration is resolved once flags are parsed; until then the app runs
// with defaults.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
		config:  DefaultConfig(),
		stdout:  os.Stdout,
	}

	logger := NewLogger(app.config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// Stdout returns the writer for command output.
func (a *App) Stdout() io.Writer {
	return a.stdout
}

// ServerConfig returns the server settings from the application config.
func (a *App) ServerConfig() server.Config {
	c := a.config
	return server.Config{
		Host:            c.Host,
		Port:            c.Port,
		Root:            c.Root,
		ReadTimeout:     c.ReadTimeout,
		WriteTimeout:    c.WriteTimeout,
		IdleTimeout:     c.IdleTimeout,
		ShutdownTimeout: c.ShutdownTimeout,
	}
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		a.fixedConfig = true
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		a.fixedLogger = true
		return nil
	}
}

// WithStdout redirects command output.
func WithStdout(w io.Writer) Option {
	return func(a *App) error {
		a.stdout = w
		return nil
	}
}
