// Package logging builds the zerolog loggers docserve writes and carries
// them through request contexts. Logs always go to stderr or a file; stdout
// belongs to command output and the startup line.
package logging

import (
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var current atomic.Pointer[zerolog.Logger]

func init() {
	l := bootstrap()
	current.Store(&l)
}

// bootstrap is the logger in effect until the CLI has parsed its flags.
func bootstrap() zerolog.Logger {
	var w io.Writer = os.Stderr
	if isTerminal(os.Stderr) {
		w = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen, NoColor: os.Getenv("NO_COLOR") != ""}
	}
	return zerolog.New(w).Level(zerolog.InfoLevel).With().Timestamp().Logger()
}

// Default returns the process-wide logger. Code without a request or command
// context falls back to it.
func Default() *zerolog.Logger {
	return current.Load()
}

// SetDefault replaces the process-wide logger, including the one behind the
// zerolog/log package.
func SetDefault(logger *zerolog.Logger) {
	if logger == nil {
		return
	}
	current.Store(logger)
	log.Logger = *logger
}

func isTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
