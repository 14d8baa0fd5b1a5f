package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/docserve/pkg/constants"
)

// Config selects the level, encoding and destination of a logger.
type Config struct {
	Level string // trace, debug, info, warn, error; anything else means info

	// Format is json, console or auto. Auto picks console when the output
	// is a terminal.
	Format string

	// Output is stderr, stdout, discard or a file path opened for append.
	Output string

	TimeFormat string // kitchen, rfc3339 or a Go layout
	NoColor    bool
	AddCaller  bool
}

// NewLogger builds a logger from cfg. The zerolog global level is set to the
// same level so events below it are dropped before encoding.
func NewLogger(cfg Config) zerolog.Logger {
	level := levelOf(cfg.Level)
	zerolog.SetGlobalLevel(level)

	out, terminal := openOutput(cfg.Output)
	var w io.Writer = out
	if useConsole(cfg.Format, terminal) {
		w = zerolog.ConsoleWriter{Out: out, TimeFormat: timeLayout(cfg.TimeFormat), NoColor: cfg.NoColor}
	}

	ctx := zerolog.New(w).Level(level).With().Timestamp()
	if cfg.AddCaller || level <= zerolog.DebugLevel {
		ctx = ctx.Caller()
	}
	return ctx.Logger()
}

// openOutput resolves an output name. A file that cannot be opened falls
// back to stderr.
func openOutput(name string) (io.Writer, bool) {
	switch strings.ToLower(name) {
	case "", "stderr":
		return os.Stderr, isTerminal(os.Stderr)
	case "stdout":
		return os.Stdout, isTerminal(os.Stdout)
	case "discard", "none":
		return io.Discard, false
	}
	f, err := os.OpenFile(name, os.O_CREATE|os.O_APPEND|os.O_WRONLY, constants.FilePermissions)
	if err != nil {
		return os.Stderr, isTerminal(os.Stderr)
	}
	return f, false
}

func useConsole(format string, terminal bool) bool {
	switch strings.ToLower(format) {
	case "console", "pretty":
		return true
	case "", "auto":
		return terminal
	default:
		return false
	}
}

func levelOf(name string) zerolog.Level {
	switch strings.ToLower(name) {
	case "warning":
		return zerolog.WarnLevel
	case "off", "none":
		return zerolog.Disabled
	}
	l, err := zerolog.ParseLevel(strings.ToLower(name))
	if err != nil || name == "" {
		return zerolog.InfoLevel
	}
	return l
}

func timeLayout(name string) string {
	switch strings.ToLower(name) {
	case "", "kitchen":
		return time.Kitchen
	case "rfc3339":
		return time.RFC3339
	case "rfc3339nano":
		return time.RFC3339Nano
	}
	if strings.Contains(name, "2006") || strings.Contains(name, "15:04") {
		return name
	}
	return time.Kitchen
}
