package logging

import (
	"context"

	"github.com/rs/zerolog"
)

type loggerKey struct{}

// WithLogger attaches logger to ctx. A nil logger attaches the default.
func WithLogger(ctx context.Context, logger *zerolog.Logger) context.Context {
	if logger == nil {
		logger = Default()
	}
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext returns the logger attached to ctx, or the default logger.
func FromContext(ctx context.Context) *zerolog.Logger {
	return FromContextOr(ctx, nil)
}

// FromContextOr returns the logger attached to ctx, or fallback when there
// is none. A nil fallback means the default logger.
func FromContextOr(ctx context.Context, fallback *zerolog.Logger) *zerolog.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(loggerKey{}).(*zerolog.Logger); ok && logger != nil {
			return logger
		}
	}
	if fallback == nil {
		return Default()
	}
	return fallback
}

// WithRequestID tags the context logger with the request ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return withStr(ctx, "request_id", id)
}

// WithPath tags the context logger with the resolved document path.
func WithPath(ctx context.Context, path string) context.Context {
	return withStr(ctx, "resolved_path", path)
}

// WithRoot tags the context logger with the serving root.
func WithRoot(ctx context.Context, root string) context.Context {
	return withStr(ctx, "root", root)
}

// WithOperation tags the context logger with the command being run.
func WithOperation(ctx context.Context, op string) context.Context {
	return withStr(ctx, "operation", op)
}

func withStr(ctx context.Context, key, value string) context.Context {
	l := FromContext(ctx).With().Str(key, value).Logger()
	return WithLogger(ctx, &l)
}
