package logging_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/docserve/pkg/logging"
)

func TestFromContext(t *testing.T) {
	assert.Same(t, logging.Default(), logging.FromContext(context.Background()))
	//nolint:staticcheck // nil context is handled explicitly
	assert.Same(t, logging.Default(), logging.FromContext(nil))

	tl := logging.NewTestLogger(t)
	ctx := logging.WithLogger(context.Background(), tl.Logger)
	assert.Same(t, tl.Logger, logging.FromContext(ctx))

	ctx = logging.WithLogger(context.Background(), nil)
	assert.Same(t, logging.Default(), logging.FromContext(ctx))
}

func TestFromContextOr(t *testing.T) {
	fallback := logging.NewNopLogger()
	assert.Same(t, fallback, logging.FromContextOr(context.Background(), fallback))
	assert.Same(t, logging.Default(), logging.FromContextOr(context.Background(), nil))

	tl := logging.NewTestLogger(t)
	ctx := logging.WithLogger(context.Background(), tl.Logger)
	assert.Same(t, tl.Logger, logging.FromContextOr(ctx, fallback))
}

func TestContextFields(t *testing.T) {
	tl := logging.NewTestLogger(t)
	ctx := logging.WithLogger(context.Background(), tl.Logger)
	ctx = logging.WithPath(ctx, "notes.md")
	ctx = logging.WithRoot(ctx, "/srv/docs")
	ctx = logging.WithOperation(ctx, "list")
	ctx = logging.WithRequestID(ctx, "req-42")

	logging.FromContext(ctx).Info().Msg("tagged")

	tl.AssertContains(t, `"resolved_path":"notes.md"`)
	tl.AssertContains(t, `"root":"/srv/docs"`)
	tl.AssertContains(t, `"operation":"list"`)
	tl.AssertContains(t, `"request_id":"req-42"`)
	tl.AssertCount(t, 1)
}
