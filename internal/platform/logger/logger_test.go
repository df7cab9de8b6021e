package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromContext(t *testing.T) {
	t.Parallel()

	log := slog.Default().With(slog.String("component", "test"))
	ctx := WithLogger(context.Background(), log)
	assert.Same(t, log, FromContext(ctx))

	assert.Same(t, slog.Default(), FromContext(context.Background()))
}

func TestFromContextOrDefault(t *testing.T) {
	t.Parallel()

	def := slog.Default().With(slog.String("component", "fallback"))
	assert.Same(t, def, FromContextOrDefault(context.Background(), def))
	assert.Same(t, slog.Default(), FromContextOrDefault(context.Background(), nil))

	carried := slog.Default().With(slog.String("component", "carried"))
	ctx := WithLogger(context.Background(), carried)
	assert.Same(t, carried, FromContextOrDefault(ctx, def))
}
