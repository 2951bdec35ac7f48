package contextx_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"money_saver/pkg/contextx"
)

func TestLogger(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	var (
		nilLogger *slog.Logger
		buf       bytes.Buffer
	)

	scoped := slog.New(slog.NewTextHandler(&buf, nil))

	logger, err := contextx.LoggerFromContext(ctx)
	rq.Equal(nilLogger, logger)
	rq.ErrorIs(err, contextx.ErrNoValue)
	rq.ErrorContains(err, "logger: no value in context")
	rq.Same(slog.Default(), contextx.LoggerFromContextOrDefault(ctx))

	ctx = contextx.WithLogger(ctx, scoped)

	logger, err = contextx.LoggerFromContext(ctx)
	rq.NoError(err)
	rq.Same(scoped, logger)

	contextx.LoggerFromContextOrDefault(ctx).Info("deal loaded", slog.String("deal-id", "d-1"))
	rq.Contains(buf.String(), "deal-id=d-1")
}
