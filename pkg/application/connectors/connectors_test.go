package connectors_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"money_saver/pkg/application/connectors"
)

func TestPingBeforeConnect(t *testing.T) {
	rq := require.New(t)

	ctx := context.Background()

	pg := &connectors.Postgres{DSN: "postgres://localhost/deals"}
	rq.ErrorIs(pg.Ping(ctx), connectors.ErrNotConnected)

	redis := &connectors.Redis{Address: "localhost:6379"}
	rq.ErrorIs(redis.Ping(ctx), connectors.ErrNotConnected)

	// Close on a never opened connector is a no-op.
	pg.Close(ctx)
	redis.Close(ctx)
}
