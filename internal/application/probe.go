package application

import (
	"context"
	"errors"
	"time"

	"money_saver/pkg/application/connectors"
	"money_saver/pkg/probe"
)

var errFeedNotLoaded = errors.New("deal feed is not loaded")

type loadedAtProvider interface {
	LoadedAt() time.Time
}

func newProbeChecks(feed loadedAtProvider, pg *connectors.Postgres, redis *connectors.Redis) map[string]probe.Check {
	checks := map[string]probe.Check{
		"feed": func(context.Context) error {
			if feed.LoadedAt().IsZero() {
				return errFeedNotLoaded
			}

			return nil
		},
	}

	if pg != nil {
		checks["postgres"] = pg.Ping
	}

	if redis != nil {
		checks["redis"] = redis.Ping
	}

	return checks
}
