package application

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"money_saver/internal/config"
	"money_saver/internal/domain/service/deal"
	"money_saver/internal/infrastructure/cache"
	"money_saver/internal/infrastructure/feed"
	"money_saver/internal/infrastructure/persistence"
	"money_saver/pkg/application/connectors"
	"money_saver/pkg/httpx"
	"money_saver/pkg/logx"
)

func newFeed(ctx context.Context, cfg config.Config, pg *connectors.Postgres) (deal.Feed, error) {
	logger(ctx).Info("deal feed configured", slog.String(logx.FieldFeedSource, string(cfg.Feed.Source)))

	switch cfg.Feed.Source {
	case config.FeedSourceHTTP:
		return feed.NewHTTPFeed(cfg.Feed.URL, newFeedClient(cfg)), nil
	case config.FeedSourceFile:
		return feed.NewFileFeed(cfg.Feed.Path), nil
	case config.FeedSourcePostgres:
		return persistence.NewDealRepository(pg.Client(ctx)), nil
	default:
		return nil, fmt.Errorf("feed source %q: %w", cfg.Feed.Source, config.ErrInvalidValue)
	}
}

func newFeedClient(cfg config.Config) *http.Client {
	var transport http.RoundTripper = httpx.NewLoggingRoundTripper(
		http.DefaultTransport,
		httpx.WithSensitiveDataMasker(logx.NewSensitiveDataMasker()),
		httpx.WithLogFieldMaxLen(cfg.HTTP.LogFieldMaxLen),
		httpx.WithoutResponseBody(),
	)

	if cfg.Feed.Token != "" {
		transport = httpx.NewAuthBearerRoundTripper(transport, httpx.StaticToken(cfg.Feed.Token))
	}

	return &http.Client{
		Transport: transport,
		Timeout:   cfg.Feed.Timeout,
	}
}

func newHistoryCache(ctx context.Context, cfg config.Config, redis *connectors.Redis) deal.HistoryCache {
	if redis != nil {
		return cache.NewRedisHistoryCache(redis.Client(ctx), cfg.History.CacheTTL)
	}

	return cache.NewMemoryHistoryCache(cfg.History.CacheTTL)
}

type feedLoader interface {
	Load(ctx context.Context) (int, error)
}

// loadFeed makes the first load, retrying with exponential backoff.
func loadFeed(ctx context.Context, loader feedLoader, retries uint64) error {
	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), retries),
		ctx,
	)

	err := backoff.RetryNotify(
		func() error {
			_, err := loader.Load(ctx)
			return err
		},
		policy,
		func(err error, next time.Duration) {
			logger(ctx).Warn("deal feed load failed, retrying", logx.Error(err), slog.Duration("next", next))
		},
	)
	if err != nil {
		return fmt.Errorf("backoff.RetryNotify: %w", err)
	}

	return nil
}

// refreshFeed reloads the feed on every tick; a failed reload keeps the
// previous collection.
func refreshFeed(ctx context.Context, loader feedLoader, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := loader.Load(ctx); err != nil {
				logger(ctx).Error("deal feed refresh failed", logx.Error(err))
			}
		}
	}
}
