package application

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"golang.org/x/sync/errgroup"

	"money_saver/internal/config"
	"money_saver/internal/domain/service/deal"
	"money_saver/internal/domain/service/pricehistory"
	"money_saver/internal/metrics"
	"money_saver/pkg/application/connectors"
	"money_saver/pkg/application/modules"
	"money_saver/pkg/logx"
)

// Run wires every component and blocks until ctx is done or a module fails.
func Run(ctx context.Context, cfg config.Config) error {
	logger(ctx).Info("application starting",
		slog.String(logx.FieldAppName, cfg.App.Name),
		slog.String(logx.FieldAppVersion, cfg.App.Version),
	)

	metrics.BuildInfo.WithLabelValues(cfg.App.Name, cfg.App.Version).Set(1)

	var (
		pg    *connectors.Postgres
		redis *connectors.Redis
	)

	if cfg.Postgres.Enabled() {
		pg = &connectors.Postgres{
			DSN:             cfg.Postgres.DSN,
			MaxOpenConns:    cfg.Postgres.MaxOpenConns,
			MaxIdleConns:    cfg.Postgres.MaxIdleConns,
			ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
		}

		defer pg.Close(ctx)
	}

	if cfg.Redis.Enabled() {
		redis = &connectors.Redis{
			Address:            cfg.Redis.Address,
			Username:           cfg.Redis.Username,
			Password:           cfg.Redis.Password,
			DatabaseNumber:     cfg.Redis.DatabaseNumber,
			PoolSize:           cfg.Redis.PoolSize,
			MinIdleConnections: cfg.Redis.MinIdleConnections,
			MaxIdleConnections: cfg.Redis.MaxIdleConnections,
		}

		defer redis.Close(ctx)
	}

	feed, err := newFeed(ctx, cfg, pg)
	if err != nil {
		return fmt.Errorf("newFeed: %w", err)
	}

	dealService := deal.NewService(
		feed,
		newHistoryCache(ctx, cfg, redis),
		pricehistory.NewSynthesizer(pricehistory.RandomFunc(rand.Float64)).WithDaysBack(cfg.History.DaysBack),
		pricehistory.NewAnalyzer(),
	).WithAnalysisConcurrency(cfg.History.AnalysisConcurrency)

	if err = loadFeed(ctx, dealService, cfg.Feed.Retries); err != nil {
		return fmt.Errorf("loadFeed: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)

	if cfg.Feed.RefreshInterval > 0 {
		g.Go(func() error {
			return refreshFeed(ctx, dealService, cfg.Feed.RefreshInterval)
		})
	}

	if cfg.Bot.Enabled() {
		if err = runAlerts(ctx, g, cfg, dealService, redis); err != nil {
			return fmt.Errorf("runAlerts: %w", err)
		}
	}

	modules.HTTPServer{
		ShutdownTimeout: cfg.HTTP.ShutdownTimeout,
	}.Run(ctx, g, newHTTPServer(cfg, dealService))

	modules.ProbeServer{
		Name:          cfg.App.Name,
		Version:       cfg.App.Version,
		ListenAddress: cfg.Probe.ListenAddress,
		Checks:        newProbeChecks(dealService, pg, redis),
	}.Run(ctx, g)

	modules.MetricServer{
		ListenAddress: cfg.Metrics.ListenAddress,
	}.Run(ctx, g)

	if err = g.Wait(); err != nil {
		return fmt.Errorf("g.Wait: %w", err)
	}

	logger(ctx).Info("application stopped")

	return nil
}
