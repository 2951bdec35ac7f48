package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"

	"money_saver/internal/config"
	"money_saver/internal/infrastructure/feed"
	"money_saver/internal/infrastructure/persistence"
	"money_saver/pkg/application/connectors"
	"money_saver/pkg/contextx"
	"money_saver/pkg/logx"
)

// Импорт deals.json в Postgres (для FEED_SOURCE=postgres):
//
//	go run ./cmd/feedimport deals.json
func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log := slog.New(tint.NewHandler(os.Stderr, nil))
	ctx = contextx.WithLogger(ctx, log)

	if len(os.Args) < 2 { //nolint:mnd
		log.Error("usage: feedimport <deals.json>")
		os.Exit(2) //nolint:mnd
	}

	if err := run(ctx, os.Args[1]); err != nil {
		log.Error("import failed", logx.Error(err))
		os.Exit(1) //nolint:gocritic
	}
}

func run(ctx context.Context, path string) error {
	_ = godotenv.Load()

	var cfg config.Postgres
	if err := env.Parse(&cfg); err != nil {
		return fmt.Errorf("env.Parse: %w", err)
	}

	if !cfg.Enabled() {
		return fmt.Errorf("PG_DSN: %w", config.ErrMissing)
	}

	deals, err := feed.NewFileFeed(path).Fetch(ctx)
	if err != nil {
		return fmt.Errorf("fileFeed.Fetch: %w", err)
	}

	pg := &connectors.Postgres{
		DSN:             cfg.DSN,
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	}
	defer pg.Close(ctx)

	if err = persistence.NewDealRepository(pg.Client(ctx)).Replace(ctx, deals); err != nil {
		return fmt.Errorf("dealRepository.Replace: %w", err)
	}

	contextx.LoggerFromContextOrDefault(ctx).Info("deals imported",
		slog.Int(logx.FieldCount, len(deals)),
		slog.String("path", path),
	)

	return nil
}
