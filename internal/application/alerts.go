package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"
	"golang.org/x/sync/errgroup"

	"money_saver/internal/config"
	"money_saver/internal/domain/entity"
	"money_saver/internal/domain/service/deal"
	"money_saver/internal/infrastructure/notifier"
	"money_saver/internal/infrastructure/queue"
	"money_saver/internal/transport/bot"
	"money_saver/internal/worker"
	"money_saver/pkg/application/connectors"
	"money_saver/pkg/application/modules"
	"money_saver/pkg/logx"
)

const alertBuffer = 100

// runAlerts starts the scanner, the optional command bot and the delivery
// path: straight to the bot, or through the asynq queue.
func runAlerts(
	ctx context.Context,
	g *errgroup.Group,
	cfg config.Config,
	dealService *deal.Service,
	redis *connectors.Redis,
) error {
	categories, err := cfg.Scanner.WatchedCategories()
	if err != nil {
		return fmt.Errorf("cfg.Scanner.WatchedCategories: %w", err)
	}

	alertBot, err := notifier.NewTelegramBot(cfg.Bot.Token, cfg.Bot.ChatID)
	if err != nil {
		return fmt.Errorf("notifier.NewTelegramBot: %w", err)
	}

	alerts := make(chan entity.Alert, alertBuffer)

	scanner := worker.NewDealScanner(dealService, alerts).
		WithCategories(categories...).
		WithMinDiscount(cfg.Scanner.MinDiscount).
		WithInterval(cfg.Scanner.Interval)

	if err = scanner.Start(ctx); err != nil {
		return fmt.Errorf("scanner.Start: %w", err)
	}

	g.Go(func() error {
		<-ctx.Done()

		scanner.Stop()
		close(alerts)

		return nil
	})

	if cfg.Bot.CommandsEnabled() {
		commands, err := bot.New(ctx, cfg.Bot.Token, cfg.Bot.AdminID, dealService, scanner)
		if err != nil {
			return fmt.Errorf("bot.New: %w", err)
		}

		g.Go(func() error {
			return commands.Run(ctx)
		})
	}

	logger(ctx).Info("deal scanner enabled",
		slog.Any(logx.FieldCategory, categories),
		slog.String("alert-queue", string(cfg.Bot.AlertQueue)),
	)

	if cfg.Bot.AlertQueue != config.AlertQueueAsynq {
		g.Go(func() error {
			if err := alertBot.Run(ctx, alerts); err != nil && ctx.Err() == nil {
				return fmt.Errorf("alertBot.Run: %w", err)
			}

			return nil
		})

		return nil
	}

	client := asynq.NewClientFromRedisClient(redis.Client(ctx))

	g.Go(func() error {
		defer client.Close()

		if err := queue.NewPublisher(client).Run(ctx, alerts); err != nil && ctx.Err() == nil {
			return fmt.Errorf("publisher.Run: %w", err)
		}

		return nil
	})

	modules.AsynqServer{
		RedisUsername: cfg.Redis.Username,
		RedisPassword: cfg.Redis.Password,
		RedisAddress:  cfg.Redis.Address,
		RedisDB:       cfg.Redis.DatabaseNumber,
		Concurrency:   cfg.Bot.AlertWorkers,
	}.Run(ctx, g, queue.Queues(), queue.NewAlertHandler(alertBot).AsynqHandler())

	return nil
}
