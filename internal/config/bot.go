package config

import (
	"fmt"
	"time"

	"money_saver/internal/domain/value"
)

type AlertQueue string

const (
	AlertQueueDirect AlertQueue = "direct"
	AlertQueueAsynq  AlertQueue = "asynq"
)

// Bot включается, если задан BOT_TOKEN
type Bot struct {
	Token  string `env:"BOT_TOKEN"   json:"-"`
	ChatID int64  `env:"BOT_CHAT_ID"`
	// Команды бота принимаются только от этого пользователя, 0 отключает их
	AdminID    int64      `env:"BOT_ADMIN_ID"`
	AlertQueue AlertQueue `env:"ALERT_QUEUE" envDefault:"direct"`
	// Число воркеров asynq для очереди алертов
	AlertWorkers int `env:"ALERT_WORKERS" envDefault:"2"`
}

func (b Bot) CommandsEnabled() bool {
	return b.Enabled() && b.AdminID != 0
}

func (b Bot) Enabled() bool {
	return b.Token != ""
}

func (b Bot) validate(redis Redis) error {
	if b.ChatID == 0 {
		return fmt.Errorf("BOT_CHAT_ID: %w", ErrMissing)
	}

	switch b.AlertQueue {
	case AlertQueueDirect:
	case AlertQueueAsynq:
		if !redis.Enabled() {
			return fmt.Errorf("REDIS_ADDRESS: %w", ErrMissing)
		}
	default:
		return fmt.Errorf("ALERT_QUEUE %q: %w", b.AlertQueue, ErrInvalidValue)
	}

	return nil
}

type Scanner struct {
	Interval    time.Duration `env:"SCANNER_INTERVAL"     envDefault:"15m"`
	Categories  []string      `env:"SCANNER_CATEGORIES"   envSeparator:","`
	MinDiscount int64         `env:"SCANNER_MIN_DISCOUNT" envDefault:"0"`
}

// WatchedCategories parses the watch list. Empty means every category.
func (s Scanner) WatchedCategories() ([]value.Category, error) {
	result := make([]value.Category, 0, len(s.Categories))

	for _, raw := range s.Categories {
		c, err := value.ParseCategory(raw)
		if err != nil {
			return nil, fmt.Errorf("SCANNER_CATEGORIES %q: %w", raw, err)
		}

		result = append(result, c)
	}

	return result, nil
}
