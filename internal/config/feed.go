package config

import (
	"fmt"
	"time"
)

type FeedSource string

const (
	FeedSourceHTTP     FeedSource = "http"
	FeedSourceFile     FeedSource = "file"
	FeedSourcePostgres FeedSource = "postgres"
)

type Feed struct {
	Source  FeedSource    `env:"FEED_SOURCE"  envDefault:"http"`
	URL     string        `env:"FEED_URL"`
	Path    string        `env:"FEED_PATH"    envDefault:"deals.json"`
	Token   string        `env:"FEED_TOKEN"   json:"-"`
	Timeout time.Duration `env:"FEED_TIMEOUT" envDefault:"10s"`
	// Попытки первой загрузки при старте
	Retries uint64 `env:"FEED_RETRIES" envDefault:"5"`
	// 0 отключает периодическую перезагрузку
	RefreshInterval time.Duration `env:"FEED_REFRESH_INTERVAL" envDefault:"0s"`
}

func (f Feed) validate(pg Postgres) error {
	switch f.Source {
	case FeedSourceHTTP:
		if f.URL == "" {
			return fmt.Errorf("FEED_URL: %w", ErrMissing)
		}
	case FeedSourceFile:
		if f.Path == "" {
			return fmt.Errorf("FEED_PATH: %w", ErrMissing)
		}
	case FeedSourcePostgres:
		if !pg.Enabled() {
			return fmt.Errorf("PG_DSN: %w", ErrMissing)
		}
	default:
		return fmt.Errorf("FEED_SOURCE %q: %w", f.Source, ErrInvalidValue)
	}

	return nil
}

type History struct {
	DaysBack            int           `env:"HISTORY_DAYS_BACK"            envDefault:"90"`
	CacheTTL            time.Duration `env:"HISTORY_CACHE_TTL"            envDefault:"24h"`
	AnalysisConcurrency int           `env:"HISTORY_ANALYSIS_CONCURRENCY" envDefault:"8"`
}
