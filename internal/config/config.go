package config

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	App      App
	HTTP     HTTP
	Probe    Probe
	Metrics  Metrics
	Feed     Feed
	History  History
	Postgres Postgres
	Redis    Redis
	Bot      Bot
	Scanner  Scanner
	Admin    Admin
}

type App struct {
	Name      string     `env:"APP_NAME"    envDefault:"money-saver"`
	Version   string     `env:"APP_VERSION" envDefault:"dev"`
	LogLevel  slog.Level `env:"LOG_LEVEL"   envDefault:"info"`
	LogFormat string     `env:"LOG_FORMAT"  envDefault:"text"`
}

type Admin struct {
	// Пустой секрет отключает admin API
	JWTSecret string `env:"ADMIN_JWT_SECRET" json:"-"`
}

func (a Admin) Enabled() bool {
	return a.JWTSecret != ""
}

// Load reads .env (if present) and the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var config Config

	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("env.Parse: %w", err)
	}

	if err := config.Validate(); err != nil {
		return Config{}, fmt.Errorf("config.Validate: %w", err)
	}

	return config, nil
}

// Validate checks the settings that depend on each other.
func (c Config) Validate() error {
	var errs []error

	switch c.App.LogFormat {
	case LogFormatText, LogFormatJSON:
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT %q: %w", c.App.LogFormat, ErrInvalidValue))
	}

	errs = append(errs, c.Feed.validate(c.Postgres))

	if c.Bot.Enabled() {
		errs = append(errs, c.Bot.validate(c.Redis))
	}

	if _, err := c.Scanner.WatchedCategories(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

var (
	ErrInvalidValue = errors.New("invalid value")
	ErrMissing      = errors.New("missing setting")
)
