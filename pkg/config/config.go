// Package config loads the simulator configuration from environment
// variables, with an optional .env file for local development.
package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/powerex/intraday/pkg/errors"
)

// MustLoad loads the configuration and panics when parsing fails.
func MustLoad[T any](cfg T) {
	_ = godotenv.Load()

	env.Must(cfg, env.Parse(cfg))
}

// Load loads the configuration from environment variables and a .env file,
// if one is present.
func Load[T any](cfg T) error {
	_ = godotenv.Load()

	if err := env.Parse(cfg); err != nil {
		return errors.Tracer(errors.ConfigLoadError).Wrap(err)
	}

	return nil
}

// Config holds the configuration for the simulator.
type Config struct {
	App     AppConfig     `envPrefix:"APP_"`
	Session SessionConfig `envPrefix:"SESSION_"`
}

// AppConfig holds process-level settings.
type AppConfig struct {
	Name        string `env:"NAME" envDefault:"intraday-simulator"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
}

// SessionConfig holds the parameters of one scripted trading session.
type SessionConfig struct {
	// TradingDay selects the delivery day the book is seeded for (YYYY-MM-DD).
	TradingDay string `env:"TRADING_DAY" envDefault:"2025-01-15"`
	// Area is the delivery area tag carried through the session logs.
	Area string `env:"AREA" envDefault:"DE-LU"`
	// IncomingOrders is the size of the bulk batch submitted after seeding.
	IncomingOrders int `env:"INCOMING_ORDERS" envDefault:"2"`
	// RandSeed makes the generated batch reproducible.
	RandSeed int64 `env:"RAND_SEED" envDefault:"42"`
}

// Day parses the configured trading day in its local calendar form.
func (s SessionConfig) Day() (time.Time, error) {
	day, err := time.Parse("2006-01-02", s.TradingDay)
	if err != nil {
		return time.Time{}, errors.Tracer(errors.ConfigInvalidError).Wrap(err)
	}
	return day, nil
}
