package main

import (
	"log/slog"
	"time"

	"github.com/clubpoker/clubledger/internal/config"
)

type apiConfig struct {
	Port            uint16        `env:"APP_PORT" envDefault:"8080"`
	LogLevel        slog.Level    `env:"APP_LOG_LEVEL" envDefault:"info"`
	ShutdownTimeout time.Duration `env:"APP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	SweepInterval   time.Duration `env:"APP_SWEEP_INTERVAL" envDefault:"1m"`
	Postgres        config.PostgresConfig
}
