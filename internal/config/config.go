package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// Config конфигурация приложения, читается из окружения и .env.
type Config struct {
	App        App
	OpenData   OpenData
	Pagination Pagination
	Favorites  Favorites
	Redis      Redis
	Postgres   Postgres
	HTTP       HTTP
}

type App struct {
	Name      string `env:"APP_NAME" envDefault:"nycschools"`
	Version   string `env:"APP_VERSION" envDefault:"dev"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text" validate:"oneof=text json"`
}

type Favorites struct {
	Backend string `env:"FAVORITES_BACKEND" envDefault:"file" validate:"oneof=memory file redis postgres"`
	Key     string `env:"FAVORITES_KEY" envDefault:"favorited-school-ids" validate:"required"`
	File    string `env:"FAVORITES_FILE" envDefault:"favorites.json"`
}

// Load читает .env (если есть), затем переменные окружения и валидирует результат.
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

// Validate проверяет теги validate и обязательные параметры выбранного бэкенда избранного.
func (c Config) Validate() error {
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(c); err != nil {
		return fmt.Errorf("validator.Struct: %w", err)
	}

	switch c.Favorites.Backend {
	case BackendRedis:
		if c.Redis.Address == "" {
			return fmt.Errorf("REDIS_ADDRESS is required for the %s favorites backend", BackendRedis)
		}
	case BackendPostgres:
		if c.Postgres.DSN == "" {
			return fmt.Errorf("PG_DSN is required for the %s favorites backend", BackendPostgres)
		}
	case BackendFile:
		if c.Favorites.File == "" {
			return fmt.Errorf("FAVORITES_FILE is required for the %s favorites backend", BackendFile)
		}
	}

	return nil
}
