package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config содержит настройки клиента.
// Значения читаются из переменных окружения (и опционально .env файла),
// флаги командной строки имеют приоритет над окружением.
type Config struct {
	// ServerURL базовый URL бэкенда, включая /api префикс
	ServerURL string `env:"CLIPERS_SERVER_URL" envDefault:"https://backend.sufactura.store/api"`

	// DBPath путь к локальной базе с токенами
	DBPath string `env:"CLIPERS_DB_PATH" envDefault:"clipers-client.db"`

	// HTTPTimeout таймаут HTTP запросов
	HTTPTimeout time.Duration `env:"CLIPERS_HTTP_TIMEOUT" envDefault:"30s"`

	// PageSize размер страницы для списочных запросов
	PageSize int `env:"CLIPERS_PAGE_SIZE" envDefault:"10"`
}

// Load читает конфигурацию из .env файла (если есть) и окружения
func Load() (*Config, error) {
	// .env опционален: отсутствие файла не является ошибкой
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}
