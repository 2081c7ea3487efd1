package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Env          string        `env:"ENV" envDefault:"local"`
	HTTPPort     int           `env:"HTTP_PORT" envDefault:"8080"`
	MetricsPort  int           `env:"METRICS_PORT" envDefault:"9090"`
	DatabaseURL  string        `env:"DATABASE_URL,required"`
	RedisAddr    string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	KafkaBrokers []string      `env:"KAFKA_BROKERS" envDefault:"localhost:9092"`
	KafkaTopic   string        `env:"KAFKA_TOPIC" envDefault:"sporthub_events"`
	TokenSecret  string        `env:"TOKEN_SECRET,required"`
	TokenTTL     time.Duration `env:"TOKEN_TTL" envDefault:"1h"`
	CacheTTL     time.Duration `env:"CACHE_TTL" envDefault:"10m"`
}

// MustLoad reads the config from the environment, with .env as an
// optional local override, and panics when required values are missing.
func MustLoad() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		panic(err)
	}

	return cfg
}
