package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	SessionStorePostgres = "postgres"
	SessionStoreRedis    = "redis"
)

type Config struct {
	Port      int    `env:"PORT" envDefault:"3000"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Checked by paystack.New at startup; the process exits when it is empty.
	PaystackSecretKey         string        `env:"PAYSTACK_SECRET_KEY"`
	PaystackBaseURL           string        `env:"PAYSTACK_BASE_URL" envDefault:"https://api.paystack.co"`
	PaystackInitializePath    string        `env:"PAYSTACK_INITIALIZE_PATH" envDefault:"/transaction/initialize"`
	HTTPPaystackClientTimeout time.Duration `env:"HTTP_PAYSTACK_CLIENT_TIMEOUT" envDefault:"20s"`

	SessionStore         string        `env:"SESSION_STORE" envDefault:"postgres"`
	SessionTTL           time.Duration `env:"SESSION_TTL" envDefault:"12h"`
	SessionHydrationWait time.Duration `env:"SESSION_HYDRATION_WAIT" envDefault:"3s"`

	PgURL     string `env:"PG_URL"`
	PgPoolMax int    `env:"PG_POOL_MAX" envDefault:"10"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
}

func New() (Config, error) {
	c, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, err
	}

	if err := c.validate(); err != nil {
		return Config{}, err
	}

	return c, nil
}

func (c Config) validate() error {
	switch c.SessionStore {
	case SessionStorePostgres:
		if c.PgURL == "" {
			return errors.New("PG_URL is required when SESSION_STORE=postgres")
		}
	case SessionStoreRedis:
		if c.RedisAddr == "" {
			return errors.New("REDIS_ADDR is required when SESSION_STORE=redis")
		}
	default:
		return fmt.Errorf("unsupported SESSION_STORE %q", c.SessionStore)
	}

	if c.SessionHydrationWait <= 0 {
		return errors.New("SESSION_HYDRATION_WAIT must be positive")
	}
	return nil
}
