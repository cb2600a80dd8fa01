package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the server configuration, read from the environment
// with sensible local-development defaults.
type Config struct {
	HTTPPort        string        `mapstructure:"HTTP_PORT"`
	RequestTimeout  time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	ShutdownTimeout time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`

	// StoreBackend selects where carts and stock ledgers persist:
	// sqlite, redis, or memory.
	StoreBackend  string `mapstructure:"STORE_BACKEND"`
	SQLitePath    string `mapstructure:"SQLITE_PATH"`
	MigrationsDir string `mapstructure:"MIGRATIONS_DIR"`
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`

	// BackendURL and BackendAnonKey point at the hosted auth + table
	// service. With an empty anon key the server falls back to the
	// in-memory authenticator, for local development only.
	BackendURL     string `mapstructure:"BACKEND_URL"`
	BackendAnonKey string `mapstructure:"BACKEND_ANON_KEY"`

	LogLevel string `mapstructure:"LOG_LEVEL"`
}

func defaults() map[string]any {
	return map[string]any{
		"HTTP_PORT":        "8080",
		"REQUEST_TIMEOUT":  30 * time.Second,
		"SHUTDOWN_TIMEOUT": 10 * time.Second,
		"STORE_BACKEND":    "sqlite",
		"SQLITE_PATH":      "storefront.db",
		"MIGRATIONS_DIR":   "migrations",
		"REDIS_ADDR":       "localhost:6379",
		"REDIS_PASSWORD":   "",
		"BACKEND_URL":      "http://localhost:54321",
		"BACKEND_ANON_KEY": "",
		"LOG_LEVEL":        "info",
	}
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	v := viper.New()
	for key, value := range defaults() {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	switch strings.ToLower(cfg.StoreBackend) {
	case "sqlite", "redis", "memory":
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}

	return &cfg, nil
}
