package server

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"

	"gitlab-time-tracker/internal/storage"
)

// Config is the timestamp service configuration, read from the environment.
type Config struct {
	Port int `env:"GTT_PORT" env-default:"8080"`
	// Store selects the session backend: memory, file or redis.
	Store     string `env:"GTT_STORE" env-default:"memory"`
	StorePath string `env:"GTT_STORE_PATH" env-default:""`

	RedisAddr     string `env:"GTT_REDIS_ADDR" env-default:"localhost:6379"`
	RedisPassword string `env:"GTT_REDIS_PASSWORD" env-default:""`
	RedisDB       int    `env:"GTT_REDIS_DB" env-default:"0"`
}

// LoadConfig reads the service configuration from environment variables.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("reading environment: %w", err)
	}
	return cfg, nil
}

// OpenStore creates the session store the configuration selects.
func (c Config) OpenStore(ctx context.Context) (storage.Store, error) {
	switch c.Store {
	case "memory":
		return storage.NewMemory(), nil
	case "file":
		path := c.StorePath
		if path == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("cannot determine home directory: %w", err)
			}
			path = filepath.Join(home, ".gtt", "timestamps.json")
		}
		return storage.NewFile(path), nil
	case "redis":
		return storage.NewRedis(ctx, c.RedisAddr, c.RedisPassword, c.RedisDB)
	default:
		return nil, fmt.Errorf("unknown store %q (expected memory, file or redis)", c.Store)
	}
}
