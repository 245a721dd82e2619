package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config defines movetrack service configuration.
type Config struct {
	HTTP struct {
		Port string `yaml:"port" env:"MOVETRACK_HTTP_PORT"`
	} `yaml:"http"`
	Database struct {
		DSN string `yaml:"dsn" env:"MOVETRACK_POSTGRES_DSN"`
	} `yaml:"database"`
	Redis struct {
		Addr     string `yaml:"addr" env:"MOVETRACK_REDIS_ADDR"`
		Password string `yaml:"password" env:"MOVETRACK_REDIS_PASSWORD"`
	} `yaml:"redis"`
	Ingest struct {
		Channel string `yaml:"channel" env:"MOVETRACK_INGEST_CHANNEL"`
	} `yaml:"ingest"`
	Broadcast struct {
		BufferSize int `yaml:"buffer_size" env:"MOVETRACK_BROADCAST_BUFFER"`
	} `yaml:"broadcast"`
	Cache struct {
		TTLSeconds int `yaml:"ttl_seconds" env:"MOVETRACK_CACHE_TTL_SECONDS"`
	} `yaml:"cache"`
}

// Load reads an optional .env file, then the optional YAML file named by
// CONFIG_FILE, then environment overrides.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	cfg.HTTP.Port = "8085"
	cfg.Redis.Addr = "localhost:6379"
	cfg.Ingest.Channel = "gps:sensor:data"
	cfg.Broadcast.BufferSize = 16
	cfg.Cache.TTLSeconds = 60

	if err := hydrate(cfg); err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.Database.DSN) == "" {
		return nil, errors.New("config: database dsn required")
	}
	if strings.TrimSpace(cfg.Ingest.Channel) == "" {
		return nil, errors.New("config: ingest channel required")
	}
	return cfg, nil
}

// HTTPAddress returns :port style.
func (c *Config) HTTPAddress() string {
	port := strings.TrimSpace(c.HTTP.Port)
	if port == "" {
		port = "8085"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return fmt.Sprintf(":%s", port)
}

// CacheTTL returns the latest-reading expiry as a duration.
func (c *Config) CacheTTL() time.Duration {
	if c.Cache.TTLSeconds <= 0 {
		return time.Minute
	}
	return time.Duration(c.Cache.TTLSeconds) * time.Second
}
