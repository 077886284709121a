// Package config loads the service configuration from YAML with sane
// defaults for anything absent.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`

	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Port    int    `yaml:"port"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`

	Storage struct {
		// Backend selects the kv implementation: memory, file, sqlite, redis.
		Backend        string `yaml:"backend"`
		DataDir        string `yaml:"data_dir"`
		SQLitePath     string `yaml:"sqlite_path"`
		RedisURL       string `yaml:"redis_url"`
		RedisNamespace string `yaml:"redis_namespace"`
	} `yaml:"storage"`

	Feed struct {
		PollIntervalSeconds int `yaml:"poll_interval_seconds"`
	} `yaml:"feed"`

	Payment struct {
		DelayMillis int `yaml:"delay_ms"`
	} `yaml:"payment"`

	Auth struct {
		SigningKey string `yaml:"signing_key"`
	} `yaml:"auth"`

	Seed bool `yaml:"seed"`
}

// Default returns the configuration used when no file is supplied.
func Default() *Config {
	cfg := &Config{}
	cfg.Server.Port = 8080
	cfg.Metrics.Enabled = true
	cfg.Metrics.Port = 9090
	cfg.Metrics.Path = "/metrics"
	cfg.Storage.Backend = "memory"
	cfg.Storage.DataDir = "./data"
	cfg.Storage.SQLitePath = "./cafeteria.db"
	cfg.Storage.RedisURL = "redis://localhost:6379"
	cfg.Storage.RedisNamespace = "cafeteria"
	cfg.Feed.PollIntervalSeconds = 5
	cfg.Payment.DelayMillis = 2000
	cfg.Auth.SigningKey = "cafeteria-dev-key"
	cfg.Seed = true
	return cfg
}

// Load reads the YAML file at path over the defaults. A missing file is not
// an error; the defaults are returned as-is.
func Load(path string) (*Config, error) {
	cfg := Default()

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// PollInterval returns the feed poll interval as a duration.
func (c *Config) PollInterval() time.Duration {
	if c.Feed.PollIntervalSeconds <= 0 {
		return 5 * time.Second
	}
	return time.Duration(c.Feed.PollIntervalSeconds) * time.Second
}

// PaymentDelay returns the simulated payment delay as a duration.
func (c *Config) PaymentDelay() time.Duration {
	if c.Payment.DelayMillis < 0 {
		return 0
	}
	return time.Duration(c.Payment.DelayMillis) * time.Millisecond
}
