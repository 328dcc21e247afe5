package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/promptops/model-engine/internal/core/domain"
	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig                                    `mapstructure:"server"`
	Redis      RedisConfig                                     `mapstructure:"redis"`
	RateLimit  RateLimitConfig                                 `mapstructure:"rate_limit"`
	Store      StoreConfig                                     `mapstructure:"store"`
	Engine     EngineConfig                                    `mapstructure:"engine"`
	Models     []domain.ModelConfig                            `mapstructure:"models"`
	Operations map[domain.OperationType]domain.OperationConfig `mapstructure:"operations"`
}

type ServerConfig struct {
	Port    string   `mapstructure:"port"`
	Env     string   `mapstructure:"env"`
	APIKeys []string `mapstructure:"api_keys"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Enabled  bool   `mapstructure:"enabled"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

type StoreConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	DSN     string `mapstructure:"dsn"`
}

// EngineConfig carries the routing globals. Durations are seconds, matching
// the export/import snapshot format.
type EngineConfig struct {
	DefaultTimeout      float64 `mapstructure:"default_timeout"`
	MaxRetries          int     `mapstructure:"max_retries"`
	HealthCheckInterval float64 `mapstructure:"health_check_interval"`
	SnapshotPath        string  `mapstructure:"snapshot_path"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig() (*Config, error) {
	// Load .env file if present
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./internal/config")

	// Default Values
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.env", "development")
	v.SetDefault("redis.enabled", false)
	v.SetDefault("rate_limit.requests_per_second", 10.0)
	v.SetDefault("rate_limit.burst", 20)
	v.SetDefault("store.enabled", false)
	v.SetDefault("store.dsn", "model-engine.db")
	v.SetDefault("engine.default_timeout", domain.DefaultTimeout.Seconds())
	v.SetDefault("engine.max_retries", domain.DefaultMaxRetries)
	v.SetDefault("engine.health_check_interval", domain.DefaultHealthCheckInterval.Seconds())

	// Environment Variables
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	// Resolve API Keys
	for i, m := range cfg.Models {
		if strings.HasPrefix(m.APIKey, "ENV:") {
			envVar := strings.TrimPrefix(m.APIKey, "ENV:")
			// Check process environment first (explicit override)
			val := os.Getenv(envVar)
			if val == "" {
				// Then check viper (which might have it from other sources)
				val = v.GetString(envVar)
			}
			cfg.Models[i].APIKey = val
		}
	}

	return &cfg, nil
}

// Snapshot converts the seed sections into an importable registry snapshot.
func (c *Config) Snapshot() domain.ConfigSnapshot {
	snapshot := domain.ConfigSnapshot{
		Models:              make(map[string]domain.ModelConfig, len(c.Models)),
		Operations:          c.Operations,
		DefaultTimeout:      c.Engine.DefaultTimeout,
		MaxRetries:          c.Engine.MaxRetries,
		HealthCheckInterval: c.Engine.HealthCheckInterval,
	}
	for _, m := range c.Models {
		snapshot.Models[m.Name] = m
	}
	return snapshot
}

// Settings converts the engine section into the registry's globals, leaving
// zero values to be filled with defaults.
func (c *Config) Settings() domain.Settings {
	snapshot := c.Snapshot()
	return snapshot.Settings()
}
