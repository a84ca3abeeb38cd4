// Package config loads trinomial.yaml (or .json) and applies environment overrides.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up in the working directory.
const DefaultPath = "trinomial.yaml"

// Environment overrides.
const (
	EnvRedisURL      = "TRINOMIAL_REDIS_URL"
	EnvDatabaseURL   = "TRINOMIAL_DATABASE_URL"
	EnvTelegramToken = "TELEGRAM_BOT_TOKEN"
	EnvLogLevel      = "TRINOMIAL_LOG_LEVEL"
)

// Store drivers.
const (
	DriverAuto     = ""
	DriverNone     = "none"
	DriverMemory   = "memory"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

// Config is the full application configuration.
type Config struct {
	LogLevel    string          `mapstructure:"log_level"`
	LogFormat   string          `mapstructure:"log_format"`
	Notation    string          `mapstructure:"notation"`
	SearchLimit int64           `mapstructure:"search_limit"`
	HTTP        HTTPConfig      `mapstructure:"http"`
	MCP         MCPConfig       `mapstructure:"mcp"`
	Store       StoreConfig     `mapstructure:"store"`
	Telegram    TelegramConfig  `mapstructure:"telegram"`
	Worksheet   WorksheetConfig `mapstructure:"worksheet"`
}

// HTTPConfig configures the REST server.
type HTTPConfig struct {
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	Metrics         bool          `mapstructure:"metrics"`
}

// MCPConfig configures the MCP server.
type MCPConfig struct {
	Transport string `mapstructure:"transport"`
	Port      int    `mapstructure:"port"`
}

// StoreConfig selects and configures the result history backend.
type StoreConfig struct {
	Driver      string        `mapstructure:"driver"`
	Capacity    int           `mapstructure:"capacity"`
	RedisURL    string        `mapstructure:"redis_url"`
	Prefix      string        `mapstructure:"prefix"`
	TTL         time.Duration `mapstructure:"ttl"`
	DatabaseURL string        `mapstructure:"database_url"`
}

// TelegramConfig configures the bot front-end.
type TelegramConfig struct {
	Token   string `mapstructure:"token"`
	Timeout int    `mapstructure:"timeout"`
	Debug   bool   `mapstructure:"debug"`
}

// WorksheetConfig configures batch grading.
type WorksheetConfig struct {
	Concurrency int `mapstructure:"concurrency"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LogLevel:    "info",
		LogFormat:   "text",
		Notation:    "latex",
		SearchLimit: 1_000_000_000,
		HTTP: HTTPConfig{
			Port:            8080,
			ReadTimeout:     10 * time.Second,
			ShutdownTimeout: 5 * time.Second,
			Metrics:         true,
		},
		MCP: MCPConfig{
			Transport: "stdio",
			Port:      8081,
		},
		Store: StoreConfig{
			Driver:   DriverAuto,
			Capacity: 1000,
			Prefix:   "trinomial:",
		},
		Telegram: TelegramConfig{
			Timeout: 60,
		},
		Worksheet: WorksheetConfig{
			Concurrency: 4,
		},
	}
}

// Load reads path over the defaults and then applies environment overrides.
// A missing file is not an error: the defaults are used.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := readFile(path)
		if err != nil {
			return nil, err
		}
		if raw != nil {
			if err := decode(raw, cfg); err != nil {
				return nil, fmt.Errorf("failed to decode %s: %w", path, err)
			}
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func readFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	raw := map[string]any{}
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	} else {
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}
	return raw, nil
}

func decode(raw map[string]any, cfg *Config) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return err
	}
	return dec.Decode(raw)
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvRedisURL); v != "" {
		cfg.Store.RedisURL = v
	}
	if v := os.Getenv(EnvDatabaseURL); v != "" {
		cfg.Store.DatabaseURL = v
	}
	if v := os.Getenv(EnvTelegramToken); v != "" {
		cfg.Telegram.Token = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
}

// StoreDriver resolves DriverAuto: postgres when a database URL is set, then redis, then memory.
func (c *Config) StoreDriver() string {
	if c.Store.Driver != DriverAuto {
		return c.Store.Driver
	}
	switch {
	case c.Store.DatabaseURL != "":
		return DriverPostgres
	case c.Store.RedisURL != "":
		return DriverRedis
	default:
		return DriverMemory
	}
}
