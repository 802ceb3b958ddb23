package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	twitter "github.com/anatolykoptev/twitter-mcp"
)

// Config is the process configuration. Secrets are never read from it;
// credentials come from the environment only.
type Config struct {
	Server ServerConfig `toml:"server"`
	Log    LogConfig    `toml:"log"`
	API    APIConfig    `toml:"api"`
}

// ServerConfig selects how the MCP server is exposed.
type ServerConfig struct {
	Name      string `toml:"name"`
	Transport string `toml:"transport"` // stdio or sse
	Addr      string `toml:"addr"`      // listen address for sse
}

// LogConfig controls the stderr logger.
type LogConfig struct {
	Level string `toml:"level"`
}

// APIConfig tunes the Twitter API client.
type APIConfig struct {
	BaseURL        string `toml:"base_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	Proxy          string `toml:"proxy"`
}

const (
	transportStdio = "stdio"
	transportSSE   = "sse"
)

// defaults fills in zero-value config fields.
func (cfg *Config) defaults() {
	if cfg.Server.Name == "" {
		cfg.Server.Name = "twitter-mcp-server"
	}
	if cfg.Server.Transport == "" {
		cfg.Server.Transport = transportStdio
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}

func (cfg *Config) validate() error {
	switch cfg.Server.Transport {
	case transportStdio, transportSSE:
	default:
		return fmt.Errorf("unknown transport %q (want %s or %s)", cfg.Server.Transport, transportStdio, transportSSE)
	}
	if _, err := parseLevel(cfg.Log.Level); err != nil {
		return err
	}
	if cfg.API.TimeoutSeconds < 0 {
		return fmt.Errorf("api.timeout_seconds must not be negative")
	}
	return nil
}

// loadConfig reads path if set. An empty path yields the defaults.
func loadConfig(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.defaults()
	return cfg, nil
}

// loadEnvFile seeds the environment from a dotenv file. Variables already set
// in the environment win. A missing file is not an error.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			slog.Debug("env file not found, skipping", slog.String("path", path))
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	slog.Debug("env file loaded", slog.String("path", path))
	return nil
}

// clientConfig maps the API section plus environment credentials onto the
// client configuration.
func (cfg *Config) clientConfig(creds twitter.Credentials) twitter.ClientConfig {
	return twitter.ClientConfig{
		Credentials: creds,
		BaseURL:     strings.TrimRight(cfg.API.BaseURL, "/"),
		Timeout:     time.Duration(cfg.API.TimeoutSeconds) * time.Second,
		Proxy:       cfg.API.Proxy,
		MetricsHook: func(endpoint string, success, rateLimited bool) {
			slog.Debug("api call",
				slog.String("endpoint", endpoint),
				slog.Bool("success", success),
				slog.Bool("rate_limited", rateLimited))
		},
	}
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return l, nil
}

// setupLogger installs a text handler on stderr; stdout carries the stdio transport.
func setupLogger(level string) error {
	l, err := parseLevel(level)
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})))
	return nil
}
