// Package config provides runtime configuration values for the service.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config holds configuration knobs for the HTTP server and upstream client.
type Config struct {
	HTTPAddr             string
	ShutdownTimeout      time.Duration
	UpstreamBaseURL      string
	UpstreamTimeout      time.Duration
	UpstreamMaxBodyBytes int64
	LogLevel             string
	GinMode              string
}

// fileConfig mirrors Config in TOML form. Durations are plain integers.
type fileConfig struct {
	HTTPAddr             string `toml:"http_addr"`
	ShutdownTimeoutSec   *int   `toml:"shutdown_timeout_sec"`
	UpstreamBaseURL      string `toml:"upstream_base_url"`
	UpstreamTimeoutMs    *int   `toml:"upstream_timeout_ms"`
	UpstreamMaxBodyBytes *int64 `toml:"upstream_max_body_bytes"`
	LogLevel             string `toml:"log_level"`
	GinMode              string `toml:"gin_mode"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() Config {
	return Config{
		HTTPAddr:             ":8000",
		ShutdownTimeout:      15 * time.Second,
		UpstreamBaseURL:      "https://pokeapi.co/api/v2",
		UpstreamTimeout:      0,
		UpstreamMaxBodyBytes: 8 << 20,
		LogLevel:             "info",
		GinMode:              "release",
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoienv(key string, def int) int {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func durenvms(key string, def time.Duration) time.Duration {
	ms := atoienv(key, int(def/time.Millisecond))
	return time.Duration(ms) * time.Millisecond
}

func durenvs(key string, def time.Duration) time.Duration {
	sec := atoienv(key, int(def/time.Second))
	return time.Duration(sec) * time.Second
}

func (c Config) withEnv() Config {
	c.HTTPAddr = getenv("HTTP_ADDR", c.HTTPAddr)
	c.ShutdownTimeout = durenvs("SHUTDOWN_TIMEOUT", c.ShutdownTimeout)
	c.UpstreamBaseURL = getenv("UPSTREAM_BASE_URL", c.UpstreamBaseURL)
	c.UpstreamTimeout = durenvms("UPSTREAM_TIMEOUT_MS", c.UpstreamTimeout)
	c.UpstreamMaxBodyBytes = int64(atoienv("UPSTREAM_MAX_BODY_BYTES", int(c.UpstreamMaxBodyBytes)))
	c.LogLevel = getenv("LOG_LEVEL", c.LogLevel)
	c.GinMode = getenv("GIN_MODE", c.GinMode)
	return c
}

// Load collects configuration from environment with defaults.
func Load() Config {
	return Defaults().withEnv()
}

// LoadFile reads a TOML file over the defaults, then applies environment
// overrides. An empty path behaves like Load.
func LoadFile(path string) (Config, error) {
	cfg := Defaults()
	if path == "" {
		return cfg.withEnv(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if fc.HTTPAddr != "" {
		cfg.HTTPAddr = fc.HTTPAddr
	}
	if fc.ShutdownTimeoutSec != nil {
		cfg.ShutdownTimeout = time.Duration(*fc.ShutdownTimeoutSec) * time.Second
	}
	if fc.UpstreamBaseURL != "" {
		cfg.UpstreamBaseURL = fc.UpstreamBaseURL
	}
	if fc.UpstreamTimeoutMs != nil {
		cfg.UpstreamTimeout = time.Duration(*fc.UpstreamTimeoutMs) * time.Millisecond
	}
	if fc.UpstreamMaxBodyBytes != nil {
		cfg.UpstreamMaxBodyBytes = *fc.UpstreamMaxBodyBytes
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
	if fc.GinMode != "" {
		cfg.GinMode = fc.GinMode
	}
	return cfg.withEnv(), nil
}
