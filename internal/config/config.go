// Package config owns the on-disk runtime configuration.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config is the full runtime configuration of a coaching session.
type Config struct {
	Addr        string         `toml:"addr"`
	BufferSize  int            `toml:"buffer_size"`
	LogLevel    string         `toml:"log_level"`
	MetricsAddr string         `toml:"metrics_addr"`
	CorsOrigins []string       `toml:"cors_origins"`
	Players     int            `toml:"players"`
	Episodes    int            `toml:"episodes"`
	Seed        int64          `toml:"seed"`
	Options     map[string]any `toml:"options"`
}

func Default() Config {
	return Config{
		Addr:       "127.0.0.1:6666",
		BufferSize: 4096,
		LogLevel:   "info",
		Episodes:   1,
	}
}

// Load reads a TOML file over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func Validate(cfg Config) error {
	if cfg.Addr == "" {
		return fmt.Errorf("config: addr must not be empty")
	}
	if cfg.BufferSize <= 0 {
		return fmt.Errorf("config: buffer_size must be positive, got %d", cfg.BufferSize)
	}
	if cfg.Episodes <= 0 {
		return fmt.Errorf("config: episodes must be positive, got %d", cfg.Episodes)
	}
	if cfg.Players < 0 {
		return fmt.Errorf("config: players must not be negative, got %d", cfg.Players)
	}
	return nil
}
