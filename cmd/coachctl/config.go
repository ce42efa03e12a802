package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/ezcoach/ezcoach-go/internal/config"
)

// coachctl config.toml key mapping to session settings.
type fileConfig struct {
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

// coachctl loader for TOML config. The base decode over the defaults is the
// shared config.Load; the meta pass on top normalizes only the keys the file
// actually sets.
func loadSessionConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}

	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("load session config: %w", err)
	}

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return config.Config{}, fmt.Errorf("load session config: %w", err)
	}

	if meta.IsDefined("addr") {
		cfg.Addr = strings.TrimSpace(raw.Addr)
	}
	if meta.IsDefined("buffer_size") {
		cfg.BufferSize = raw.BufferSize
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}
	if meta.IsDefined("metrics_addr") {
		cfg.MetricsAddr = strings.TrimSpace(raw.MetricsAddr)
	}
	if meta.IsDefined("cors_origins") {
		cfg.CorsOrigins = raw.CorsOrigins
	}
	if meta.IsDefined("players") {
		cfg.Players = raw.Players
	}
	if meta.IsDefined("episodes") {
		cfg.Episodes = raw.Episodes
	}
	if meta.IsDefined("seed") {
		cfg.Seed = raw.Seed
	}
	if meta.IsDefined("options") {
		cfg.Options = raw.Options
	}

	if err := config.Validate(cfg); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
