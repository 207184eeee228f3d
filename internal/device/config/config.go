package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds the device-side settings for smokectl.
type Config struct {
	APIURL          string
	CachePath       string
	RequestTimeout  time.Duration
	LogLevel        slog.Level
	StatsWindowDays int
}

const (
	defaultConfigPath      = "~/.config/smokefree/device.toml"
	defaultCachePath       = "~/.local/share/smokefree/cache.db"
	defaultAPIURL          = "http://127.0.0.1:8080"
	defaultRequestTimeout  = 10 * time.Second
	defaultStatsWindowDays = 7
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		APIURL:          defaultAPIURL,
		CachePath:       mustExpand(defaultCachePath),
		RequestTimeout:  defaultRequestTimeout,
		LogLevel:        slog.LevelWarn,
		StatsWindowDays: defaultStatsWindowDays,
	}
}

// Load reads the device config at path, falling back to defaults when the file is
// missing. Empty or zero fields keep their defaults.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIURL          string `toml:"api_url"`
		CachePath       string `toml:"cache_path"`
		RequestTimeout  string `toml:"request_timeout"`
		LogLevel        string `toml:"log_level"`
		StatsWindowDays int    `toml:"stats_window_days"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIURL); v != "" {
		cfg.APIURL = v
	}
	if v := strings.TrimSpace(raw.CachePath); v != "" {
		cfg.CachePath = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.RequestTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse request_timeout %q: %w", v, err)
		}
		if d > 0 {
			cfg.RequestTimeout = d
		}
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return Config{}, fmt.Errorf("parse log_level %q: %w", v, err)
		}
	}
	if raw.StatsWindowDays > 0 {
		cfg.StatsWindowDays = raw.StatsWindowDays
	}

	return cfg, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
