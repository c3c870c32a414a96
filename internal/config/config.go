// Package config loads dashboard settings from an optional YAML file, a
// .env file and IOTDASH_* environment variables, in that order of
// increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned when a loaded setting is out of range.
var ErrInvalidConfig = errors.New("invalid config")

// EnvConfigPath names the variable holding the YAML config path.
const EnvConfigPath = "IOTDASH_CONFIG"

// Config holds the dashboard settings.
type Config struct {
	Count     int    `yaml:"count"`      // readings generated per session
	PageSize  int    `yaml:"page_size"`  // table rows per page
	ExportDir string `yaml:"export_dir"` // where snapshot exports are written
	LogFile   string `yaml:"log_file"`   // TUI log destination
	LogLevel  string `yaml:"log_level"`  // debug, info, warn, error
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Count:     1000,
		PageSize:  10,
		ExportDir: ".",
		LogFile:   filepath.Join(os.TempDir(), "iotdash.log"),
		LogLevel:  "info",
	}
}

// Load builds the configuration. path may be empty, in which case
// IOTDASH_CONFIG is consulted; a missing .env file is not an error.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Default(), fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()

	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("IOTDASH_COUNT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: IOTDASH_COUNT=%q", ErrInvalidConfig, v)
		}
		c.Count = n
	}
	if v := os.Getenv("IOTDASH_PAGE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: IOTDASH_PAGE_SIZE=%q", ErrInvalidConfig, v)
		}
		c.PageSize = n
	}
	if v := os.Getenv("IOTDASH_EXPORT_DIR"); v != "" {
		c.ExportDir = v
	}
	if v := os.Getenv("IOTDASH_LOG_FILE"); v != "" {
		c.LogFile = v
	}
	if v := os.Getenv("IOTDASH_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	return nil
}

// Validate checks that every setting is usable.
func (c Config) Validate() error {
	if c.Count < 0 {
		return fmt.Errorf("%w: count must be >= 0, got %d", ErrInvalidConfig, c.Count)
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("%w: page_size must be > 0, got %d", ErrInvalidConfig, c.PageSize)
	}
	if c.ExportDir == "" {
		return fmt.Errorf("%w: export_dir is empty", ErrInvalidConfig)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("%w: unknown log_level %q", ErrInvalidConfig, c.LogLevel)
}
