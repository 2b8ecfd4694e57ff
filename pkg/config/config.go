// Package config loads the YAML settings file, creating it with defaults on first run.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Environment variables that override the file. They may also come from a .env file.
const (
	EnvConfig   = "CALENDAR_CONFIG"
	EnvDatabase = "CALENDAR_DB"
	EnvLogFile  = "CALENDAR_LOG"
)

// Config is the application configuration.
type Config struct {
	// Database is the sqlite file holding events, categories and the date index.
	Database string `yaml:"database"`
	LogFile  string `yaml:"log_file"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
	// WeekStart is the first column of the month grid: "sunday" (default) or "monday".
	WeekStart string `yaml:"week_start"`
}

// DefaultConfig returns the configuration written on first run, rooted at dir.
func DefaultConfig(dir string) *Config {
	return &Config{
		Database:  filepath.Join(dir, "calendar.sqlite"),
		LogFile:   filepath.Join(dir, "debug.log"),
		LogLevel:  "info",
		WeekStart: "sunday",
	}
}

// DefaultPath returns the config file location: $CALENDAR_CONFIG if set, otherwise
// calendar.yaml in the user config directory.
func DefaultPath() (string, error) {
	if path := os.Getenv(EnvConfig); path != "" {
		return path, nil
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("error finding config dir: %w", err)
	}

	return filepath.Join(dir, "pocket-calendar", "calendar.yaml"), nil
}

// LoadEnv reads .env from the working directory if there is one.
func LoadEnv() error {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("error loading .env: %w", err)
	}

	return nil
}

// Load reads the config at path, writing the defaults there first if the file does not exist.
// Environment overrides are applied after reading.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)

	switch {
	case errors.Is(err, fs.ErrNotExist):
		cfg := DefaultConfig(filepath.Dir(path))
		if err := Save(path, cfg); err != nil {
			return nil, err
		}

		cfg.applyEnv()

		return cfg, nil
	case err != nil:
		return nil, fmt.Errorf("error reading config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("error parsing config %s: %w", path, err)
	}

	cfg.Normalize(filepath.Dir(path))
	cfg.applyEnv()

	return &cfg, nil
}

// Save writes cfg to path, creating the parent directory.
func Save(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("error creating config dir %s: %w", dir, err)
	}

	cfg.Normalize(dir)

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("error writing config %s: %w", path, err)
	}

	return nil
}

// Normalize fills missing or unknown values with defaults rooted at dir.
func (c *Config) Normalize(dir string) {
	defaults := DefaultConfig(dir)

	if c.Database == "" {
		c.Database = defaults.Database
	}

	if c.LogFile == "" {
		c.LogFile = defaults.LogFile
	}

	if _, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel)); err != nil || c.LogLevel == "" {
		c.LogLevel = defaults.LogLevel
	}

	c.LogLevel = strings.ToLower(c.LogLevel)

	switch strings.ToLower(c.WeekStart) {
	case "sunday", "monday":
		c.WeekStart = strings.ToLower(c.WeekStart)
	default:
		c.WeekStart = defaults.WeekStart
	}
}

// Level returns the configured log level.
func (c *Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}

	return level
}

// FirstWeekday returns the weekday of the first grid column.
func (c *Config) FirstWeekday() time.Weekday {
	if c.WeekStart == "monday" {
		return time.Monday
	}

	return time.Sunday
}

func (c *Config) applyEnv() {
	if db := os.Getenv(EnvDatabase); db != "" {
		c.Database = db
	}

	if logFile := os.Getenv(EnvLogFile); logFile != "" {
		c.LogFile = logFile
	}
}
