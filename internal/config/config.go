package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/abhisek/kidscreen/internal/predict"
)

// Config holds all application configuration.
type Config struct {
	Predict PredictConfig `toml:"predict"`
	Store   StoreConfig   `toml:"store"`
	Log     LogConfig     `toml:"log"`
}

// PredictConfig configures the prediction endpoint.
type PredictConfig struct {
	Endpoint string `toml:"endpoint"`
	// Timeout is a Go duration string. Empty or "0" leaves requests unbounded.
	Timeout string `toml:"timeout"`
	// Mock answers every submission with MockLabel instead of calling out.
	Mock      bool   `toml:"mock"`
	MockLabel string `toml:"mock_label"`
	// Retries is how many extra attempts a transient failure gets. 0 sends once.
	Retries int `toml:"retries"`
}

// StoreConfig configures the submission history.
type StoreConfig struct {
	DBPath string `toml:"db_path"` // Default: XDG data dir
	// Keep is how many submissions to retain; 0 keeps everything.
	Keep int `toml:"keep"`
}

// LogConfig configures the log file.
type LogConfig struct {
	File  string `toml:"file"`  // Default: next to the database
	Level string `toml:"level"` // zerolog level name
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Predict: PredictConfig{
			Endpoint:  predict.DefaultEndpoint,
			MockLabel: "Low likelihood",
		},
		Store: StoreConfig{
			Keep: 500,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// TimeoutDuration parses Predict.Timeout.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	if c.Predict.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Predict.Timeout)
	if err != nil {
		return 0, fmt.Errorf("predict.timeout: %w", err)
	}
	return d, nil
}

// Validate checks values that would otherwise fail later.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Predict.Endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("predict.endpoint %q is not an absolute URL", c.Predict.Endpoint)
	}
	d, err := c.TimeoutDuration()
	if err != nil {
		return err
	}
	if d < 0 {
		return errors.New("predict.timeout must not be negative")
	}
	if c.Predict.Retries < 0 {
		return errors.New("predict.retries must not be negative")
	}
	if c.Store.Keep < 0 {
		return errors.New("store.keep must not be negative")
	}
	return nil
}

// DefaultPath returns $XDG_CONFIG_HOME/kidscreen/config.toml, falling back
// to ~/.config.
func DefaultPath() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "kidscreen", "config.toml"), nil
}

// Load builds the configuration in priority order (later wins):
// defaults, the TOML file, .env, then KIDSCREEN_* environment variables.
// An explicit path must exist; the default path is optional.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	if err := cfg.mergeFile(path); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	// .env is optional; variables already set in the process win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides fields from KIDSCREEN_* variables found by lookupEnv.
func (c *Config) ApplyEnv(lookupEnv func(string) (string, bool)) error {
	if v, ok := lookupEnv("KIDSCREEN_ENDPOINT"); ok && v != "" {
		c.Predict.Endpoint = v
	}
	if v, ok := lookupEnv("KIDSCREEN_TIMEOUT"); ok && v != "" {
		c.Predict.Timeout = v
	}
	if v, ok := lookupEnv("KIDSCREEN_MOCK"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("KIDSCREEN_MOCK: %w", err)
		}
		c.Predict.Mock = b
	}
	if v, ok := lookupEnv("KIDSCREEN_RETRIES"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("KIDSCREEN_RETRIES: %w", err)
		}
		c.Predict.Retries = n
	}
	if v, ok := lookupEnv("KIDSCREEN_DB"); ok && v != "" {
		c.Store.DBPath = v
	}
	if v, ok := lookupEnv("KIDSCREEN_LOG_FILE"); ok && v != "" {
		c.Log.File = v
	}
	if v, ok := lookupEnv("KIDSCREEN_LOG_LEVEL"); ok && v != "" {
		c.Log.Level = v
	}
	return nil
}
