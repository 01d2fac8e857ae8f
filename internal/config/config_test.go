package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/kidscreen/internal/predict"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, predict.DefaultEndpoint, cfg.Predict.Endpoint)
	assert.NoError(t, cfg.Validate())

	d, err := cfg.TimeoutDuration()
	require.NoError(t, err)
	assert.Zero(t, d, "requests are unbounded by default")
	assert.Zero(t, cfg.Predict.Retries)
}

func TestLoad_ExplicitFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.toml", `
[predict]
endpoint = "http://localhost:5000/predict"
timeout = "15s"

[store]
keep = 20

[log]
level = "debug"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5000/predict", cfg.Predict.Endpoint)
	assert.Equal(t, 20, cfg.Store.Keep)
	assert.Equal(t, "debug", cfg.Log.Level)
	// Unset values keep their defaults.
	assert.Equal(t, "Low likelihood", cfg.Predict.MockLabel)

	d, err := cfg.TimeoutDuration()
	require.NoError(t, err)
	assert.Equal(t, 15*time.Second, d)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestLoad_MissingDefaultFileIsFine(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := Load("")
	require.NoError(t, err)
	assert.NotNil(t, cfg)
}

func TestLoad_DefaultFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	writeFile(t, dir, filepath.Join("kidscreen", "config.toml"), `
[predict]
mock = true
mock_label = "High likelihood"
`)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.True(t, cfg.Predict.Mock)
	assert.Equal(t, "High likelihood", cfg.Predict.MockLabel)
}

func TestLoad_BadTOML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.toml", "[predict\nendpoint=")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"KIDSCREEN_ENDPOINT":  "https://example.test/predict",
		"KIDSCREEN_TIMEOUT":   "5s",
		"KIDSCREEN_MOCK":      "true",
		"KIDSCREEN_RETRIES":   "2",
		"KIDSCREEN_DB":        "/tmp/k.db",
		"KIDSCREEN_LOG_FILE":  "/tmp/k.log",
		"KIDSCREEN_LOG_LEVEL": "warn",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := DefaultConfig()
	require.NoError(t, cfg.ApplyEnv(lookup))
	assert.Equal(t, "https://example.test/predict", cfg.Predict.Endpoint)
	assert.Equal(t, "5s", cfg.Predict.Timeout)
	assert.True(t, cfg.Predict.Mock)
	assert.Equal(t, 2, cfg.Predict.Retries)
	assert.Equal(t, "/tmp/k.db", cfg.Store.DBPath)
	assert.Equal(t, "/tmp/k.log", cfg.Log.File)
	assert.Equal(t, "warn", cfg.Log.Level)

	env["KIDSCREEN_MOCK"] = "maybe"
	assert.Error(t, DefaultConfig().ApplyEnv(lookup))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"relative endpoint", func(c *Config) { c.Predict.Endpoint = "/predict" }},
		{"empty endpoint", func(c *Config) { c.Predict.Endpoint = "" }},
		{"bad timeout", func(c *Config) { c.Predict.Timeout = "soon" }},
		{"negative timeout", func(c *Config) { c.Predict.Timeout = "-1s" }},
		{"negative retries", func(c *Config) { c.Predict.Retries = -1 }},
		{"negative keep", func(c *Config) { c.Store.Keep = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
