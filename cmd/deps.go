package cmd

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/abhisek/kidscreen/internal/config"
	"github.com/abhisek/kidscreen/internal/logging"
	"github.com/abhisek/kidscreen/internal/predict"
	"github.com/abhisek/kidscreen/internal/store"
)

// deps is everything a command needs, built from config and flags.
type deps struct {
	cfg       *config.Config
	logger    zerolog.Logger
	repo      store.SubmissionRepo
	predictor predict.Predictor
	status    string
	closers   []io.Closer
}

// loadConfig reads the config file and applies the global flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.Store.DBPath = p
	}
	if e, _ := cmd.Flags().GetString("endpoint"); e != "" {
		cfg.Predict.Endpoint = e
	}
	if cmd.Flags().Changed("mock") {
		cfg.Predict.Mock, _ = cmd.Flags().GetBool("mock")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolveDBPath returns the configured database path, or the default XDG
// path, making sure its directory exists.
func resolveDBPath(cfg *config.Config) (string, error) {
	if p := cfg.Store.DBPath; p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore loads config and opens the history database only.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return st, nil
}

// loadDeps builds the logger, store and predictor for a command.
func loadDeps(cmd *cobra.Command) (*deps, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	d := &deps{cfg: cfg}

	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}

	logPath := cfg.Log.File
	if logPath == "" {
		logPath = filepath.Join(filepath.Dir(dbPath), "kidscreen.log")
	}
	logger, closer, err := logging.OpenFile(logPath, cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	d.logger = logger
	d.closers = append(d.closers, closer)

	st, err := store.Open(dbPath)
	if err != nil {
		d.Close()
		return nil, fmt.Errorf("open database: %w", err)
	}
	d.repo = st.SubmissionRepo()
	d.closers = append(d.closers, st)

	if cfg.Store.Keep > 0 {
		if err := d.repo.Prune(context.Background(), cfg.Store.Keep); err != nil {
			logger.Warn().Err(err).Int("keep", cfg.Store.Keep).Msg("failed to prune history")
		}
	}

	inner, status, err := buildPredictor(cfg, logger)
	if err != nil {
		d.Close()
		return nil, err
	}
	d.predictor = predict.WithHistory(inner, d.repo, logger)
	d.status = status

	logger.Info().
		Str("db", dbPath).
		Str("predictor", status).
		Msg("dependencies ready")
	return d, nil
}

// buildPredictor returns the configured predictor and a short label for it.
func buildPredictor(cfg *config.Config, logger zerolog.Logger) (predict.Predictor, string, error) {
	if cfg.Predict.Mock {
		m := predict.NewMock()
		m.Fallback = &predict.MockResponse{Label: cfg.Predict.MockLabel}
		return m, "mock", nil
	}

	timeout, err := cfg.TimeoutDuration()
	if err != nil {
		return nil, "", err
	}
	var p predict.Predictor = predict.NewClient(cfg.Predict.Endpoint,
		predict.WithTimeout(timeout),
		predict.WithLogger(logger),
	)
	if cfg.Predict.Retries > 0 {
		p = predict.WithRetry(p, predict.DefaultRetryConfig(cfg.Predict.Retries+1))
	}

	status := cfg.Predict.Endpoint
	if u, err := url.Parse(cfg.Predict.Endpoint); err == nil {
		status = u.Host
	}
	return p, status, nil
}

// Close releases everything loadDeps opened, in reverse order.
func (d *deps) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		d.closers[i].Close()
	}
	d.closers = nil
}
