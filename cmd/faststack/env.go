package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/faststack/internal/config"
	"github.com/vovakirdan/faststack/internal/platform/tui"
	"github.com/vovakirdan/faststack/internal/storage"
)

// loadConfig reads the configuration and applies the global flag overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDBPath != "" {
		cfg.Paths.Database = config.ExpandHome(flagDBPath)
	}
	if flagLogLevel != "" {
		if _, err := log.ParseLevel(flagLogLevel); err != nil {
			return cfg, fmt.Errorf("--log-level: %w", err)
		}
		cfg.LogLevel = flagLogLevel
	}
	return cfg, nil
}

// newLogger builds the process logger. Interactive commands own the
// terminal, so their logs go to a file next to the database instead.
func newLogger(cfg config.Config, interactive bool) (*log.Logger, io.Closer, error) {
	var (
		w      io.Writer = os.Stderr
		closer io.Closer = io.NopCloser(nil)
	)
	if interactive {
		dir := filepath.Dir(cfg.Paths.Database)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(filepath.Join(dir, "faststack.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w, closer = f, f
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "faststack",
	})
	level, _ := log.ParseLevel(cfg.LogLevel) // validated by config
	logger.SetLevel(level)
	log.SetDefault(logger)
	return logger, closer, nil
}

// newEnv wires the configuration, logger, hiscore store and key bindings
// shared by the game screens. The returned cleanup closes what it opened.
func newEnv(interactive bool) (tui.Env, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return tui.Env{}, nil, err
	}

	keys, err := tui.NewKeyMapper(cfg.Keys)
	if err != nil {
		return tui.Env{}, nil, fmt.Errorf("config: keys: %w", err)
	}

	logger, logCloser, err := newLogger(cfg, interactive)
	if err != nil {
		return tui.Env{}, nil, err
	}

	// Continue without storage - the game still works
	store, err := storage.Open(cfg.Paths.Database)
	if err != nil {
		logger.Warn("could not open hiscore database", "path", cfg.Paths.Database, "error", err)
		if interactive {
			fmt.Fprintf(os.Stderr, "Warning: could not open hiscore database: %v\n", err)
		}
		store = nil
	}

	env := tui.Env{
		Config: cfg,
		Store:  store,
		Logger: logger,
		Keys:   keys,
	}
	cleanup := func() {
		if store != nil {
			store.Close()
		}
		logCloser.Close()
	}
	return env, cleanup, nil
}

// openStore opens the hiscore database for the read-only commands.
func openStore() (*storage.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return storage.Open(cfg.Paths.Database)
}
