package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sant0-9/promptmaster/internal/app"
	"github.com/sant0-9/promptmaster/internal/config"
	"github.com/sant0-9/promptmaster/internal/llm"
	"github.com/sant0-9/promptmaster/internal/store"
)

// env is everything a command needs: config, logging and the store.
type env struct {
	cfg          *config.Config
	configExists bool
	kv           store.KV
	app          *app.Store
	logFile      io.Closer
	log          *slog.Logger
}

func loadConfig(path string) (*config.Config, bool, error) {
	if path == "" {
		p, err := config.ConfigPath()
		if err != nil {
			return nil, false, err
		}
		path = p
	}

	cfg, err := config.LoadFrom(path)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
		cfg.SetPath(path)
		return cfg, false, nil
	}
	return cfg, true, nil
}

// setupLogging sends slog output to the log file; the terminal belongs to
// the interface.
func setupLogging(path string, verbose bool) (io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return nil, err
	}

	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(f, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
	return f, nil
}

func openEnv(opts *RootOptions) (*env, error) {
	cfg, exists, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	logPath, err := cfg.LogPath()
	if err != nil {
		return nil, err
	}
	logFile, err := setupLogging(logPath, opts.Verbose)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	backend := cfg.Storage.Backend
	if opts.Ephemeral {
		backend = store.BackendMemory
	}
	storagePath, err := cfg.StoragePath()
	if err != nil {
		logFile.Close()
		return nil, err
	}
	kv, err := store.Open(backend, storagePath)
	if err != nil {
		logFile.Close()
		return nil, fmt.Errorf("failed to open %s storage at %s: %w", backend, storagePath, err)
	}

	return &env{
		cfg:          cfg,
		configExists: exists,
		kv:           kv,
		app:          app.New(store.New(kv), nil),
		logFile:      logFile,
		log:          slog.Default().With("component", "cli"),
	}, nil
}

// connect installs the configured provider as the store's generator.
func (e *env) connect(ctx context.Context) error {
	provider, err := llm.NewProvider(ctx, e.cfg)
	if err != nil {
		return err
	}
	e.app.SetGenerator(llm.NewClient(provider, e.cfg.Model))
	return nil
}

func (e *env) Close() {
	if err := e.kv.Close(); err != nil {
		e.log.Error("failed to close storage", "error", err)
	}
	e.logFile.Close()
}
