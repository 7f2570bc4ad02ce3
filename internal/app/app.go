package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/specialistvlad/layoutgrid/internal/config"
	"github.com/specialistvlad/layoutgrid/internal/ctxlog"
	"github.com/specialistvlad/layoutgrid/internal/engine"
	"github.com/specialistvlad/layoutgrid/internal/inmemorystore"
	"github.com/specialistvlad/layoutgrid/internal/layoutstore"
	"github.com/specialistvlad/layoutgrid/internal/persist"
	"github.com/specialistvlad/layoutgrid/internal/sqlitestore"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	ctx    context.Context
	logger *slog.Logger
	config *config.Config
	store  layoutstore.Store
	close  func() error
	writer *persist.Writer
	env    engine.Env
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App with its own isolated logger writing to logW. Close must
// be called to release the store.
func NewApp(ctx context.Context, logW io.Writer, cfg *config.Config) (*App, error) {
	logger := newLogger(cfg.Log.Level, cfg.Log.Format, logW)
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("Logger configured successfully.")

	store, closeStore, err := openStore(ctx, cfg.Storage)
	if err != nil {
		return nil, err
	}
	logger.Debug("Layout store opened.", "type", cfg.Storage.Type)

	return &App{
		ctx:    ctx,
		logger: logger,
		config: cfg,
		store:  store,
		close:  closeStore,
		writer: persist.NewWriter(ctx, store),
		env:    engine.Env{Logger: logger},
	}, nil
}

func openStore(ctx context.Context, cfg config.StorageConfig) (layoutstore.Store, func() error, error) {
	switch cfg.Type {
	case config.StorageMemory:
		return inmemorystore.New(), func() error { return nil }, nil
	case config.StorageSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("failed to create storage directory: %w", err)
		}
		s, err := sqlitestore.Open(ctx, cfg.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open layout store: %w", err)
		}
		return s, s.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage type %q", cfg.Type)
	}
}

// Context returns the application context, which carries its logger.
func (a *App) Context() context.Context {
	return a.ctx
}

// Env returns the environment new layouts are created with.
func (a *App) Env() engine.Env {
	return a.env
}

// Config returns the configuration the application was created with.
func (a *App) Config() *config.Config {
	return a.config
}

// Keys lists the keys of the stored layouts.
func (a *App) Keys() ([]string, error) {
	lister, ok := a.store.(layoutstore.Lister)
	if !ok {
		return nil, fmt.Errorf("storage %q cannot list layouts", a.config.Storage.Type)
	}
	return lister.Keys(a.ctx)
}

// Close waits for pending writes and releases the store.
func (a *App) Close() error {
	a.logger.Debug("Closing application.")
	flushErr := a.writer.Flush(a.ctx)
	if err := a.close(); err != nil {
		return fmt.Errorf("failed to close layout store: %w", err)
	}
	return flushErr
}
