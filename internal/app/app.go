// Package app wires the backend: it opens the configured task store and
// guards sqlite data directories against a second server instance.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/dori/taskflow/internal/config"
	"github.com/dori/taskflow/internal/db"
	"github.com/dori/taskflow/internal/logging"
	"github.com/dori/taskflow/internal/pgdb"
	"github.com/dori/taskflow/internal/server"
)

// ErrAlreadyRunning is returned when another server holds the data dir lock.
var ErrAlreadyRunning = errors.New("another instance of taskflow is already serving this database")

// App holds the backend state and dependencies
type App struct {
	Store   server.Store
	Service *server.Service
	Driver  config.Driver
	DataDir string

	lockFile *flock.Flock
	close    func() error
}

// New opens the store selected by cfg.Database.
func New(ctx context.Context, cfg config.DatabaseConfig, log logging.Logger) (*App, error) {
	if log == nil {
		log = logging.Discard()
	}
	app := &App{Driver: cfg.Driver}

	switch cfg.Driver {
	case config.DriverMemory:
		app.Store = server.NewMemoryStore()

	case config.DriverSQLite:
		app.DataDir = filepath.Dir(cfg.Path)
		if err := os.MkdirAll(app.DataDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
		// Acquire lock to ensure single instance
		if err := app.acquireLock(); err != nil {
			return nil, err
		}
		database, err := db.Open(cfg.Path, log)
		if err != nil {
			app.releaseLock()
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		app.Store = database
		app.close = database.Close

	case config.DriverPostgres:
		store, err := pgdb.Connect(ctx, cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		app.Store = store
		app.close = store.Close

	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}

	app.Service = server.NewService(app.Store, server.WithServiceLogger(log))
	log.Info("store opened", "driver", cfg.Driver)
	return app, nil
}

// acquireLock acquires an exclusive file lock to prevent multiple instances
func (a *App) acquireLock() error {
	lockPath := filepath.Join(a.DataDir, "taskflow.lock")
	a.lockFile = flock.New(lockPath)

	locked, err := a.lockFile.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}

	if !locked {
		return ErrAlreadyRunning
	}

	return nil
}

// releaseLock releases the file lock
func (a *App) releaseLock() {
	if a.lockFile != nil {
		a.lockFile.Unlock()
	}
}

// Close cleans up application resources
func (a *App) Close() error {
	var errs []error

	if a.close != nil {
		if err := a.close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close store: %w", err))
		}
	}

	a.releaseLock()

	return errors.Join(errs...)
}
