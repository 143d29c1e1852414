package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/showtime/internal/repositories"
	"github.com/desertthunder/showtime/internal/session"
	"github.com/desertthunder/showtime/internal/shared"
	"github.com/urfave/cli/v3"
)

const configPath = "config.toml"

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat(configPath); err == nil {
		if loadedConfig, err := shared.LoadConfig(configPath); err == nil {
			config = loadedConfig
		} else {
			logger.Warn("failed to load config, using defaults", "error", err)
		}
	}
	config.ApplyEnv(os.LookupEnv)

	if err := shared.SetLogLevel(logger, config.Logging.Level); err != nil {
		logger.Warn("ignoring log level", "error", err)
	}

	store, cache, db, err := openStores(config, logger)
	if err != nil {
		logger.Fatalf("failed to open session store: %v", err)
	}
	if db != nil {
		defer db.Close()
	}

	manager := session.NewManager(store, logger)
	if err := manager.Restore(); err != nil {
		logger.Warn("failed to restore session", "error", err)
	}

	opts := RunnerOpts{
		Config:     config,
		ConfigPath: configPath,
		Session:    manager,
		Logger:     logger,
	}
	if cache != nil {
		opts.Cache = cache
	}
	runner := NewRunner(opts)

	app := &cli.Command{
		Name:     "showtime",
		Usage:    "Browse movies and book seats from the terminal",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		if db != nil {
			db.Close()
		}
		logger.Fatalf("application error: %v", err)
	}
}

// openStores picks the session store named by config. The sqlite driver also provides the booking cache.
func openStores(config *shared.Config, logger *log.Logger) (session.Store, *repositories.BookingRepository, *sql.DB, error) {
	switch config.Session.Driver {
	case "file":
		store, err := session.NewFileStore(config.Session.Path)
		if err != nil {
			return nil, nil, nil, err
		}
		logger.Debug("using file session store", "path", store.Path())
		return store, nil, nil, nil
	case "", "sqlite":
		db, err := shared.OpenDatabase(config.Database)
		if err != nil {
			return nil, nil, nil, err
		}
		logger.Debug("using sqlite session store", "path", config.Database.Path)
		store := repositories.NewClientStateRepository(db).Bind(repositories.SessionKey)
		return store, repositories.NewBookingRepository(db), db, nil
	default:
		return nil, nil, nil, fmt.Errorf("%w: unknown session driver %q", shared.ErrInvalidConfig, config.Session.Driver)
	}
}
