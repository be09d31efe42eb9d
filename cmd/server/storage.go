package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/fastygo/todo/internal/config"
	"github.com/fastygo/todo/internal/infrastructure/monitor"
	pgInfra "github.com/fastygo/todo/internal/infrastructure/postgres"
	sqliteInfra "github.com/fastygo/todo/internal/infrastructure/sqlite"
	"github.com/fastygo/todo/internal/services/lifecycle"
	"github.com/fastygo/todo/repository"
	"github.com/fastygo/todo/repository/postgres"
	"github.com/fastygo/todo/repository/sqlite"
)

type storage struct {
	users repository.UserRepository
	tasks repository.TaskRepository
}

// openStorage connects the configured backend, prepares its schema and
// registers its health check and shutdown hook.
func openStorage(ctx context.Context, cfg *config.Config, mon *monitor.Monitor, manager *lifecycle.Manager, logger *zap.Logger) (*storage, error) {
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		return openPostgres(ctx, cfg, mon, manager, logger)
	case config.DriverSQLite:
		return openSQLite(cfg, mon, manager, logger)
	default:
		return nil, fmt.Errorf("unsupported driver %q", cfg.Database.Driver)
	}
}

func openPostgres(ctx context.Context, cfg *config.Config, mon *monitor.Monitor, manager *lifecycle.Manager, logger *zap.Logger) (*storage, error) {
	if cfg.Database.CreateIfMissing {
		if err := pgInfra.EnsureDatabase(ctx, cfg.Database, logger); err != nil {
			return nil, fmt.Errorf("ensure database: %w", err)
		}
	}
	if cfg.Migrations.Enabled {
		if err := pgInfra.RunMigrations(cfg, logger); err != nil {
			return nil, fmt.Errorf("migrations: %w", err)
		}
	}

	pool, err := pgInfra.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("postgres connection: %w", err)
	}
	manager.Register("postgres", func(ctx context.Context) error {
		pgInfra.Close(pool, logger)
		return nil
	})
	mon.Register("postgres", pool.Ping)

	return &storage{
		users: postgres.NewUserRepository(pool),
		tasks: postgres.NewTaskRepository(pool),
	}, nil
}

func openSQLite(cfg *config.Config, mon *monitor.Monitor, manager *lifecycle.Manager, logger *zap.Logger) (*storage, error) {
	db, err := sqliteInfra.Open(cfg.SQLite, logger)
	if err != nil {
		return nil, err
	}
	manager.Register("sqlite", func(ctx context.Context) error {
		return sqliteInfra.Close(db)
	})

	if err := sqlite.Migrate(db, cfg.Database.ResetOnStartup); err != nil {
		return nil, fmt.Errorf("sqlite schema: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	mon.Register("sqlite", sqlDB.PingContext)

	return &storage{
		users: sqlite.NewUserRepository(db),
		tasks: sqlite.NewTaskRepository(db),
	}, nil
}
