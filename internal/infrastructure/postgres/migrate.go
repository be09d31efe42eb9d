package postgres

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/fastygo/todo/internal/config"
)

//go:embed migrations/*.sql
var embeddedMigrations embed.FS

// RunMigrations applies schema migrations when enabled in configuration.
// With Database.ResetOnStartup every migration is rolled back first, which
// deletes all users and tasks.
func RunMigrations(cfg *config.Config, logger *zap.Logger) error {
	if cfg == nil || !cfg.Migrations.Enabled {
		return nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	sqlDB, err := sql.Open("postgres", cfg.Database.URL)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(sqlDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := newMigrator(cfg, driver)
	if err != nil {
		return err
	}
	defer m.Close()

	if cfg.Database.ResetOnStartup {
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("reset tables: %w", err)
		}
		logger.Warn("database tables dropped (RESET_TABLES_ON_STARTUP)")
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	logger.Info("database migrations applied")
	return nil
}

func newMigrator(cfg *config.Config, driver database.Driver) (*migrate.Migrate, error) {
	if cfg.Migrations.Path != "" {
		sourceURL := fmt.Sprintf("file://%s", filepath.ToSlash(cfg.Migrations.Path))
		return migrate.NewWithDatabaseInstance(sourceURL, cfg.Database.Name, driver)
	}
	source, err := iofs.New(embeddedMigrations, "migrations")
	if err != nil {
		return nil, err
	}
	return migrate.NewWithInstance("iofs", source, cfg.Database.Name, driver)
}
