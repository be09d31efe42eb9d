package sqlite

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	sqliteDriver "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/fastygo/todo/internal/config"
)

// Open creates the SQLite database file (and its directory) and returns a
// gorm handle with foreign keys enforced on every pooled connection.
func Open(cfg config.SQLiteConfig, logger *zap.Logger) (*gorm.DB, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if dir := filepath.Dir(cfg.Path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	logMode := gormLogger.Default.LogMode(gormLogger.Silent)
	if cfg.LogQueries {
		logMode = gormLogger.Default.LogMode(gormLogger.Info)
	}

	dsn := cfg.Path + "?_foreign_keys=on&_busy_timeout=5000&_journal_mode=WAL&_synchronous=NORMAL"
	db, err := gorm.Open(sqliteDriver.Open(dsn), &gorm.Config{
		Logger:         logMode,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Hour)

	logger.Info("opened sqlite database", zap.String("path", cfg.Path))
	return db, nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
