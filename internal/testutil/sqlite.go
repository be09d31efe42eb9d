// Package testutil provides fixtures shared by package tests.
package testutil

import (
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fastygo/todo/internal/config"
	sqliteInfra "github.com/fastygo/todo/internal/infrastructure/sqlite"
	"github.com/fastygo/todo/repository/sqlite"
)

// OpenSQLite returns a migrated SQLite database in a temporary directory.
// It is closed when the test ends.
func OpenSQLite(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := sqliteInfra.Open(config.SQLiteConfig{
		Path:         filepath.Join(t.TempDir(), "todo.db"),
		MaxOpenConns: 1,
	}, zap.NewNop())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		_ = sqliteInfra.Close(db)
	})

	if err := sqlite.Migrate(db, false); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// StrPtr returns a pointer to s.
func StrPtr(s string) *string {
	return &s
}
