package sqlite

import (
	"fmt"

	"gorm.io/gorm"
)

// Migrate creates the users and tasks tables. With reset set, both tables
// are dropped first and every stored row is lost.
func Migrate(db *gorm.DB, reset bool) error {
	if reset {
		if err := db.Migrator().DropTable(&taskRecord{}, &userRecord{}); err != nil {
			return fmt.Errorf("drop tables: %w", err)
		}
	}
	if err := db.AutoMigrate(&userRecord{}, &taskRecord{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
