package sqlite

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewGormDB opens a SQLite database for local runs. Pass a "file:...?mode=memory" DSN for an in-memory store.
func NewGormDB(path string) (*gorm.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get generic database object: %w", err)
	}
	// SQLite serializes writers; a single connection keeps transactions from tripping SQLITE_BUSY.
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}
