package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens (creating if necessary) the SQLite index database.
// The database holds the authoritative mapping from album and image ids to
// on-disk variant files; it has a single writer (the sync pass) and many
// readers (the serving layer), which SQLite handles at row granularity.
func Connect(cfg Config) (*gorm.DB, error) {
	if cfg.Path != ":memory:" {
		if dir := filepath.Dir(cfg.Path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
	}

	busy := cfg.BusyTimeoutMs
	if busy <= 0 {
		busy = 5000
	}

	dsn := fmt.Sprintf("%s?_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)", cfg.Path, busy)
	if cfg.Path == ":memory:" {
		dsn = cfg.Path
	}

	// Suppress GORM logging; the application logger reports what matters.
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	db, err := gorm.Open(sqlite.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to open index database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	// A single connection serializes writers; readers share it fine for a
	// library-sized index and it sidesteps SQLITE_BUSY on the write path.
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping index database: %w", err)
	}

	return db, nil
}
