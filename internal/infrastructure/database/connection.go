// Package database manages the GORM connection lifecycle.
package database

import (
	"fmt"
	"sync"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"maintdesk/internal/infrastructure/config"
	applogger "maintdesk/internal/shared/logger"
)

var (
	db   *gorm.DB
	dbMu sync.RWMutex
)

// Init opens the sqlite database and stores the shared handle.
func Init(cfg *config.DatabaseConfig) error {
	database, err := Open(cfg.Path)
	if err != nil {
		return err
	}

	dbMu.Lock()
	db = database
	dbMu.Unlock()

	applogger.Info("database connection established", "path", cfg.Path)

	return nil
}

// Open opens a sqlite database at the given path. ":memory:" yields an
// in-memory database, used by tests.
func Open(path string) (*gorm.DB, error) {
	gormLogger := gormlogger.New(
		&slogWriter{},
		gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	database, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return database, nil
}

// Get returns the shared database handle.
func Get() *gorm.DB {
	dbMu.RLock()
	defer dbMu.RUnlock()
	return db
}

// Close closes the shared database handle.
func Close() error {
	dbMu.RLock()
	currentDB := db
	dbMu.RUnlock()

	if currentDB == nil {
		return nil
	}

	sqlDB, err := currentDB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Close()
}

// slogWriter adapts the application logger to GORM's logger writer.
type slogWriter struct{}

func (slogWriter) Printf(format string, args ...interface{}) {
	applogger.Warn(fmt.Sprintf(format, args...))
}
