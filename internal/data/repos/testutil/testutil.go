package testutil

import (
	"testing"

	"gorm.io/gorm"

	"github.com/yungbote/bandit-backend/internal/data/db"
	"github.com/yungbote/bandit-backend/internal/platform/logger"
)

func Logger(tb testing.TB) *logger.Logger {
	tb.Helper()
	logg, err := logger.New("test")
	if err != nil {
		tb.Fatalf("failed to init logger: %v", err)
	}
	return logg
}

// DB opens a fresh, migrated in-memory SQLite store that is closed when the test ends.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()
	svc, err := db.Open(db.Config{Driver: db.DriverSQLite, SQLitePath: db.MemoryPath}, Logger(tb))
	if err != nil {
		tb.Fatalf("failed to open test db: %v", err)
	}
	tb.Cleanup(func() { _ = svc.Close() })
	if err := svc.AutoMigrateAll(); err != nil {
		tb.Fatalf("failed to migrate test db: %v", err)
	}
	return svc.DB()
}

func Tx(tb testing.TB, db *gorm.DB) *gorm.DB {
	tb.Helper()
	tx := db.Begin()
	if tx.Error != nil {
		tb.Fatalf("begin tx: %v", tx.Error)
	}
	tb.Cleanup(func() {
		_ = tx.Rollback().Error
	})
	return tx
}
