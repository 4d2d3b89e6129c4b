package db

import (
	"fmt"
	"strings"

	"gorm.io/driver/sqlite"

	"github.com/yungbote/bandit-backend/internal/platform/logger"
)

const MemoryPath = ":memory:"

// SQLiteDSN enables foreign keys on every connection. File databases also get WAL and a
// busy timeout so request goroutines queue on the writer lock instead of failing.
func SQLiteDSN(path string) string {
	path = strings.TrimSpace(path)
	if path == "" || path == MemoryPath {
		return "file::memory:?_foreign_keys=on"
	}
	return fmt.Sprintf("file:%s?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000", path)
}

func openSQLite(cfg Config, logg *logger.Logger) (*Service, error) {
	// SQLite allows one writer; a single connection also keeps an in-memory database alive and shared.
	cfg.MaxOpenConns = 1
	cfg.MaxIdleConns = 1
	return OpenDialector(DriverSQLite, sqlite.Open(SQLiteDSN(cfg.SQLitePath)), cfg, logg)
}
