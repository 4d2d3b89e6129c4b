package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/yungbote/bandit-backend/internal/data/db"
	"github.com/yungbote/bandit-backend/internal/platform/logger"
)

func memoryConfig() Config {
	cfg := DefaultConfig()
	cfg.DB.SQLitePath = db.MemoryPath
	return cfg
}

func TestDefaultConfigMatchesServingDefaults(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, ":8000", cfg.Addr())
	assert.Equal(t, db.DriverSQLite, cfg.DB.Driver)
	assert.Equal(t, "./sql_app.db", cfg.DB.SQLitePath)
	assert.Contains(t, cfg.CORSAllowedOrigins, "null")
	require.NoError(t, cfg.Validate())
}

func TestLoadConfigLayersFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bandit.yaml")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join([]string{
		"port: 9100",
		"cors_allowed_origins: [\"https://lab.example.org\"]",
		"db:",
		"  driver: postgres",
		"  postgres:",
		"    host: db.internal",
		"    name: bandit",
		"redis:",
		"  channel: lab.events",
	}, "\n")), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "9200")
	t.Setenv("POSTGRES_USER", "lab")
	t.Setenv("DB_SLOW_QUERY_MS", "750")

	cfg, err := LoadConfig(logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, 9200, cfg.Port, "env wins over file")
	assert.Equal(t, db.DriverPostgres, cfg.DB.Driver)
	assert.Equal(t, "db.internal", cfg.DB.Postgres.Host)
	assert.Equal(t, "lab", cfg.DB.Postgres.User)
	assert.Equal(t, "5432", cfg.DB.Postgres.Port, "defaults survive the overlay")
	assert.Equal(t, []string{"https://lab.example.org"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "lab.events", cfg.BusConfig().Channel)
	assert.Equal(t, 750*time.Millisecond, cfg.StoreConfig().SlowThreshold)
}

func TestLoadConfigRejectsUnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "mysql")
	_, err := LoadConfig(logger.Nop())
	require.Error(t, err)
}

func TestLoadConfigMissingFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "absent.yaml"))
	_, err := LoadConfig(logger.Nop())
	require.Error(t, err)
}

func TestNewWithConfigServesExperimentRoutes(t *testing.T) {
	a, err := NewWithConfig(context.Background(), logger.Nop(), memoryConfig())
	require.NoError(t, err)
	t.Cleanup(a.Close)

	rec := httptest.NewRecorder()
	a.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	a.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/session/end/p1", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "null", strings.TrimSpace(rec.Body.String()))

	assert.True(t, a.DB.Migrator().HasTable("sessions"))
}

func TestMigrateCreatesTables(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DB.SQLitePath = filepath.Join(t.TempDir(), "bandit.db")
	require.NoError(t, Migrate(context.Background(), logger.Nop(), cfg))

	store, err := OpenStore(logger.Nop(), cfg)
	require.NoError(t, err)
	defer store.Close()
	for _, table := range []string{"sessions", "trials", "ratings"} {
		assert.True(t, store.DB().Migrator().HasTable(table), table)
	}
}

func TestNewBuildsLoggerFromConfiguredMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bandit.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_mode: test\ndb:\n  sqlite_path: \":memory:\"\n"), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("LOG_MODE", "")

	a, err := New(context.Background(), logger.Nop())
	require.NoError(t, err)
	t.Cleanup(a.Close)

	core := a.Log.SugaredLogger.Desugar().Core()
	assert.False(t, core.Enabled(zapcore.DebugLevel), "test mode logs warnings and above")
	assert.True(t, core.Enabled(zapcore.WarnLevel))
}
