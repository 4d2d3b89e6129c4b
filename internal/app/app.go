package app

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yungbote/bandit-backend/internal/data/db"
	"github.com/yungbote/bandit-backend/internal/http"
	"github.com/yungbote/bandit-backend/internal/observability"
	"github.com/yungbote/bandit-backend/internal/platform/logger"
	"github.com/yungbote/bandit-backend/internal/realtime/bus"
)

type App struct {
	Log      *logger.Logger
	Store    *db.Service
	DB       *gorm.DB
	Router   *gin.Engine
	Cfg      Config
	Repos    Repos
	Services Services
	Events   bus.Bus

	shutdownTracing func(context.Context) error
}

// NewLogger builds the bootstrap logger from LOG_MODE, defaulting to development.
// It only covers config loading; the app logger follows the loaded log_mode.
func NewLogger() (*logger.Logger, error) {
	return newLogger(os.Getenv("LOG_MODE"))
}

func newLogger(mode string) (*logger.Logger, error) {
	if mode == "" {
		mode = "development"
	}
	log, err := logger.New(mode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return log, nil
}

func New(ctx context.Context, bootLog *logger.Logger) (*App, error) {
	bootLog.Info("Loading configuration...")
	cfg, err := LoadConfig(bootLog)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	log, err := newLogger(cfg.LogMode)
	if err != nil {
		return nil, err
	}
	return NewWithConfig(ctx, log, cfg)
}

// NewWithConfig opens and migrates the store, then wires repos, services and the router.
func NewWithConfig(ctx context.Context, log *logger.Logger, cfg Config) (*App, error) {
	shutdownTracing := observability.InitOTel(ctx, log, cfg.TracingConfig())

	store, err := OpenStore(log, cfg)
	if err != nil {
		_ = shutdownTracing(ctx)
		return nil, err
	}
	if err := store.AutoMigrateAll(); err != nil {
		_ = store.Close()
		_ = shutdownTracing(ctx)
		return nil, fmt.Errorf("%s automigrate: %w", store.Driver(), err)
	}
	theDB := store.DB()

	events := wireEventBus(log, cfg)
	reposet := wireRepos(theDB, log)
	serviceset := wireServices(theDB, log, reposet, events)
	handlerset := wireHandlers(log, serviceset)
	router := wireRouter(log, cfg, handlerset)

	return &App{
		Log:             log,
		Store:           store,
		DB:              theDB,
		Router:          router,
		Cfg:             cfg,
		Repos:           reposet,
		Services:        serviceset,
		Events:          events,
		shutdownTracing: shutdownTracing,
	}, nil
}

func OpenStore(log *logger.Logger, cfg Config) (*db.Service, error) {
	store, err := db.Open(cfg.StoreConfig(), log)
	if err != nil {
		return nil, fmt.Errorf("init %s: %w", cfg.DB.Driver, err)
	}
	return store, nil
}

// Migrate creates the sessions, trials and ratings tables without serving.
func Migrate(ctx context.Context, log *logger.Logger, cfg Config) error {
	store, err := OpenStore(log, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()
	if err := store.Ping(ctx); err != nil {
		return fmt.Errorf("ping %s: %w", store.Driver(), err)
	}
	return store.AutoMigrateAll()
}

// Run serves HTTP until ctx is cancelled and then drains for the configured timeout.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	srv := &http.Server{Engine: a.Router}
	a.Log.Info("Serving", "addr", a.Cfg.Addr(), "driver", a.Store.Driver())
	return srv.Run(ctx, a.Cfg.Addr(), a.Cfg.ShutdownTimeout())
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.Events != nil {
		if err := a.Events.Close(); err != nil {
			a.Log.Warn("Close event bus failed", "error", err)
		}
	}
	if a.Store != nil {
		if err := a.Store.Close(); err != nil {
			a.Log.Warn("Close store failed", "error", err)
		}
	}
	if a.shutdownTracing != nil {
		ctx, cancel := context.WithTimeout(context.Background(), a.Cfg.ShutdownTimeout())
		defer cancel()
		if err := a.shutdownTracing(ctx); err != nil {
			a.Log.Warn("Shutdown tracing failed", "error", err)
		}
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
