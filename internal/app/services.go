package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/bandit-backend/internal/platform/logger"
	"github.com/yungbote/bandit-backend/internal/realtime/bus"
	"github.com/yungbote/bandit-backend/internal/services"
)

type Services struct {
	Experiment services.ExperimentService
}

func wireServices(db *gorm.DB, log *logger.Logger, reposet Repos, events bus.Bus) Services {
	log.Info("Wiring services...")
	return Services{
		Experiment: services.NewExperimentService(db, log, reposet.Session, reposet.Trial, reposet.Rating, events),
	}
}

// wireEventBus falls back to a no-op bus when Redis is not configured or unreachable;
// the experiment API never depends on event delivery.
func wireEventBus(log *logger.Logger, cfg Config) bus.Bus {
	if cfg.Redis.Addr == "" {
		log.Info("REDIS_ADDR not set, lifecycle events disabled")
		return bus.NewNoopBus()
	}
	b, err := bus.NewRedisBus(log, cfg.BusConfig())
	if err != nil {
		log.Warn("Redis event bus unavailable, lifecycle events disabled", "addr", cfg.Redis.Addr, "error", err)
		return bus.NewNoopBus()
	}
	log.Info("Publishing lifecycle events to Redis", "addr", cfg.Redis.Addr, "channel", cfg.BusConfig().Channel)
	return b
}
