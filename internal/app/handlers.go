package app

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/bandit-backend/internal/http"
	httpH "github.com/yungbote/bandit-backend/internal/http/handlers"
	"github.com/yungbote/bandit-backend/internal/observability"
	"github.com/yungbote/bandit-backend/internal/platform/logger"
)

type Handlers struct {
	Health     *httpH.HealthHandler
	Experiment *httpH.ExperimentHandler
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:     httpH.NewHealthHandler(),
		Experiment: httpH.NewExperimentHandler(services.Experiment),
	}
}

func wireRouter(log *logger.Logger, cfg Config, handlers Handlers) *gin.Engine {
	tracing := ""
	if cfg.Otel.Enabled {
		tracing = observability.DefaultServiceName
	}
	return http.NewRouter(http.RouterConfig{
		Log:               log,
		CORSOrigins:       cfg.CORSAllowedOrigins,
		TracingService:    tracing,
		HealthHandler:     handlers.Health,
		ExperimentHandler: handlers.Experiment,
	})
}
