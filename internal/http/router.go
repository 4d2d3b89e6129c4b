package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/bandit-backend/internal/http/handlers"
	httpMW "github.com/yungbote/bandit-backend/internal/http/middleware"
	"github.com/yungbote/bandit-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log         *logger.Logger
	CORSOrigins []string
	// TracingService enables otelgin spans under this service name when non-empty.
	TracingService string

	HealthHandler     *httpH.HealthHandler
	ExperimentHandler *httpH.ExperimentHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.TracingService != "" {
		r.Use(otelgin.Middleware(cfg.TracingService))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/", cfg.HealthHandler.Root)
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		if cfg.ExperimentHandler != nil {
			api.POST("/session/start", cfg.ExperimentHandler.StartSession)
			api.PUT("/session/end/:player_id", cfg.ExperimentHandler.EndSession)

			api.POST("/trials", cfg.ExperimentHandler.LogTrial)
			api.POST("/trials/", cfg.ExperimentHandler.LogTrial)
			api.POST("/ratings", cfg.ExperimentHandler.LogRating)
			api.POST("/ratings/", cfg.ExperimentHandler.LogRating)
		}
	}

	return r
}
