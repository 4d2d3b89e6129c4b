package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/bandit-backend/internal/platform/ctxutil"
)

func TestAttachTraceContextKeepsCallerRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AttachTraceContext())
	var seen string
	r.GET("/healthcheck", func(c *gin.Context) {
		seen = ctxutil.RequestID(c.Request.Context())
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/healthcheck", nil)
	req.Header.Set(headerRequestID, "req-123")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if seen != "req-123" {
		t.Fatalf("request id not propagated: %q", seen)
	}
	if got := rec.Header().Get(headerRequestID); got != "req-123" {
		t.Fatalf("request id not echoed: %q", got)
	}
	if rec.Header().Get(headerTraceID) == "" {
		t.Fatalf("trace id missing")
	}
}

func TestAttachTraceContextGeneratesIDs(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AttachTraceContext())
	r.GET("/healthcheck", func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))

	if rec.Header().Get(headerRequestID) == "" || rec.Header().Get(headerTraceID) == "" {
		t.Fatalf("expected generated ids, got headers %v", rec.Header())
	}
}

func TestAttachTraceContextCarriesRoutePlayerID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AttachTraceContext())
	var td *ctxutil.TraceData
	r.PUT("/api/session/end/:player_id", func(c *gin.Context) {
		td = ctxutil.GetTraceData(c.Request.Context())
		c.Status(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/session/end/p9", nil))

	if td == nil {
		t.Fatalf("trace data missing")
	}
	if td.PlayerID != "p9" {
		t.Fatalf("player id not captured from route: %q", td.PlayerID)
	}
	if td.RequestID != rec.Header().Get(headerRequestID) {
		t.Fatalf("request id mismatch: ctx=%q header=%q", td.RequestID, rec.Header().Get(headerRequestID))
	}
}
