package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// DefaultOrigins covers local dev servers and "null" for pages opened from file://.
var DefaultOrigins = []string{
	"http://localhost",
	"http://localhost:8080",
	"http://127.0.0.1:8080",
	"http://localhost:3000",
	"null",
}

// CORS allows the given origins with credentials, every method and every request header.
// gin-contrib/cors only answers preflights with a fixed header list, so the headers a
// preflight asks for are echoed back before it runs.
func CORS(origins []string) gin.HandlerFunc {
	allowed := originMatcher(origins)
	inner := cors.New(cors.Config{
		AllowOriginFunc:  allowed,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "HEAD", "OPTIONS"},
		ExposeHeaders:    []string{headerRequestID, headerTraceID},
		AllowCredentials: true,
	})
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			requested := strings.TrimSpace(c.GetHeader("Access-Control-Request-Headers"))
			if requested != "" && allowed(c.GetHeader("Origin")) {
				h := c.Writer.Header()
				h.Set("Access-Control-Allow-Headers", requested)
				h.Add("Vary", "Access-Control-Request-Headers")
			}
		}
		inner(c)
	}
}

// originMatcher treats "*" as any origin. "null" is matched here because
// cors.Config.AllowOrigins only accepts http(s) origins.
func originMatcher(origins []string) func(string) bool {
	if len(origins) == 0 {
		origins = DefaultOrigins
	}
	set := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o == "*" {
			return func(string) bool { return true }
		}
		if o != "" {
			set[o] = struct{}{}
		}
	}
	return func(origin string) bool {
		_, ok := set[origin]
		return ok
	}
}
