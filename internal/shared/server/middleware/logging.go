package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"hrmaturity-backend/internal/shared/telemetry"
)

// Context keys handlers may set to enrich the request log line.
const (
	ResultIDKey       = "resultId"
	CategoryIDKey     = "categoryId"
	AnalysisSourceKey = "analysisSource"
)

// Logging emits a structured log per request.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		fields := map[string]any{
			"request_id":  RequestIDFromContext(c),
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"route":       c.FullPath(),
			"status":      c.Writer.Status(),
			"duration_ms": float64(latency.Microseconds()) / 1000.0,
			"client_ip":   c.ClientIP(),
			"user_agent":  c.Request.UserAgent(),
		}
		for _, key := range []string{ResultIDKey, CategoryIDKey, AnalysisSourceKey} {
			if v := c.GetString(key); v != "" {
				fields[key] = v
			}
		}
		telemetry.Info("request.complete", fields)
	}
}
