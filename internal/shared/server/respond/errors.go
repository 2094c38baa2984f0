package respond

import (
	"github.com/gin-gonic/gin"

	"hrmaturity-backend/internal/shared/telemetry"
)

// ErrorResponse is the error body clients of the assessment API expect.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Error logs the failure under a machine-readable code and aborts with {"error": message}.
func Error(c *gin.Context, status int, code, message string, cause error) {
	fields := map[string]any{
		"status":     status,
		"code":       code,
		"message":    message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	}
	if cause != nil {
		fields["err"] = cause
	}
	telemetry.Error("http.error", fields)

	c.AbortWithStatusJSON(status, ErrorResponse{Error: message})
}
