package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"hrmaturity-backend/internal/shared/server/respond"
)

// AdminToken guards admin-only routes with a static bearer token. An empty token disables
// the guard so local setups keep working without credentials.
func AdminToken(token string) gin.HandlerFunc {
	expected := []byte(strings.TrimSpace(token))
	return func(c *gin.Context) {
		if len(expected) == 0 {
			c.Next()
			return
		}

		header := strings.TrimSpace(c.GetHeader("Authorization"))
		provided, found := strings.CutPrefix(header, "Bearer ")
		if !found || subtle.ConstantTimeCompare([]byte(strings.TrimSpace(provided)), expected) != 1 {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "Unauthorized", nil)
			return
		}
		c.Next()
	}
}
