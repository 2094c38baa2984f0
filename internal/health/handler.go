package health

import (
	"github.com/gin-gonic/gin"

	"hrmaturity-backend/internal/shared/server/respond"
)

// Handler serves the health route.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches GET /health.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", func(c *gin.Context) {
		respond.OK(c, h.Svc.Status())
	})
}
