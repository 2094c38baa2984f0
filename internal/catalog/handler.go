package catalog

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hrmaturity-backend/internal/shared/server/middleware"
	"hrmaturity-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the catalog service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches catalog routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/questions", h.getCatalog)
	rg.GET("/questions/:categoryId", h.getCategory)
}

func (h *Handler) getCatalog(c *gin.Context) {
	cat, err := h.Svc.Catalog(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "catalog_unavailable", "Failed to fetch questions", err)
		return
	}
	respond.OK(c, cat)
}

func (h *Handler) getCategory(c *gin.Context) {
	id := c.Param("categoryId")
	c.Set(middleware.CategoryIDKey, id)

	cat, err := h.Svc.Category(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrCategoryNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "Category not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "catalog_unavailable", "Failed to fetch category questions", err)
		}
		return
	}
	respond.OK(c, cat)
}
