package analysis

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"hrmaturity-backend/internal/shared/server/middleware"
	"hrmaturity-backend/internal/shared/server/respond"
	"hrmaturity-backend/internal/shared/util"
)

// Handler wires HTTP handlers to the recommender.
type Handler struct {
	Recommender *Recommender
	Now         func() time.Time
}

// NewHandler constructs a Handler.
func NewHandler(rec *Recommender) *Handler {
	return &Handler{Recommender: rec, Now: time.Now}
}

// RegisterRoutes attaches recommendation routes. Extra middleware (rate limiting) runs
// before the handler.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, mw ...gin.HandlerFunc) {
	handlers := append(append([]gin.HandlerFunc{}, mw...), h.generateRecommendations)
	rg.POST("/generate-recommendations", handlers...)
}

type generateRequest struct {
	CurrentRecommendations []string            `json:"currentRecommendations"`
	OrganizationContext    OrganizationContext `json:"organizationContext"`
}

type generateResponse struct {
	Success         bool              `json:"success"`
	Recommendations []json.RawMessage `json:"recommendations"`
	GeneratedAt     string            `json:"generatedAt"`
}

func (h *Handler) generateRecommendations(c *gin.Context) {
	var req generateRequest
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "bad_request_body", "Failed to generate recommendations", err)
		return
	}
	if strings.TrimSpace(string(body)) != "" {
		if err := json.Unmarshal(body, &req); err != nil {
			respond.Error(c, http.StatusInternalServerError, "bad_request_body", "Failed to generate recommendations", err)
			return
		}
	}

	out := h.Recommender.Generate(c.Request.Context(), req.CurrentRecommendations, req.OrganizationContext)
	c.Set(middleware.AnalysisSourceKey, string(out.Source))

	items := out.Items
	if items == nil {
		items = []json.RawMessage{}
	}
	respond.OK(c, generateResponse{
		Success:         true,
		Recommendations: items,
		GeneratedAt:     util.ISOTimestamp(h.now()),
	})
}

func (h *Handler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}
