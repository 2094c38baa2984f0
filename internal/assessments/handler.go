package assessments

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hrmaturity-backend/internal/report"
	"hrmaturity-backend/internal/shared/server/middleware"
	"hrmaturity-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the assessment service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// Guards holds optional per-route middleware.
type Guards struct {
	Submit []gin.HandlerFunc
	List   []gin.HandlerFunc
}

// RegisterRoutes attaches submission and result routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, guards Guards) {
	rg.POST("/submit-assessment", chain(guards.Submit, h.submit)...)
	rg.GET("/results", chain(guards.List, h.list)...)
	rg.GET("/results/:id", h.get)
	rg.GET("/results/:id/report", h.report)
}

func chain(mw []gin.HandlerFunc, final gin.HandlerFunc) []gin.HandlerFunc {
	return append(append([]gin.HandlerFunc{}, mw...), final)
}

type submitResponse struct {
	Success bool   `json:"success"`
	Result  Result `json:"result"`
}

func (h *Handler) submit(c *gin.Context) {
	var req Submission
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "Missing required fields", err)
		return
	}

	res, source, err := h.Svc.Submit(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrMissingFields) {
			respond.Error(c, http.StatusBadRequest, "invalid_request", "Missing required fields", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "submit_failed", "Failed to submit assessment", err)
		return
	}
	c.Set(middleware.ResultIDKey, res.ID)
	c.Set(middleware.AnalysisSourceKey, string(source))
	respond.OK(c, submitResponse{Success: true, Result: res})
}

func (h *Handler) list(c *gin.Context) {
	summaries, err := h.Svc.Summaries(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "results_unavailable", "Failed to fetch results", err)
		return
	}
	respond.OK(c, summaries)
}

func (h *Handler) get(c *gin.Context) {
	res, ok := h.load(c)
	if !ok {
		return
	}
	respond.OK(c, res)
}

func (h *Handler) report(c *gin.Context) {
	res, ok := h.load(c)
	if !ok {
		return
	}
	page, err := report.HTML(h.Svc.ReportInput(c.Request.Context(), res))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "report_failed", "Failed to render report", err)
		return
	}
	respond.HTML(c, http.StatusOK, page)
}

func (h *Handler) load(c *gin.Context) (Result, bool) {
	id := c.Param("id")
	c.Set(middleware.ResultIDKey, id)
	res, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "Result not found", nil)
			return Result{}, false
		}
		respond.Error(c, http.StatusInternalServerError, "results_unavailable", "Failed to fetch result", err)
		return Result{}, false
	}
	return res, true
}
