package server

import (
	"time"

	"github.com/gin-gonic/gin"

	"hrmaturity-backend/internal/analysis"
	"hrmaturity-backend/internal/assessments"
	"hrmaturity-backend/internal/catalog"
	"hrmaturity-backend/internal/health"
	"hrmaturity-backend/internal/shared/config"
	"hrmaturity-backend/internal/shared/metrics"
	"hrmaturity-backend/internal/shared/server/middleware"
)

// RouterDeps carries the handlers mounted under /api.
type RouterDeps struct {
	Config                config.Config
	HealthHandler         *health.Handler
	CatalogHandler        *catalog.Handler
	AssessmentHandler     *assessments.Handler
	RecommendationHandler *analysis.Handler
	Limiter               *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	limiter := deps.Limiter
	if limiter == nil {
		limiter = middleware.NewRateLimiter(time.Now)
	}
	limit := func(group string) []gin.HandlerFunc {
		if deps.Config.SubmitRatePerMin <= 0 {
			return nil
		}
		rule := middleware.PerMinute(deps.Config.SubmitRatePerMin)
		return []gin.HandlerFunc{middleware.RateLimit(group, rule, limiter)}
	}

	api := r.Group("/api")
	api.GET("/metrics", metrics.Handler())
	if deps.HealthHandler != nil {
		deps.HealthHandler.RegisterRoutes(api)
	}
	if deps.CatalogHandler != nil {
		deps.CatalogHandler.RegisterRoutes(api)
	}
	if deps.AssessmentHandler != nil {
		deps.AssessmentHandler.RegisterRoutes(api, assessments.Guards{
			Submit: limit("submit"),
			List:   []gin.HandlerFunc{middleware.AdminToken(deps.Config.AdminToken)},
		})
	}
	if deps.RecommendationHandler != nil {
		deps.RecommendationHandler.RegisterRoutes(api, limit("recommendations")...)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":3001"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
