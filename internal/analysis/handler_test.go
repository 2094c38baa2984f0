package analysis

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRecommendationsRouter(provider *stubProvider) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(NewRecommender(provider, "gpt-4", DefaultFallbacks()))
	h.Now = func() time.Time { return time.Date(2026, 5, 6, 7, 8, 9, 0, time.UTC) }
	r := gin.New()
	h.RegisterRoutes(r.Group("/api"))
	return r
}

func TestGenerateRecommendationsFallbackResponse(t *testing.T) {
	r := newRecommendationsRouter(&stubProvider{err: errors.New("unreachable")})

	body := `{"currentRecommendations":["Implement predictive analytics for talent retention"],"organizationContext":{"maturityLevel":"Developing"}}`
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/generate-recommendations", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, resp.Code)

	var payload struct {
		Success         bool             `json:"success"`
		Recommendations []Recommendation `json:"recommendations"`
		GeneratedAt     string           `json:"generatedAt"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &payload))
	assert.True(t, payload.Success)
	assert.Equal(t, "2026-05-06T07:08:09.000Z", payload.GeneratedAt)
	assert.LessOrEqual(t, len(payload.Recommendations), 3)
	assert.NotEmpty(t, payload.Recommendations)
	for _, rec := range payload.Recommendations {
		assert.NotEqual(t, "Implement predictive analytics for talent retention", rec.Title)
		assert.NotEmpty(t, rec.Steps)
	}
}

func TestGenerateRecommendationsEmptyBody(t *testing.T) {
	r := newRecommendationsRouter(&stubProvider{err: errors.New("unreachable")})
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/generate-recommendations", nil))
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestGenerateRecommendationsMalformedBody(t *testing.T) {
	r := newRecommendationsRouter(&stubProvider{})
	for _, body := range []string{`{"currentRecommendations":`, `{"currentRecommendations":"not-a-list"}`} {
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/generate-recommendations", strings.NewReader(body)))
		assert.Equal(t, http.StatusInternalServerError, resp.Code, body)
		assert.JSONEq(t, `{"error":"Failed to generate recommendations"}`, resp.Body.String())
	}
}
