package assessments

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"hrmaturity-backend/internal/analysis"
	"hrmaturity-backend/internal/catalog"
	"hrmaturity-backend/internal/completion"
)

type stubProvider struct {
	mu    sync.Mutex
	body  string
	err   error
	calls int
}

func (s *stubProvider) Complete(_ context.Context, _ completion.Request) (json.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return json.RawMessage(s.body), nil
}

func seedCatalog(t *testing.T) catalog.Catalog {
	t.Helper()
	c, err := catalog.Seed(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return c
}

func newTestService(t *testing.T, repo Repo, provider completion.Provider) *Service {
	t.Helper()
	analyzer := analysis.NewAnalyzer(provider, "gpt-4", analysis.DefaultFallbacks())
	return NewService(repo, catalog.StaticRepo{Catalog: seedCatalog(t)}, analyzer)
}

func newTestRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(svc).RegisterRoutes(r.Group("/api"), Guards{})
	return r
}

// failingRepo fails every call with err.
type failingRepo struct {
	err error
}

func (f failingRepo) Append(context.Context, Result) error            { return f.err }
func (f failingRepo) GetByID(context.Context, string) (Result, error) { return Result{}, f.err }
func (f failingRepo) List(context.Context) ([]Result, error)          { return nil, f.err }
