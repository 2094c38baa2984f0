package analysis

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"hrmaturity-backend/internal/catalog"
	"hrmaturity-backend/internal/completion"
)

// stubProvider returns a canned body or error and records requests.
type stubProvider struct {
	mu   sync.Mutex
	body string
	err  error
	reqs []completion.Request
}

func (s *stubProvider) Complete(_ context.Context, req completion.Request) (json.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reqs = append(s.reqs, req)
	if s.err != nil {
		return nil, s.err
	}
	return json.RawMessage(s.body), nil
}

func (s *stubProvider) lastRequest(t *testing.T) completion.Request {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	require.NotEmpty(t, s.reqs)
	return s.reqs[len(s.reqs)-1]
}

func seedCatalog(t *testing.T) catalog.Catalog {
	t.Helper()
	c, err := catalog.Seed(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return c
}

func chatBody(t *testing.T, content string) string {
	t.Helper()
	raw, err := json.Marshal(map[string]any{
		"choices": []any{map[string]any{"message": map[string]any{"role": "assistant", "content": content}}},
	})
	require.NoError(t, err)
	return string(raw)
}
