package completion

import (
	"context"
	"encoding/json"
	"errors"
)

// Request is a single chat-style completion call.
type Request struct {
	System      string
	User        string
	Model       string
	MaxTokens   int
	Temperature float32
}

// Provider sends a completion request and returns the provider's raw JSON response body.
// Any transport failure or non-2xx status is an error.
type Provider interface {
	Complete(ctx context.Context, req Request) (json.RawMessage, error)
}

// ErrNotConfigured is returned by Placeholder when no provider credentials are set.
var ErrNotConfigured = errors.New("completion provider not configured")

// Placeholder stands in for an unconfigured provider so callers take their fallback path.
type Placeholder struct{}

// Complete returns ErrNotConfigured.
func (Placeholder) Complete(context.Context, Request) (json.RawMessage, error) {
	return nil, ErrNotConfigured
}
