package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"hrmaturity-backend/internal/completion"
)

// Client implements completion.Provider using the Gemini API.
type Client struct {
	api   *genai.Client
	model string
}

// NewClient constructs a Gemini client. baseURL overrides the API root when set.
func NewClient(ctx context.Context, apiKey, model, baseURL string, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("COMPLETION_MODEL is required for Gemini")
	}
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	cfg := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: timeout},
	}
	if strings.TrimSpace(baseURL) != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}
	api, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return &Client{api: api, model: model}, nil
}

// Complete generates JSON content and returns the response in the candidates shape.
func (c *Client) Complete(ctx context.Context, req completion.Request) (json.RawMessage, error) {
	model := req.Model
	if model == "" {
		model = c.model
	}
	genCfg := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(req.Temperature),
		MaxOutputTokens:  int32(req.MaxTokens),
		ResponseMIMEType: "application/json",
	}
	if req.System != "" {
		genCfg.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}

	resp, err := c.api.Models.GenerateContent(ctx, model, genai.Text(req.User), genCfg)
	if err != nil {
		return nil, fmt.Errorf("gemini generate content: %w", err)
	}
	raw, err := json.Marshal(resp)
	if err != nil {
		return nil, fmt.Errorf("gemini encode response: %w", err)
	}
	return raw, nil
}

var _ completion.Provider = (*Client)(nil)
