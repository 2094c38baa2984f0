package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	goopenai "github.com/sashabaranov/go-openai"

	"hrmaturity-backend/internal/completion"
)

// Client implements completion.Provider using OpenAI chat completions.
type Client struct {
	api   *goopenai.Client
	model string
}

// NewClient constructs an OpenAI client. baseURL overrides the API root when set.
func NewClient(apiKey, model, baseURL string, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("COMPLETION_MODEL is required for OpenAI")
	}
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	cfg := goopenai.DefaultConfig(apiKey)
	if strings.TrimSpace(baseURL) != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	cfg.HTTPClient = &http.Client{Timeout: timeout}
	return &Client{api: goopenai.NewClientWithConfig(cfg), model: model}, nil
}

// Complete requests a JSON-object chat completion and returns the response re-encoded
// in the chat choices shape.
func (c *Client) Complete(ctx context.Context, req completion.Request) (json.RawMessage, error) {
	model := req.Model
	if model == "" {
		model = c.model
	}
	resp, err := c.api.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model: model,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleSystem, Content: req.System},
			{Role: goopenai.ChatMessageRoleUser, Content: req.User},
		},
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
		ResponseFormat: &goopenai.ChatCompletionResponseFormat{
			Type: goopenai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("openai chat completion: %w", err)
	}
	raw, err := json.Marshal(resp)
	if err != nil {
		return nil, fmt.Errorf("openai encode response: %w", err)
	}
	return raw, nil
}

var _ completion.Provider = (*Client)(nil)
