package lab45

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"hrmaturity-backend/internal/completion"
)

// DefaultEndpoint is the Lab45 skills completion query endpoint.
const DefaultEndpoint = "https://api.lab45.ai/v1.1/skills/completion/query"

const maxErrorBody = 2048

// Client implements completion.Provider against the Lab45 skills API.
type Client struct {
	endpoint   string
	model      string
	httpClient *http.Client
}

// NewClient constructs a Lab45 client. The API key is sent as a bearer token.
func NewClient(apiKey, model, endpoint string, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("LAB45_API_KEY is required")
	}
	if strings.TrimSpace(endpoint) == "" {
		endpoint = DefaultEndpoint
	}
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: apiKey, TokenType: "Bearer"})
	return &Client{
		endpoint: endpoint,
		model:    model,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: &oauth2.Transport{Source: src, Base: http.DefaultTransport},
		},
	}, nil
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type skillParameters struct {
	ModelName       string  `json:"model_name"`
	EmbType         string  `json:"emb_type"`
	MaxOutputTokens int     `json:"max_output_tokens"`
	Temperature     float32 `json:"temperature"`
}

type queryRequest struct {
	Messages        []message       `json:"messages"`
	SkillParameters skillParameters `json:"skill_parameters"`
	StreamResponse  bool            `json:"stream_response"`
}

// Complete posts a non-streaming query and returns the response body.
func (c *Client) Complete(ctx context.Context, req completion.Request) (json.RawMessage, error) {
	model := req.Model
	if model == "" {
		model = c.model
	}
	payload, err := json.Marshal(queryRequest{
		Messages: []message{
			{Role: "system", Content: req.System},
			{Role: "user", Content: req.User},
		},
		SkillParameters: skillParameters{
			ModelName:       model,
			EmbType:         "openai",
			MaxOutputTokens: req.MaxTokens,
			Temperature:     req.Temperature,
		},
		StreamResponse: false,
	})
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return nil, fmt.Errorf("lab45 request timeout: %w", err)
		}
		return nil, fmt.Errorf("lab45 request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("lab45 read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet := body
		if len(snippet) > maxErrorBody {
			snippet = snippet[:maxErrorBody]
		}
		return nil, fmt.Errorf("lab45 API error: %d - %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("lab45 response is not JSON")
	}
	return json.RawMessage(body), nil
}

var _ completion.Provider = (*Client)(nil)
