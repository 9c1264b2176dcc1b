package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	applog "github.com/leadbotio/leadbot/internal/platform/logging"
)

const (
	defaultOpenAIBaseURL = "https://api.openai.com"
	defaultOpenAIModel   = "gpt-4.1-mini"
	openAIUserAgent      = "leadbot"
)

// OpenAIClient implements Service using the OpenAI chat completions API.
type OpenAIClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
}

// OpenAIOption configures an OpenAIClient.
type OpenAIOption func(*OpenAIClient)

// WithOpenAIBaseURL sets a custom base URL (useful for testing and
// OpenAI-compatible gateways).
func WithOpenAIBaseURL(url string) OpenAIOption {
	return func(c *OpenAIClient) {
		c.baseURL = strings.TrimRight(url, "/")
	}
}

// WithOpenAIModel overrides the default chat model.
func WithOpenAIModel(model string) OpenAIOption {
	return func(c *OpenAIClient) {
		c.model = model
	}
}

// NewOpenAIClient creates a new OpenAI chat client.
func NewOpenAIClient(httpClient *http.Client, apiKey string, opts ...OpenAIOption) *OpenAIClient {
	c := &OpenAIClient{
		httpClient: httpClient,
		baseURL:    defaultOpenAIBaseURL,
		apiKey:     apiKey,
		model:      defaultOpenAIModel,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OpenAI API types (snake_case JSON tags matching OpenAI's API).

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIChatRequest struct {
	Model    string          `json:"model"`
	Messages []openAIMessage `json:"messages"`
}

type openAIChatResponse struct {
	Choices []struct {
		Message openAIMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

func (c *OpenAIClient) Reply(ctx context.Context, message, system string) (string, error) {
	if c.apiKey == "" {
		return "", ErrUnconfigured
	}
	if system == "" {
		system = DefaultSystemPrompt
	}

	body, err := json.Marshal(openAIChatRequest{
		Model: c.model,
		Messages: []openAIMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: message},
		},
	})
	if err != nil {
		return "", fmt.Errorf("encoding chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", openAIUserAgent)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling openai: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", c.upstreamError(ctx, resp)
	}

	var out openAIChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decoding openai response: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", &UpstreamError{Provider: "openai", Status: resp.StatusCode, cause: errors.New("response contained no choices")}
	}
	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}

func (c *OpenAIClient) upstreamError(ctx context.Context, resp *http.Response) error {
	var out openAIChatResponse
	detail := ""
	if err := json.NewDecoder(resp.Body).Decode(&out); err == nil && out.Error != nil {
		detail = out.Error.Message
	}

	cause := ErrUpstream
	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		cause = ErrUnauthorized
	case http.StatusTooManyRequests:
		cause = ErrRateLimited
		applog.LogWarn(ctx, "openai rate limit exceeded",
			zap.Int("status", resp.StatusCode),
			zap.String("Retry-After", resp.Header.Get("Retry-After")),
		)
	}
	if detail != "" {
		cause = fmt.Errorf("%w: %s", cause, detail)
	}

	return &UpstreamError{
		Provider:   "openai",
		Status:     resp.StatusCode,
		RetryAfter: strings.TrimSpace(resp.Header.Get("Retry-After")),
		cause:      cause,
	}
}

// Compile-time interface check
var _ Service = (*OpenAIClient)(nil)
