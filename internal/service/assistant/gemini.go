package assistant

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.0-flash"

// GeminiClient implements Service using the Google Gemini API.
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient creates a new Gemini chat client.
func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, ErrUnconfigured
	}
	if model == "" {
		model = defaultGeminiModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	return &GeminiClient{client: client, model: model}, nil
}

func (c *GeminiClient) Reply(ctx context.Context, message, system string) (string, error) {
	if system == "" {
		system = DefaultSystemPrompt
	}

	contents := []*genai.Content{
		genai.NewContentFromText(message, genai.RoleUser),
	}
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model, contents, cfg)
	if err != nil {
		return "", &UpstreamError{Provider: "gemini", cause: fmt.Errorf("%w: %v", ErrUpstream, err)}
	}

	reply := strings.TrimSpace(result.Text())
	if reply == "" {
		return "", &UpstreamError{Provider: "gemini", cause: fmt.Errorf("%w: response contained no text", ErrUpstream)}
	}
	return reply, nil
}

// Compile-time interface check
var _ Service = (*GeminiClient)(nil)
