package review

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Exporter forwards an approved lead downstream.
type Exporter interface {
	Export(ctx context.Context, item *Item) error
}

// WebhookExporter posts approved leads to an automation webhook
// (Zapier/Make/Pipedream style).
type WebhookExporter struct {
	httpClient *http.Client
	url        string
}

// NewWebhookExporter creates an exporter targeting url.
func NewWebhookExporter(httpClient *http.Client, url string) *WebhookExporter {
	return &WebhookExporter{httpClient: httpClient, url: url}
}

type webhookPayload struct {
	ID      string         `json:"id"`
	Source  string         `json:"source"`
	Payload map[string]any `json:"payload"`
	Commit  bool           `json:"commit"`
}

func (e *WebhookExporter) Export(ctx context.Context, item *Item) error {
	body, err := json.Marshal(webhookPayload{
		ID:      item.ID,
		Source:  item.Source,
		Payload: item.Payload,
		Commit:  true,
	})
	if err != nil {
		return fmt.Errorf("encoding export payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating export request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrExportFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: webhook returned status %d", ErrExportFailed, resp.StatusCode)
	}
	return nil
}

// Compile-time interface check
var _ Exporter = (*WebhookExporter)(nil)
