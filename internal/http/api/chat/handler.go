package chat

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	assistantsvc "github.com/leadbotio/leadbot/internal/service/assistant"
)

// Register wires chat routes into the provided API router.
func Register(api huma.API, svc assistantsvc.Service) {
	huma.Register(api, huma.Operation{
		OperationID: "create-chat-completion",
		Method:      http.MethodPost,
		Path:        "/chat",
		Summary:     "Ask the assistant",
		Description: "Sends a message to the configured LLM provider and returns the assistant's reply.",
		Tags:        []string{"Chat"},
	}, func(ctx context.Context, input *ChatInput) (*ChatOutput, error) {
		system := ""
		if input.Body.System != nil {
			system = *input.Body.System
		}

		reply, err := svc.Reply(ctx, input.Body.Message, system)
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &ChatOutput{Body: ChatData{Reply: reply}}, nil
	})
}

func mapServiceError(err error) error {
	var upstreamErr *assistantsvc.UpstreamError
	if errors.As(err, &upstreamErr) {
		switch {
		case errors.Is(err, assistantsvc.ErrRateLimited):
			rateLimitErr := huma.Error429TooManyRequests("provider rate limit exceeded")
			if upstreamErr.RetryAfter != "" {
				headers := make(http.Header)
				headers.Set("Retry-After", upstreamErr.RetryAfter)
				return huma.ErrorWithHeaders(rateLimitErr, headers)
			}
			return rateLimitErr
		case errors.Is(err, assistantsvc.ErrUnauthorized):
			return huma.Error502BadGateway("provider rejected credentials")
		default:
			return huma.Error502BadGateway("provider error")
		}
	}

	switch {
	case errors.Is(err, assistantsvc.ErrUnconfigured):
		return huma.Error503ServiceUnavailable("assistant not configured")
	case errors.Is(err, assistantsvc.ErrRateLimited):
		return huma.Error429TooManyRequests("provider rate limit exceeded")
	default:
		return huma.Error502BadGateway("provider error")
	}
}
