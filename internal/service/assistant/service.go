// Package assistant proxies chat requests to an LLM provider.
package assistant

import (
	"context"
	"errors"
	"fmt"
)

// DefaultSystemPrompt is used when a request carries no system prompt.
const DefaultSystemPrompt = "You are a focused systems + automation assistant."

// Service errors
var (
	ErrUnconfigured = errors.New("assistant provider not configured")
	ErrUnauthorized = errors.New("assistant provider rejected credentials")
	ErrRateLimited  = errors.New("assistant provider rate limit exceeded")
	ErrUpstream     = errors.New("assistant upstream error")
)

// UpstreamError includes provider response metadata for error mapping.
type UpstreamError struct {
	Provider   string
	Status     int
	RetryAfter string
	cause      error
}

func (e *UpstreamError) Error() string {
	if e == nil {
		return "assistant upstream error"
	}
	if e.cause == nil {
		return fmt.Sprintf("assistant upstream error (provider=%s status=%d)", e.Provider, e.Status)
	}
	return fmt.Sprintf("assistant upstream error (provider=%s status=%d): %v", e.Provider, e.Status, e.cause)
}

// Unwrap enables errors.Is/As against sentinel service errors.
func (e *UpstreamError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// Service defines chat completion operations.
type Service interface {
	// Reply sends message to the provider and returns the assistant's reply.
	// An empty system falls back to DefaultSystemPrompt.
	Reply(ctx context.Context, message, system string) (string, error)
}

// WithSystemDefault wraps svc so requests without a system prompt use
// prompt instead of DefaultSystemPrompt. An empty prompt returns svc
// unchanged.
func WithSystemDefault(svc Service, prompt string) Service {
	if prompt == "" {
		return svc
	}
	return systemDefault{svc: svc, prompt: prompt}
}

type systemDefault struct {
	svc    Service
	prompt string
}

func (s systemDefault) Reply(ctx context.Context, message, system string) (string, error) {
	if system == "" {
		system = s.prompt
	}
	return s.svc.Reply(ctx, message, system)
}

// Unconfigured is a Service used when no provider credentials are present.
// Every request fails with ErrUnconfigured so the API can answer 503.
type Unconfigured struct{}

func (Unconfigured) Reply(context.Context, string, string) (string, error) {
	return "", ErrUnconfigured
}

// Compile-time interface check
var _ Service = Unconfigured{}
