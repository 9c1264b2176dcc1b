// Package routes wires every API feature into the shared router.
package routes

import (
	"github.com/danielgtaylor/huma/v2"

	"github.com/leadbotio/leadbot/internal/http/api/chat"
	"github.com/leadbotio/leadbot/internal/http/api/logs"
	"github.com/leadbotio/leadbot/internal/http/api/operators"
	"github.com/leadbotio/leadbot/internal/http/api/reviews"
	"github.com/leadbotio/leadbot/internal/http/api/runs"
	"github.com/leadbotio/leadbot/internal/loghub"
	"github.com/leadbotio/leadbot/internal/platform/auth"
	"github.com/leadbotio/leadbot/internal/runner"
	assistantsvc "github.com/leadbotio/leadbot/internal/service/assistant"
	historysvc "github.com/leadbotio/leadbot/internal/service/history"
	reviewsvc "github.com/leadbotio/leadbot/internal/service/review"
)

// BasePath is the URL prefix every API operation lives under. Register
// expects an API group created with this prefix so generated Link headers
// match the served paths.
const BasePath = "/api"

// Register wires all HTTP routes into the provided API router.
func Register(
	api huma.API,
	verifier auth.Verifier,
	ctl runner.Control,
	hub *loghub.Hub,
	historyService historysvc.Service,
	assistantService assistantsvc.Service,
	reviewService reviewsvc.Service,
) {
	// Apply auth middleware for protected endpoints
	api.UseMiddleware(auth.NewAuthMiddleware(api, verifier))

	chat.Register(api, assistantService)
	operators.Register(api, ctl)
	runs.Register(api, ctl, historyService, BasePath)
	logs.Register(api, hub)
	reviews.Register(api, reviewService, BasePath)
}
