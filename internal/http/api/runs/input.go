package runs

import "github.com/leadbotio/leadbot/internal/platform/pagination"

// RunsListInput defines query parameters for listing run history.
type RunsListInput struct {
	pagination.Params
	Operator string `query:"operator" doc:"Only return runs for this operator key" example:"servicelink_auction" pattern:"^[a-z0-9_]{1,64}$" required:"false"`
}

// RunCurrentInput for GET /runs/current (no parameters needed)
type RunCurrentInput struct{}

// RunStopInput for POST /runs/stop (no body needed)
type RunStopInput struct{}
