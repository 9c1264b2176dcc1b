package runs

import (
	"github.com/leadbotio/leadbot/internal/platform/timeutil"
)

// RunsListData is the response body for listing run history.
type RunsListData struct {
	Runs  []Run `json:"runs"  doc:"Recorded runs, newest first"`
	Count int   `json:"count" doc:"Number of runs returned" example:"1"`
	Total int   `json:"total" doc:"Total recorded runs matching the filter" example:"42"`
}

// RunsListOutput is the response wrapper for GET /runs.
type RunsListOutput struct {
	Link string `header:"Link" doc:"RFC 8288 pagination links"`
	Body RunsListData
}

// CurrentRunData is the response body for the in-flight run.
type CurrentRunData struct {
	RunID     string        `json:"runId"     doc:"Unique run identifier" example:"7f9c24e8-3b12-4b8f-a1d0-2f5e9c6b7a01"`
	Operator  string        `json:"operator"  doc:"Operator key"          example:"servicelink_auction"`
	StartedAt timeutil.Time `json:"startedAt" doc:"When the run started"`
}

// RunCurrentOutput is the response wrapper for GET /runs/current.
type RunCurrentOutput struct {
	Body CurrentRunData
}

// RunStopData is the response body after a stop request.
type RunStopData struct {
	Stopped bool `json:"stopped" doc:"Whether a run was active and has been stopped" example:"true"`
}

// RunStopOutput is the response wrapper for POST /runs/stop.
type RunStopOutput struct {
	Body RunStopData
}
