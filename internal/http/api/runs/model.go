package runs

import (
	"github.com/leadbotio/leadbot/internal/platform/timeutil"
)

// Run represents one recorded bot run.
type Run struct {
	ID         string        `json:"id"         doc:"Unique run identifier" example:"7f9c24e8-3b12-4b8f-a1d0-2f5e9c6b7a01"`
	Operator   string        `json:"operator"   doc:"Operator key"          example:"servicelink_auction"`
	Status     string        `json:"status"     doc:"Run outcome"           example:"Complete" enum:"Complete,Partial"`
	ExitCode   int           `json:"exitCode"   doc:"Subprocess exit code"  example:"0"`
	StartedAt  timeutil.Time `json:"startedAt"  doc:"When the run started"`
	FinishedAt timeutil.Time `json:"finishedAt" doc:"When the run finished"`
	DurationMS int64         `json:"durationMs" doc:"Run duration in milliseconds" example:"83214"`
}
