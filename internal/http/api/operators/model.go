package operators

import (
	"github.com/leadbotio/leadbot/internal/platform/timeutil"
)

// Operator represents one launchable bot source and its current state.
type Operator struct {
	Key            string         `json:"key"                      doc:"Operator key"                     example:"servicelink_auction"`
	DisplayName    string         `json:"displayName"              doc:"Human-readable name"              example:"ServiceLink Auction"`
	Status         string         `json:"status"                   doc:"Current state"                    example:"ok" enum:"running,unavailable,ok,failed,never"`
	LastDurationMS int64          `json:"lastDurationMs,omitempty" doc:"Duration of the last run in milliseconds" example:"83214"`
	LastRunAt      *timeutil.Time `json:"lastRunAt,omitempty"      doc:"When the last run finished"`
	DisableRun     bool           `json:"disableRun"               doc:"Whether launching is currently blocked" example:"false"`
}
