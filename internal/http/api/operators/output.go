package operators

import (
	"github.com/leadbotio/leadbot/internal/platform/timeutil"
)

// OperatorsListData is the response body for listing operators.
type OperatorsListData struct {
	Operators []Operator `json:"operators" doc:"Operators in display order"`
	Count     int        `json:"count"     doc:"Number of operators returned" example:"8"`
	EnvReady  bool       `json:"envReady"  doc:"Whether the bot environment is configured" example:"true"`
}

// OperatorsListOutput is the response wrapper for GET /operators.
type OperatorsListOutput struct {
	Body OperatorsListData
}

// RunStartedData is the response body after launching an operator.
type RunStartedData struct {
	RunID     string        `json:"runId"     doc:"Unique run identifier" example:"7f9c24e8-3b12-4b8f-a1d0-2f5e9c6b7a01"`
	Operator  string        `json:"operator"  doc:"Operator key"          example:"servicelink_auction"`
	StartedAt timeutil.Time `json:"startedAt" doc:"When the run started"`
}

// OperatorRunOutput is the response wrapper for POST /operators/{key}/run (202 Accepted).
type OperatorRunOutput struct {
	Body RunStartedData
}
