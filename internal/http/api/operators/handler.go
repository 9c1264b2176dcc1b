package operators

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/leadbotio/leadbot/internal/platform/timeutil"
	"github.com/leadbotio/leadbot/internal/runner"
)

// Register wires operator routes into the provided API router.
func Register(api huma.API, ctl runner.Control) {
	huma.Register(api, huma.Operation{
		OperationID: "list-operators",
		Method:      http.MethodGet,
		Path:        "/operators",
		Summary:     "List operators",
		Description: "Returns every registered operator with its availability and last-run outcome.",
		Tags:        []string{"Operators"},
	}, func(_ context.Context, _ *OperatorsListInput) (*OperatorsListOutput, error) {
		statuses := ctl.Statuses()
		httpOps := make([]Operator, len(statuses))
		for i := range statuses {
			httpOps[i] = toHTTPOperator(&statuses[i])
		}
		return &OperatorsListOutput{Body: OperatorsListData{
			Operators: httpOps,
			Count:     len(httpOps),
			EnvReady:  ctl.EnvReady(),
		}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "run-operator",
		Method:        http.MethodPost,
		Path:          "/operators/{key}/run",
		Summary:       "Launch an operator",
		Description:   "Starts a bot run for the specified operator. Only one run may be active at a time.",
		Tags:          []string{"Operators"},
		DefaultStatus: http.StatusAccepted,
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *OperatorRunInput) (*OperatorRunOutput, error) {
		run, err := ctl.Start(ctx, input.Key)
		if err != nil {
			return nil, mapRunnerError(err)
		}
		return &OperatorRunOutput{Body: RunStartedData{
			RunID:     run.ID,
			Operator:  run.Operator,
			StartedAt: timeutil.Time{Time: run.StartedAt},
		}}, nil
	})
}

func mapRunnerError(err error) error {
	switch {
	case errors.Is(err, runner.ErrUnknownOperator):
		return huma.Error404NotFound("unknown operator")
	case errors.Is(err, runner.ErrRunInProgress):
		return huma.Error409Conflict("a run is already in progress")
	case errors.Is(err, runner.ErrOperatorUnavailable):
		return huma.Error422UnprocessableEntity("operator unavailable")
	case errors.Is(err, runner.ErrEnvNotReady):
		return huma.Error503ServiceUnavailable("bot environment not configured")
	default:
		return huma.Error500InternalServerError("internal error")
	}
}

func toHTTPOperator(s *runner.OperatorStatus) Operator {
	op := Operator{
		Key:         s.Key,
		DisplayName: s.DisplayName,
		Status:      string(s.Status),
		DisableRun:  s.DisableRun,
	}
	if !s.LastRunAt.IsZero() {
		op.LastDurationMS = s.LastDuration.Milliseconds()
		op.LastRunAt = &timeutil.Time{Time: s.LastRunAt}
	}
	return op
}
