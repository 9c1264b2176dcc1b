package runs

import (
	"context"
	"net/http"
	"net/url"

	"github.com/danielgtaylor/huma/v2"

	"github.com/leadbotio/leadbot/internal/platform/pagination"
	"github.com/leadbotio/leadbot/internal/platform/timeutil"
	"github.com/leadbotio/leadbot/internal/runner"
	historysvc "github.com/leadbotio/leadbot/internal/service/history"
)

const runCursorType = "run"

// Register wires run routes into the provided API router.
func Register(api huma.API, ctl runner.Control, store historysvc.Service, prefix string) {
	huma.Register(api, huma.Operation{
		OperationID: "list-runs",
		Method:      http.MethodGet,
		Path:        "/runs",
		Summary:     "List run history",
		Description: "Returns recorded bot runs, newest first, with cursor pagination.",
		Tags:        []string{"Runs"},
	}, func(ctx context.Context, input *RunsListInput) (*RunsListOutput, error) {
		cursor, err := pagination.DecodeCursor(input.Cursor)
		if err != nil {
			return nil, huma.Error400BadRequest("invalid cursor format")
		}
		if cursor.Type != "" && cursor.Type != runCursorType {
			return nil, huma.Error400BadRequest("cursor type mismatch")
		}

		entries, err := store.List(ctx)
		if err != nil {
			return nil, huma.Error500InternalServerError("internal error")
		}
		if input.Operator != "" {
			filtered := entries[:0]
			for _, e := range entries {
				if e.Operator == input.Operator {
					filtered = append(filtered, e)
				}
			}
			entries = filtered
		}

		query := url.Values{}
		if input.Operator != "" {
			query.Set("operator", input.Operator)
		}
		page := pagination.Paginate(
			entries,
			cursor,
			input.DefaultLimit(),
			runCursorType,
			func(e historysvc.Entry) string { return e.ID },
			prefix+"/runs",
			query,
		)

		httpRuns := make([]Run, len(page.Items))
		for i := range page.Items {
			httpRuns[i] = toHTTPRun(&page.Items[i])
		}
		return &RunsListOutput{
			Link: page.LinkHeader,
			Body: RunsListData{
				Runs:  httpRuns,
				Count: len(httpRuns),
				Total: page.Total,
			},
		}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-current-run",
		Method:      http.MethodGet,
		Path:        "/runs/current",
		Summary:     "Get the in-flight run",
		Description: "Returns the currently running bot run, or 404 when the launcher is idle.",
		Tags:        []string{"Runs"},
	}, func(_ context.Context, _ *RunCurrentInput) (*RunCurrentOutput, error) {
		run := ctl.Current()
		if run == nil {
			return nil, huma.Error404NotFound("no run in progress")
		}
		return &RunCurrentOutput{Body: CurrentRunData{
			RunID:     run.ID,
			Operator:  run.Operator,
			StartedAt: timeutil.Time{Time: run.StartedAt},
		}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "stop-run",
		Method:      http.MethodPost,
		Path:        "/runs/stop",
		Summary:     "Stop the in-flight run",
		Description: "Terminates the active bot run with escalating signals. Safe to call when idle.",
		Tags:        []string{"Runs"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, _ *RunStopInput) (*RunStopOutput, error) {
		stopped := ctl.Stop(ctx)
		return &RunStopOutput{Body: RunStopData{Stopped: stopped}}, nil
	})
}

func toHTTPRun(e *historysvc.Entry) Run {
	return Run{
		ID:         e.ID,
		Operator:   e.Operator,
		Status:     string(e.Status),
		ExitCode:   e.ExitCode,
		StartedAt:  timeutil.Time{Time: e.StartedAt},
		FinishedAt: timeutil.Time{Time: e.FinishedAt},
		DurationMS: e.Duration.Milliseconds(),
	}
}
