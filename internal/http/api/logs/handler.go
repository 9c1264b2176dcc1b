package logs

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/sse"

	"github.com/leadbotio/leadbot/internal/loghub"
	"github.com/leadbotio/leadbot/internal/platform/timeutil"
)

// streamReplay is how many buffered lines a new stream subscriber receives
// before live lines.
const streamReplay = 120

// keepaliveInterval keeps idle SSE connections from being reaped by proxies.
const keepaliveInterval = 15 * time.Second

// Register wires log routes into the provided API router.
func Register(api huma.API, hub *loghub.Hub) {
	huma.Register(api, huma.Operation{
		OperationID: "tail-logs",
		Method:      http.MethodGet,
		Path:        "/logs",
		Summary:     "Tail bot output",
		Description: "Returns the most recent captured bot output lines, oldest first.",
		Tags:        []string{"Logs"},
	}, func(_ context.Context, input *LogsTailInput) (*LogsTailOutput, error) {
		lines := hub.Tail(input.Limit)
		httpLines := make([]LogLine, len(lines))
		for i := range lines {
			httpLines[i] = toHTTPLine(lines[i])
		}
		return &LogsTailOutput{Body: LogsTailData{
			Lines: httpLines,
			Count: len(httpLines),
			Total: hub.Len(),
		}}, nil
	})

	sse.Register(api, huma.Operation{
		OperationID: "stream-logs",
		Method:      http.MethodGet,
		Path:        "/logs/stream",
		Summary:     "Stream bot output",
		Description: "Streams bot output over Server-Sent Events. Recent lines are replayed on connect; keepalive events are sent while idle.",
		Tags:        []string{"Logs"},
	}, map[string]any{
		"log":       LogLine{},
		"keepalive": Keepalive{},
	}, func(ctx context.Context, _ *LogStreamInput, send sse.Sender) {
		sub := hub.Subscribe(ctx, streamReplay)
		keepalive := time.NewTicker(keepaliveInterval)
		defer keepalive.Stop()

		for {
			select {
			case line, ok := <-sub:
				if !ok {
					return
				}
				if err := send(sse.Message{ID: int(line.Seq), Data: toHTTPLine(line)}); err != nil {
					return
				}
			case <-keepalive.C:
				if err := send.Data(Keepalive{At: timeutil.Now()}); err != nil {
					return
				}
			case <-ctx.Done():
				return
			}
		}
	})
}

func toHTTPLine(l loghub.Line) LogLine {
	return LogLine{
		Seq:  l.Seq,
		Text: l.Text,
		At:   timeutil.Time{Time: l.At},
	}
}
