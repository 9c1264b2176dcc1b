package history

import (
	"context"
	"errors"
	"time"
)

// Service errors
var (
	// ErrNoRuns indicates no recorded run matches the query.
	ErrNoRuns = errors.New("no runs recorded")
)

// Status is the recorded outcome of a run.
type Status string

const (
	// StatusComplete means the bot exited with code 0.
	StatusComplete Status = "Complete"
	// StatusPartial means the bot exited non-zero or was stopped.
	StatusPartial Status = "Partial"
)

// StatusForExitCode maps a subprocess exit code to a run status.
func StatusForExitCode(code int) Status {
	if code == 0 {
		return StatusComplete
	}
	return StatusPartial
}

// Entry is one completed run.
type Entry struct {
	ID         string
	Operator   string
	Status     Status
	ExitCode   int
	StartedAt  time.Time
	FinishedAt time.Time
	Duration   time.Duration
}

// Service records and queries run history.
type Service interface {
	// Record stores a completed run.
	Record(ctx context.Context, entry Entry) error
	// List returns all recorded runs, newest first.
	List(ctx context.Context) ([]Entry, error)
	// LastByOperator returns the most recent run for an operator key, or
	// ErrNoRuns.
	LastByOperator(ctx context.Context, operator string) (*Entry, error)
}
