package runner

import "context"

// Control is the runner surface the HTTP layer consumes.
type Control interface {
	// Start launches the operator identified by key.
	Start(ctx context.Context, key string) (*Run, error)
	// Stop terminates the active run, reporting whether one was active.
	Stop(ctx context.Context) bool
	// Current returns the in-flight run, or nil when idle.
	Current() *Run
	// Statuses returns a snapshot of every operator in display order.
	Statuses() []OperatorStatus
	// EnvReady reports whether the bot environment is configured.
	EnvReady() bool
}

// Compile-time interface check
var _ Control = (*Runner)(nil)
