package runner

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// MockControl implements Control in memory for unit tests.
type MockControl struct {
	// StartErr, when set, is returned by Start.
	StartErr error
	// Running, when non-nil, is returned by Current and makes Stop report true.
	Running *Run
	// Env reports the environment as configured.
	Env bool
	// Stopped records whether Stop was called.
	Stopped bool
}

// NewMockControl creates a mock with a configured environment and no
// active run.
func NewMockControl() *MockControl {
	return &MockControl{Env: true}
}

func (m *MockControl) Start(_ context.Context, key string) (*Run, error) {
	if m.StartErr != nil {
		return nil, m.StartErr
	}
	if _, ok := lookup(key); !ok {
		return nil, ErrUnknownOperator
	}
	if m.Running != nil {
		return nil, ErrRunInProgress
	}
	run := &Run{ID: uuid.NewString(), Operator: key, StartedAt: time.Now().UTC()}
	m.Running = run
	return run, nil
}

func (m *MockControl) Stop(_ context.Context) bool {
	m.Stopped = true
	if m.Running == nil {
		return false
	}
	m.Running = nil
	return true
}

func (m *MockControl) Current() *Run {
	if m.Running == nil {
		return nil
	}
	run := *m.Running
	return &run
}

func (m *MockControl) Statuses() []OperatorStatus {
	out := make([]OperatorStatus, 0, len(operators))
	for _, op := range operators {
		status := StatusNever
		if m.Running != nil && m.Running.Operator == op.Key {
			status = StatusRunning
		}
		out = append(out, OperatorStatus{
			Key:         op.Key,
			DisplayName: op.DisplayName,
			Status:      status,
			DisableRun:  m.Running != nil || !m.Env,
		})
	}
	return out
}

func (m *MockControl) EnvReady() bool {
	return m.Env
}

// Compile-time interface check
var _ Control = (*MockControl)(nil)
