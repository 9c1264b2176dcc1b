// Package runner supervises bot subprocess runs: one operator at a time,
// output streamed to the log hub, outcomes recorded in run history.
package runner

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/leadbotio/leadbot/internal/loghub"
	applog "github.com/leadbotio/leadbot/internal/platform/logging"
	"github.com/leadbotio/leadbot/internal/service/history"
)

// Runner errors
var (
	// ErrUnknownOperator indicates the key is not in the registry.
	ErrUnknownOperator = errors.New("unknown operator")
	// ErrOperatorUnavailable indicates the operator module is missing from
	// the bot codebase.
	ErrOperatorUnavailable = errors.New("operator unavailable")
	// ErrRunInProgress indicates another run is already active.
	ErrRunInProgress = errors.New("a run is already in progress")
	// ErrEnvNotReady indicates the bot entrypoint could not be found.
	ErrEnvNotReady = errors.New("bot environment not configured")
)

// Stop escalation timeouts: SIGINT grace, then SIGTERM grace, then SIGKILL.
const (
	intGrace  = 8 * time.Second
	termGrace = 3 * time.Second
)

// Status is the presentation state of an operator.
type Status string

const (
	StatusRunning     Status = "running"
	StatusUnavailable Status = "unavailable"
	StatusOK          Status = "ok"
	StatusFailed      Status = "failed"
	StatusNever       Status = "never"
)

// Run identifies one launched subprocess.
type Run struct {
	ID        string
	Operator  string
	StartedAt time.Time
}

// OperatorStatus is a point-in-time view of one operator.
type OperatorStatus struct {
	Key          string
	DisplayName  string
	Status       Status
	LastDuration time.Duration // zero when never run
	LastRunAt    time.Time     // zero when never run
	DisableRun   bool
}

// Config holds runner configuration.
type Config struct {
	// BotDir is the root of the bot codebase.
	BotDir string
	// Entry is the bot entrypoint, relative to BotDir.
	Entry string
}

type opState struct {
	running      bool
	lastOK       *bool
	lastDuration time.Duration
	lastRunAt    time.Time
}

type activeRun struct {
	run  Run
	cmd  *exec.Cmd
	done chan struct{} // closed once state is finalized
}

// Runner launches and supervises bot runs.
type Runner struct {
	botDir string
	entry  string
	hub    *loghub.Hub
	store  history.Service

	mu     sync.Mutex
	states map[string]*opState
	cur    *activeRun
}

// New creates a Runner. Call RestoreState to seed per-operator state from
// recorded history.
func New(cfg Config, hub *loghub.Hub, store history.Service) *Runner {
	states := make(map[string]*opState, len(operators))
	for _, op := range operators {
		states[op.Key] = &opState{}
	}
	return &Runner{
		botDir: cfg.BotDir,
		entry:  cfg.Entry,
		hub:    hub,
		store:  store,
		states: states,
	}
}

// RestoreState seeds last-run info from the history store so a restarted
// service still shows previous outcomes.
func (r *Runner) RestoreState(ctx context.Context) {
	for _, op := range operators {
		entry, err := r.store.LastByOperator(ctx, op.Key)
		if err != nil {
			if !errors.Is(err, history.ErrNoRuns) {
				applog.LogWarn(ctx, "could not restore operator state",
					zap.String("operator", op.Key), zap.Error(err))
			}
			continue
		}
		ok := entry.Status == history.StatusComplete
		r.mu.Lock()
		st := r.states[op.Key]
		st.lastOK = &ok
		st.lastDuration = entry.Duration
		st.lastRunAt = entry.FinishedAt
		r.mu.Unlock()
	}
}

// EnvReady reports whether the bot entrypoint exists.
func (r *Runner) EnvReady() bool {
	info, err := os.Stat(filepath.Join(r.botDir, r.entry))
	return err == nil && !info.IsDir()
}

// available reports whether the operator module exists in the bot codebase.
func (r *Runner) available(op Operator) bool {
	info, err := os.Stat(filepath.Join(r.botDir, "operators", op.FileBase+"_ops.py"))
	return err == nil && !info.IsDir()
}

// pythonExe prefers the bot's virtualenv interpreter; in a container the bot
// runs on the system python.
func (r *Runner) pythonExe() string {
	venv := filepath.Join(r.botDir, ".venv", "bin", "python")
	if _, err := os.Stat(venv); err == nil {
		return venv
	}
	return "python3"
}

// Start launches the operator identified by key. It returns the run handle
// or one of ErrUnknownOperator, ErrEnvNotReady, ErrOperatorUnavailable,
// ErrRunInProgress.
func (r *Runner) Start(ctx context.Context, key string) (*Run, error) {
	op, ok := lookup(key)
	if !ok {
		return nil, ErrUnknownOperator
	}
	if !r.EnvReady() {
		return nil, ErrEnvNotReady
	}
	if !r.available(op) {
		return nil, ErrOperatorUnavailable
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cur != nil {
		return nil, ErrRunInProgress
	}

	// Single pipe carries interleaved stdout+stderr, like the terminal would.
	pr, pw, err := os.Pipe()
	if err != nil {
		return nil, fmt.Errorf("creating output pipe: %w", err)
	}

	cmd := exec.Command(r.pythonExe(), "-u", r.entry, op.Key)
	cmd.Dir = r.botDir
	cmd.Stdout = pw
	cmd.Stderr = pw
	// Own process group so Stop can signal the bot and all its children.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	if err := cmd.Start(); err != nil {
		_ = pr.Close()
		_ = pw.Close()
		return nil, fmt.Errorf("launching bot: %w", err)
	}
	// The child holds its own copy of the write end.
	_ = pw.Close()

	run := Run{
		ID:        uuid.NewString(),
		Operator:  op.Key,
		StartedAt: time.Now().UTC(),
	}
	ar := &activeRun{run: run, cmd: cmd, done: make(chan struct{})}
	r.states[op.Key].running = true
	r.cur = ar

	r.hub.Publish(fmt.Sprintf("--- START %s ---", op.DisplayName))
	r.hub.Publish("$ " + strings.Join(cmd.Args, " "))
	applog.LogInfo(ctx, "bot run started",
		zap.String("runId", run.ID),
		zap.String("operator", op.Key),
		zap.Int("pid", cmd.Process.Pid),
	)

	go r.watch(op, ar, pr)
	return &run, nil
}

// watch owns the run's state transitions: it drains output, waits for exit,
// updates operator state, and records history.
func (r *Runner) watch(op Operator, ar *activeRun, out *os.File) {
	scanner := bufio.NewScanner(out)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		r.hub.Publish(scanner.Text())
	}
	_ = out.Close()

	_ = ar.cmd.Wait()
	rc := ar.cmd.ProcessState.ExitCode()
	finished := time.Now().UTC()
	dur := finished.Sub(ar.run.StartedAt)

	outcome := "OK"
	if rc != 0 {
		outcome = "FAILED"
	}
	r.hub.Publish(fmt.Sprintf("--- %s %s (rc=%d) in %.1fs ---", op.DisplayName, outcome, rc, dur.Seconds()))

	r.mu.Lock()
	st := r.states[op.Key]
	st.running = false
	okRun := rc == 0
	st.lastOK = &okRun
	st.lastDuration = dur
	st.lastRunAt = finished
	r.cur = nil
	r.mu.Unlock()
	close(ar.done)

	entry := history.Entry{
		ID:         ar.run.ID,
		Operator:   op.Key,
		Status:     history.StatusForExitCode(rc),
		ExitCode:   rc,
		StartedAt:  ar.run.StartedAt,
		FinishedAt: finished,
		Duration:   dur,
	}
	if err := r.store.Record(context.Background(), entry); err != nil {
		applog.LogError(context.Background(), "failed to record run history", err,
			zap.String("runId", ar.run.ID),
			zap.String("operator", op.Key),
		)
	}
}

// Stop terminates the active run with escalating signals and waits for the
// run state to settle. It reports whether a run was active.
func (r *Runner) Stop(ctx context.Context) bool {
	r.mu.Lock()
	ar := r.cur
	r.mu.Unlock()
	if ar == nil {
		return false
	}

	r.hub.Publish("... stopping (SIGINT -> SIGTERM -> SIGKILL if needed)")

	pid := ar.cmd.Process.Pid
	pgid, pgErr := syscall.Getpgid(pid)
	signalRun := func(sig syscall.Signal) {
		if pgErr == nil {
			_ = syscall.Kill(-pgid, sig)
			return
		}
		_ = ar.cmd.Process.Signal(sig)
	}

	signalRun(syscall.SIGINT)
	if waitDone(ctx, ar.done, intGrace) {
		return true
	}
	signalRun(syscall.SIGTERM)
	if waitDone(ctx, ar.done, termGrace) {
		return true
	}
	signalRun(syscall.SIGKILL)
	<-ar.done
	return true
}

// Current returns the in-flight run, or nil when idle.
func (r *Runner) Current() *Run {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cur == nil {
		return nil
	}
	run := r.cur.run
	return &run
}

// Statuses returns a snapshot of every operator in display order.
// Availability is re-checked on each call so newly deployed operator modules
// show up without a restart.
func (r *Runner) Statuses() []OperatorStatus {
	envReady := r.EnvReady()

	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]OperatorStatus, 0, len(operators))
	for _, op := range operators {
		st := r.states[op.Key]
		available := r.available(op)
		out = append(out, OperatorStatus{
			Key:          op.Key,
			DisplayName:  op.DisplayName,
			Status:       presentStatus(st, available),
			LastDuration: st.lastDuration,
			LastRunAt:    st.lastRunAt,
			DisableRun:   st.running || !available || !envReady,
		})
	}
	return out
}

func presentStatus(st *opState, available bool) Status {
	switch {
	case st.running:
		return StatusRunning
	case !available:
		return StatusUnavailable
	case st.lastOK == nil:
		return StatusNever
	case *st.lastOK:
		return StatusOK
	default:
		return StatusFailed
	}
}

func waitDone(ctx context.Context, done <-chan struct{}, grace time.Duration) bool {
	timer := time.NewTimer(grace)
	defer timer.Stop()
	select {
	case <-done:
		return true
	case <-timer.C:
		return false
	case <-ctx.Done():
		return false
	}
}
