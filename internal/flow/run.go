package flow

import (
	"context"
	"time"
)

// Simulator timing. These are fixed; the animation is decorative and has no
// reason to vary between installs.
const (
	// TickInterval is the cadence of the progress timer.
	TickInterval = 40 * time.Millisecond

	// CheckpointStep is the progress increment at which a telemetry line is
	// appended to the log.
	CheckpointStep = 12

	// MaxProgress is the value at which a run is complete.
	MaxProgress = 100

	// SettleDelay is the pause between reaching MaxProgress and switching to
	// the run's target screen.
	SettleDelay = 800 * time.Millisecond
)

// RunID identifies one provisioning run. IDs increase monotonically within a
// Controller and are never reused.
type RunID uint64

// TickResult reports what a single Tick did.
type TickResult int

const (
	// TickIgnored means the run was cancelled, not yet begun, or already
	// complete; nothing changed.
	TickIgnored TickResult = iota
	// TickAdvanced means progress moved forward by one.
	TickAdvanced
	// TickComplete means progress had already reached MaxProgress; the timer
	// must stop and the settle delay begins.
	TickComplete
)

// Run is one execution of the progress/telemetry simulation.
//
// A Run starts at progress 0 with an empty log. It does not advance until
// Begin supplies the telemetry lines, so lines are always available before
// the first checkpoint is reached.
type Run struct {
	ID     RunID
	Target Screen

	Progress int
	Log      []string

	lines     []string
	next      int
	begun     bool
	complete  bool
	cancelled bool

	ctx    context.Context
	cancel context.CancelFunc
}

func newRun(parent context.Context, id RunID, target Screen) *Run {
	ctx, cancel := context.WithCancel(parent)
	return &Run{
		ID:     id,
		Target: target,
		Log:    []string{},
		ctx:    ctx,
		cancel: cancel,
	}
}

// Context is cancelled when the run is superseded or abandoned. The
// telemetry fetch for this run should use it.
func (r *Run) Context() context.Context {
	return r.ctx
}

// Begin attaches the telemetry lines and allows the run to tick. Calling
// Begin twice, or on a cancelled run, has no effect.
func (r *Run) Begin(lines []string) bool {
	if r.cancelled || r.begun {
		return false
	}
	r.lines = append([]string(nil), lines...)
	r.begun = true
	return true
}

// Begun reports whether telemetry lines have been attached.
func (r *Run) Begun() bool { return r.begun }

// Complete reports whether the run has stopped at MaxProgress.
func (r *Run) Complete() bool { return r.complete }

// Cancelled reports whether the run was superseded or abandoned.
func (r *Run) Cancelled() bool { return r.cancelled }

// Available returns the number of telemetry lines supplied to the run.
func (r *Run) Available() int { return len(r.lines) }

// Tick advances the simulation by one timer interval.
func (r *Run) Tick() TickResult {
	if r.cancelled || !r.begun || r.complete {
		return TickIgnored
	}
	if r.Progress >= MaxProgress {
		r.complete = true
		return TickComplete
	}

	r.Progress++
	if r.Progress%CheckpointStep == 0 && r.next < len(r.lines) {
		r.Log = append(r.Log, r.lines[r.next])
		r.next++
	}
	return TickAdvanced
}

// Cancel stops the run. Further ticks are ignored and the run's context is
// cancelled, aborting any in-flight fetch.
func (r *Run) Cancel() {
	if r.cancelled {
		return
	}
	r.cancelled = true
	r.cancel()
}
