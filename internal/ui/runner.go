package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"
)

// RunnerConfig holds configuration for a simulated run
type RunnerConfig struct {
	Title           string    // Command title (e.g., "Provisioning Simulation")
	Command         string    // Full command (e.g., "uplink simulate --scenario paid")
	Params          []Detail  // Parameters to display in header
	TotalSteps      int       // Number of checkpoints
	StepNames       []string  // Optional initial names for each step
	Live            bool      // Redraw the progress bar in place
	Output          io.Writer // Output writer (default: os.Stdout)
	Troubleshooting []string  // Tips shown on failure
}

// Runner orchestrates the header → progress → result output of a command.
// Operations report progress through the callbacks passed to them.
type Runner struct {
	config    RunnerConfig
	header    *Header
	progress  *Progress
	output    io.Writer
	startTime time.Time
	width     int
	barShown  bool
}

// NewRunner creates a new runner
func NewRunner(config RunnerConfig) *Runner {
	if config.Output == nil {
		config.Output = os.Stdout
	}

	width := GetTerminalWidth()

	header := NewHeader(config.Title, config.Command, config.Params)
	header.SetWidth(width)

	var progress *Progress
	if config.TotalSteps > 0 {
		progress = NewProgress("", config.TotalSteps)
		progress.SetWidth(width)
		if len(config.StepNames) > 0 {
			progress.SetStepNames(config.StepNames)
		}
	}

	return &Runner{
		config:   config,
		header:   header,
		progress: progress,
		output:   config.Output,
		width:    width,
	}
}

// Operation is the work a Runner wraps. It returns the details shown in the
// success box.
type Operation func(onStep StepCallback, onPercent PercentCallback) ([]Detail, error)

// RunWithResult prints the header, executes operation, and prints the result.
// A canceled ctx is reported as a warning rather than a failure.
func (r *Runner) RunWithResult(ctx context.Context, operation Operation) ([]Detail, error) {
	r.startTime = time.Now()

	_, _ = fmt.Fprintln(r.output, r.header.Render())
	_, _ = fmt.Fprintln(r.output)

	details, err := operation(r.stepCallback(), r.percentCallback())
	duration := time.Since(r.startTime)

	if r.progress != nil {
		r.progress.SkipPending()
	}
	r.endBar()

	switch {
	case err != nil && ctx.Err() != nil:
		r.printWarning(details, err, duration)
	case err != nil:
		r.printFailure(err)
	default:
		r.printSuccess(details, duration)
	}

	return details, err
}

// Progress returns the runner's checkpoint tracker, or nil when the runner
// has no steps.
func (r *Runner) Progress() *Progress {
	return r.progress
}

func (r *Runner) stepCallback() StepCallback {
	return func(stepNumber int, name string, status StepStatus, message string) {
		if r.progress == nil || stepNumber < 1 || stepNumber > len(r.progress.Steps) {
			return
		}

		if name != "" {
			r.progress.Steps[stepNumber-1].Name = name
		}
		r.progress.UpdateStep(stepNumber, status, message)

		switch status {
		case StepComplete, StepFailed, StepSkipped:
			r.clearBar()
			_, _ = fmt.Fprintln(r.output, r.progress.RenderStep(r.progress.Steps[stepNumber-1]))
			r.drawBar()
		case StepRunning:
			r.clearBar()
			_, _ = fmt.Fprint(r.output, r.progress.RenderStep(r.progress.Steps[stepNumber-1])+"\r")
		}
	}
}

func (r *Runner) percentCallback() PercentCallback {
	return func(percent float64) {
		if r.progress == nil {
			return
		}
		r.progress.SetPercent(percent)
		r.drawBar()
	}
}

// drawBar redraws the bar in place. Only used on live terminals.
func (r *Runner) drawBar() {
	if !r.config.Live || r.progress == nil {
		return
	}
	_, _ = fmt.Fprint(r.output, "\r\033[K"+r.progress.RenderBar())
	r.barShown = true
}

func (r *Runner) clearBar() {
	if !r.barShown {
		return
	}
	_, _ = fmt.Fprint(r.output, "\r\033[K")
	r.barShown = false
}

// endBar leaves the final bar on its own line.
func (r *Runner) endBar() {
	if r.progress == nil {
		return
	}
	r.clearBar()
	_, _ = fmt.Fprintln(r.output)
	_, _ = fmt.Fprintln(r.output, r.progress.RenderBar())
}

func (r *Runner) withDuration(details []Detail, duration time.Duration) []Detail {
	out := make([]Detail, 0, len(details)+1)
	out = append(out, details...)
	return append(out, Detail{Key: "Duration", Value: duration.Round(time.Millisecond).String()})
}

func (r *Runner) printSuccess(details []Detail, duration time.Duration) {
	_, _ = fmt.Fprintln(r.output)
	result := NewSuccessResult(r.config.Title+" complete", r.withDuration(details, duration))
	result.SetWidth(r.width)
	_, _ = fmt.Fprintln(r.output, result.Render())
}

func (r *Runner) printWarning(details []Detail, err error, duration time.Duration) {
	_, _ = fmt.Fprintln(r.output)
	result := NewWarningResult(r.config.Title+" interrupted", r.withDuration(details, duration), err)
	result.SetWidth(r.width)
	_, _ = fmt.Fprintln(r.output, result.Render())
}

func (r *Runner) printFailure(err error) {
	_, _ = fmt.Fprintln(r.output)
	result := NewFailureResult(r.config.Title+" failed", err, r.config.Troubleshooting)
	result.SetWidth(r.width)
	_, _ = fmt.Fprintln(r.output, result.Render())
}
