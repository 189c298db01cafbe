package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// StepStatus represents the current state of a step
type StepStatus int

const (
	StepPending  StepStatus = iota // Not yet reached
	StepRunning                    // Currently in progress
	StepComplete                   // Reached
	StepFailed                     // Failed
	StepSkipped                    // Never reached (run ended first)
)

// Step is one checkpoint of a simulated run.
type Step struct {
	Number  int        // Step number (1-based)
	Name    string     // Telemetry line shown at this checkpoint
	Status  StepStatus // Current status
	Message string     // Optional note (e.g., "12%")
}

// Progress represents a progress display with bar and checkpoint list
type Progress struct {
	Label     string  // e.g., "Provisioning run 1 → payment_pending"
	Steps     []Step  // One per checkpoint
	Percent   float64 // Progress (0.0 - 1.0)
	Width     int     // Terminal width
	ShowBar   bool    // Whether to show progress bar
	ShowSteps bool    // Whether to show step list
	bar       progress.Model
}

// NewProgress creates a new progress display
func NewProgress(label string, totalSteps int) *Progress {
	steps := make([]Step, totalSteps)
	for i := range steps {
		steps[i] = Step{Number: i + 1, Status: StepPending}
	}

	p := &Progress{
		Label:     label,
		Steps:     steps,
		ShowBar:   true,
		ShowSteps: true,
	}
	p.SetWidth(GetTerminalWidth())
	return p
}

// SetWidth sets the terminal width for responsive rendering
func (p *Progress) SetWidth(width int) *Progress {
	p.Width = width
	barWidth := width - 20 // Leave room for percentage and step count
	if barWidth < 20 {
		barWidth = 20
	}
	if barWidth > 50 {
		barWidth = 50
	}
	p.bar = progress.New(
		progress.WithGradient("#C2410C", "#F97316"),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	return p
}

// SetStepNames sets the names for all steps
func (p *Progress) SetStepNames(names []string) *Progress {
	for i, name := range names {
		if i < len(p.Steps) {
			p.Steps[i].Name = name
		}
	}
	return p
}

// SetPercent sets the bar position, clamped to [0, 1].
func (p *Progress) SetPercent(percent float64) {
	switch {
	case percent < 0:
		percent = 0
	case percent > 1:
		percent = 1
	}
	p.Percent = percent
}

// UpdateStep updates a specific step's status and optional message
func (p *Progress) UpdateStep(stepNumber int, status StepStatus, message string) {
	if stepNumber < 1 || stepNumber > len(p.Steps) {
		return
	}
	idx := stepNumber - 1
	p.Steps[idx].Status = status
	p.Steps[idx].Message = message
}

// CompleteStep marks a step as reached
func (p *Progress) CompleteStep(stepNumber int, message string) {
	p.UpdateStep(stepNumber, StepComplete, message)
}

// FailStep marks a step as failed
func (p *Progress) FailStep(stepNumber int, message string) {
	p.UpdateStep(stepNumber, StepFailed, message)
}

// SkipPending marks every step that was never reached as skipped.
func (p *Progress) SkipPending() {
	for i := range p.Steps {
		if p.Steps[i].Status == StepPending {
			p.Steps[i].Status = StepSkipped
		}
	}
}

// Completed returns the number of reached steps.
func (p *Progress) Completed() int {
	n := 0
	for _, s := range p.Steps {
		if s.Status == StepComplete {
			n++
		}
	}
	return n
}

// Render returns the styled progress display as a string
func (p *Progress) Render() string {
	var b strings.Builder

	if p.Label != "" {
		b.WriteString(ProgressLabelStyle.Render(p.Label))
		b.WriteString("\n\n")
	}

	if p.ShowBar {
		b.WriteString(p.RenderBar())
		b.WriteString("\n\n")
	}

	if p.ShowSteps {
		lines := make([]string, 0, len(p.Steps))
		for _, step := range p.Steps {
			lines = append(lines, p.RenderStep(step))
		}
		b.WriteString(strings.Join(lines, "\n"))
	}

	return b.String()
}

// RenderBar renders the progress bar line: bar, percentage and the number of
// reached checkpoints.
func (p *Progress) RenderBar() string {
	barView := p.bar.ViewAs(p.Percent)
	percentStr := fmt.Sprintf("%3.0f%%", p.Percent*100)
	stepStr := fmt.Sprintf("[%d/%d]", p.Completed(), len(p.Steps))

	return lipgloss.NewStyle().
		PaddingLeft(2).
		Render(fmt.Sprintf("%s  %s  %s", barView, percentStr, stepStr))
}

// RenderStep renders a single checkpoint line
func (p *Progress) RenderStep(step Step) string {
	prefix := fmt.Sprintf("  [%d/%d]", step.Number, len(p.Steps))

	var marker string
	var style lipgloss.Style
	switch step.Status {
	case StepComplete:
		marker, style = StepMarkerComplete, StepCompleteStyle
	case StepRunning:
		marker, style = StepMarkerRunning, StepRunningStyle
	case StepFailed:
		marker, style = FailureMarker, ErrorTitleStyle
	case StepSkipped:
		marker, style = StepMarkerSkipped, StepPendingStyle
	default:
		marker, style = StepMarkerPending, StepPendingStyle
	}

	name := step.Name
	if name == "" {
		name = "(no telemetry)"
	}

	var b strings.Builder
	b.WriteString(prefix)
	b.WriteString(" ")
	b.WriteString(style.Render(name))

	// Keep markers in one column
	const maxNameLen = 45
	padding := maxNameLen - lipgloss.Width(name)
	if padding < 1 {
		padding = 1
	}
	b.WriteString(strings.Repeat(" ", padding))
	b.WriteString(style.Render(marker))

	if step.Message != "" {
		b.WriteString("  ")
		b.WriteString(StepNoteStyle.Render("(" + step.Message + ")"))
	}

	return b.String()
}

// String implements fmt.Stringer
func (p *Progress) String() string {
	return p.Render()
}

// StepCallback reports a checkpoint change.
type StepCallback func(stepNumber int, name string, status StepStatus, message string)

// PercentCallback reports the bar position (0.0 - 1.0).
type PercentCallback func(percent float64)
