package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// LogBox displays telemetry lines in a numbered box.
type LogBox struct {
	Title    string   // e.g., "Telemetry (gemini)"
	Lines    []string // Lines in display order
	Width    int      // Terminal width
	MaxLines int      // Maximum lines to display (0 = unlimited)
}

// NewLogBox creates a log box for lines
func NewLogBox(lines []string) *LogBox {
	return &LogBox{
		Title: "Telemetry",
		Lines: lines,
		Width: GetTerminalWidth(),
	}
}

// SetWidth sets the terminal width for responsive rendering
func (l *LogBox) SetWidth(width int) *LogBox {
	l.Width = width
	return l
}

// SetTitle sets a custom title for the box
func (l *LogBox) SetTitle(title string) *LogBox {
	l.Title = title
	return l
}

// SetMaxLines limits the number of lines displayed
func (l *LogBox) SetMaxLines(max int) *LogBox {
	l.MaxLines = max
	return l
}

// Render returns the styled log box as a string
func (l *LogBox) Render() string {
	width := clampWidth(l.Width)

	lines := l.Lines
	truncated := 0
	if l.MaxLines > 0 && len(lines) > l.MaxLines {
		truncated = len(lines) - l.MaxLines
		lines = lines[:l.MaxLines]
	}

	body := make([]string, 0, len(lines)+1)
	for i, line := range lines {
		body = append(body, LogIndexStyle.Render(fmt.Sprintf("%2d", i+1))+"  "+LogLineStyle.Render(line))
	}
	if truncated > 0 {
		body = append(body, StepNoteStyle.Render(fmt.Sprintf("... (%d more)", truncated)))
	}
	if len(body) == 0 {
		body = append(body, StepNoteStyle.Render("(empty)"))
	}

	inner := lipgloss.JoinVertical(lipgloss.Left, LogTitleStyle.Render(l.Title), "", strings.Join(body, "\n"))

	boxWidth := width - 4
	if boxWidth < 40 {
		boxWidth = 40
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(MutedColor).
		Width(boxWidth).
		Padding(0, 1).
		MarginLeft(2).
		Render(inner)
}

// String implements fmt.Stringer
func (l *LogBox) String() string {
	return l.Render()
}
