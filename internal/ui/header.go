package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Detail is one key/value line in a header or result box. Details are
// rendered in the order given.
type Detail struct {
	Key   string
	Value string
}

// Header represents a command header with title, command, and parameters.
type Header struct {
	Title   string   // e.g., "Provisioning Simulation"
	Command string   // e.g., "uplink simulate --scenario paid"
	Params  []Detail // e.g., {"Provider", "none"}
	Width   int      // Terminal width for responsive rendering
}

// NewHeader creates a new header with the given values
func NewHeader(title, command string, params []Detail) *Header {
	return &Header{
		Title:   title,
		Command: command,
		Params:  params,
		Width:   GetTerminalWidth(),
	}
}

// SetWidth sets the terminal width for responsive rendering
func (h *Header) SetWidth(width int) *Header {
	h.Width = width
	return h
}

// Render returns the styled header as a string
func (h *Header) Render() string {
	width := clampWidth(h.Width)

	titleLine := HeaderTitleStyle.Render(strings.ToUpper(h.Title))
	commandLine := HeaderCommandStyle.Render(h.Command)
	topSection := lipgloss.JoinVertical(lipgloss.Left, titleLine, commandLine)

	if len(h.Params) == 0 {
		return h.border(width).Render(topSection)
	}

	dividerWidth := width - 6 // Account for border and padding
	divider := lipgloss.NewStyle().
		Foreground(PrimaryColor).
		PaddingLeft(2).
		Render(strings.Repeat("─", dividerWidth-2))

	// Align values on the longest key
	keyWidth := 0
	for _, p := range h.Params {
		if w := lipgloss.Width(p.Key); w > keyWidth {
			keyWidth = w
		}
	}

	paramLines := make([]string, 0, len(h.Params))
	for _, p := range h.Params {
		key := HeaderParamKeyStyle.Render(p.Key + ":" + strings.Repeat(" ", keyWidth-lipgloss.Width(p.Key)))
		paramLines = append(paramLines, key+" "+HeaderParamValueStyle.Render(p.Value))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, topSection, divider, strings.Join(paramLines, "\n"))
	return h.border(width).Render(content)
}

func (h *Header) border(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(PrimaryColor).
		Width(width - 2) // Account for border characters
}

// String implements fmt.Stringer
func (h *Header) String() string {
	return h.Render()
}
