package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
)

// LogPanelHeight is the number of visible log rows.
const LogPanelHeight = 8

// LogPlaceholder is shown while a run has no log lines yet.
const LogPlaceholder = "Aguardando resposta do satélite..."

// logEntry is a telemetry line with the time it appeared.
type logEntry struct {
	At   time.Time
	Text string
}

// RenderLogPanel renders the telemetry log, scrolled to the newest entry.
// The last entry carries a block cursor.
func RenderLogPanel(entries []logEntry, width int) string {
	inner := width - 4
	if inner < 20 {
		inner = 20
	}

	var content string
	if len(entries) == 0 {
		content = LogPlaceholderStyle.Render(LogPlaceholder)
	} else {
		lines := make([]string, 0, len(entries))
		for i, e := range entries {
			line := LogTimeStyle.Render("["+e.At.Format("15:04:05")+"]") + " " + LogLineStyle.Render(e.Text)
			if i == len(entries)-1 {
				line += " " + CursorStyle.Render("▌")
			}
			lines = append(lines, line)
		}
		content = strings.Join(lines, "\n")
	}

	vp := viewport.New(inner, LogPanelHeight)
	vp.SetContent(lipgloss.NewStyle().Width(inner).Render(content))
	vp.GotoBottom()

	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(FaintColor).
		Padding(0, 1).
		Render(vp.View())
}
