package tui

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/uplink/internal/flow"
)

// TelemetrySource supplies the lines for one run. *telemetry.Source
// implements it.
type TelemetrySource interface {
	Fetch(ctx context.Context) []string
}

// SystemClipboard writes to the OS clipboard.
type SystemClipboard struct{}

// WriteAll implements flow.Clipboard
func (SystemClipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return errClipboardUnsupported
	}
	return clipboard.WriteAll(text)
}

// Messages produced by effect commands. Each carries the id it was issued
// for so the controller can drop stale ones.
type telemetryMsg struct {
	run   flow.RunID
	lines []string
}

type tickMsg struct {
	run flow.RunID
}

type settleMsg struct {
	run flow.RunID
}

type copyResetMsg struct {
	seq uint64
}

// effectCmds turns controller effects into Bubble Tea commands.
func effectCmds(source TelemetrySource, effects []flow.Effect) tea.Cmd {
	if len(effects) == 0 {
		return nil
	}

	cmds := make([]tea.Cmd, 0, len(effects))
	for _, e := range effects {
		switch e := e.(type) {
		case flow.FetchTelemetry:
			cmds = append(cmds, fetchCmd(source, e.Run, e.Ctx))
		case flow.ScheduleTick:
			run := e.Run
			cmds = append(cmds, tea.Tick(e.After, func(time.Time) tea.Msg {
				return tickMsg{run: run}
			}))
		case flow.ScheduleSettle:
			run := e.Run
			cmds = append(cmds, tea.Tick(e.After, func(time.Time) tea.Msg {
				return settleMsg{run: run}
			}))
		case flow.ScheduleCopyReset:
			seq := e.Seq
			cmds = append(cmds, tea.Tick(e.After, func(time.Time) tea.Msg {
				return copyResetMsg{seq: seq}
			}))
		}
	}
	return tea.Batch(cmds...)
}

func fetchCmd(source TelemetrySource, run flow.RunID, ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		var lines []string
		if source != nil {
			lines = source.Fetch(ctx)
		}
		return telemetryMsg{run: run, lines: lines}
	}
}
