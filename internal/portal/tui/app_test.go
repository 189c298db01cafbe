package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/uplink/internal/flow"
	"github.com/muurk/uplink/internal/telemetry"
)

type fakeSource struct {
	lines []string
	calls int
}

func (f *fakeSource) Fetch(ctx context.Context) []string {
	f.calls++
	return append([]string(nil), f.lines...)
}

type fakeClipboard struct {
	text string
	err  error
}

func (f *fakeClipboard) WriteAll(text string) error {
	if f.err != nil {
		return f.err
	}
	f.text = text
	return nil
}

var fixedNow = time.Date(2025, 1, 2, 15, 4, 5, 0, time.UTC)

func newTestModel(clip flow.Clipboard, start flow.Screen) AppModel {
	return NewAppModel(Options{
		Source:    &fakeSource{lines: telemetry.FallbackLines},
		Clipboard: clip,
		Start:     start,
		Now:       func() time.Time { return fixedNow },
	})
}

func update(t *testing.T, m AppModel, msg tea.Msg) AppModel {
	t.Helper()
	next, _ := m.Update(msg)
	am, ok := next.(AppModel)
	if !ok {
		t.Fatalf("Update() returned %T", next)
	}
	return am
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(t *testing.T, m AppModel, s string) AppModel {
	t.Helper()
	for _, r := range s {
		m = update(t, m, keyRunes(string(r)))
	}
	return m
}

// completeRun delivers telemetry and drives the active run through settle.
func completeRun(t *testing.T, m AppModel, lines []string) AppModel {
	t.Helper()

	run := m.Controller.ActiveRun()
	if run == nil {
		t.Fatalf("no active run on %s", m.Controller.Screen())
	}
	id := run.ID

	m = update(t, m, telemetryMsg{run: id, lines: lines})
	for i := 0; i <= flow.MaxProgress; i++ {
		m = update(t, m, tickMsg{run: id})
	}
	if !run.Complete() {
		t.Fatalf("run incomplete at progress %d", run.Progress)
	}
	return update(t, m, settleMsg{run: id})
}

func TestNewAppModel(t *testing.T) {
	m := NewAppModel(Options{})

	if m.Controller.Screen() != flow.ScreenLanding {
		t.Errorf("Screen() = %s, want landing", m.Controller.Screen())
	}
	if m.amountLabel != DefaultAmountLabel {
		t.Errorf("amountLabel = %q, want %q", m.amountLabel, DefaultAmountLabel)
	}
	if m.Controller.PaymentReference() != flow.DefaultPaymentReference {
		t.Errorf("PaymentReference() = %q", m.Controller.PaymentReference())
	}
	if m.Init() == nil {
		t.Error("Init() should start the spinner")
	}
}

func TestNewAppModel_Start(t *testing.T) {
	tests := []struct {
		start flow.Screen
		want  flow.Screen
	}{
		{"", flow.ScreenLanding},
		{flow.ScreenSignup, flow.ScreenSignup},
		{flow.ScreenLogin, flow.ScreenLogin},
		{flow.ScreenPayment, flow.ScreenLanding},
	}

	for _, tt := range tests {
		m := newTestModel(nil, tt.start)
		if m.Controller.Screen() != tt.want {
			t.Errorf("Start %q: Screen() = %s, want %s", tt.start, m.Controller.Screen(), tt.want)
		}
	}
}

func TestLandingMenu(t *testing.T) {
	m := newTestModel(nil, "")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if m.Cursor != 1 {
		t.Fatalf("Cursor = %d, want 1", m.Cursor)
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Controller.Screen() != flow.ScreenLogin {
		t.Errorf("Screen() = %s, want login", m.Controller.Screen())
	}
	if m.Cursor != 0 {
		t.Errorf("Cursor = %d after transition, want 0", m.Cursor)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.Controller.Screen() != flow.ScreenLanding {
		t.Errorf("esc from login = %s, want landing", m.Controller.Screen())
	}

	m = update(t, m, keyRunes("c"))
	if m.Controller.Screen() != flow.ScreenSignup {
		t.Errorf("c on landing = %s, want signup", m.Controller.Screen())
	}
}

func TestQuit(t *testing.T) {
	m := newTestModel(nil, "")
	_, cmd := m.Update(keyRunes("q"))
	if cmd == nil {
		t.Fatal("q on landing returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q on landing should quit")
	}

	m = newTestModel(nil, flow.ScreenLogin)
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("ctrl+c returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c should quit")
	}
}

func TestFormSubmitRequiresCredentials(t *testing.T) {
	m := newTestModel(nil, flow.ScreenLogin)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.Controller.Screen() != flow.ScreenLogin {
		t.Fatalf("Screen() = %s, want login", m.Controller.Screen())
	}
	if got := m.Controller.MissingFields(); len(got) != 2 {
		t.Errorf("MissingFields() = %v, want email and password", got)
	}
	if !strings.Contains(m.View(), "obrigatório") {
		t.Error("View() should flag missing fields")
	}
}

func TestFormEnterAdvancesToPassword(t *testing.T) {
	m := newTestModel(nil, flow.ScreenLogin)
	m = typeText(t, m, "a@b.com")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.Form.Focus != fieldPassword {
		t.Errorf("Focus = %v, want password", m.Form.Focus)
	}
	if m.Controller.Screen() != flow.ScreenLogin {
		t.Errorf("Screen() = %s, want login", m.Controller.Screen())
	}

	m = typeText(t, m, "secret")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Controller.Screen() != flow.ScreenPostLoginChoice {
		t.Errorf("Screen() = %s, want post_login_choice", m.Controller.Screen())
	}
	if c := m.Controller.Credentials(); c.Email != "a@b.com" || c.Password != "secret" {
		t.Errorf("Credentials() = %+v", c)
	}
}

func TestPasswordIsMasked(t *testing.T) {
	m := newTestModel(nil, flow.ScreenLogin)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = typeText(t, m, "hunter2")

	if strings.Contains(m.View(), "hunter2") {
		t.Error("View() shows the password in clear text")
	}
}

func TestProvisioningLog(t *testing.T) {
	m := newTestModel(nil, flow.ScreenSignup)
	m = typeText(t, m, "a@b.com")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = typeText(t, m, "x")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.Controller.Screen() != flow.ScreenProvisioning {
		t.Fatalf("Screen() = %s, want provisioning", m.Controller.Screen())
	}
	if !strings.Contains(m.View(), LogPlaceholder) {
		t.Error("View() should show the log placeholder before telemetry")
	}

	// Back is unavailable while provisioning.
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.Controller.Screen() != flow.ScreenProvisioning {
		t.Fatalf("esc left provisioning: %s", m.Controller.Screen())
	}

	id := m.Controller.ActiveRun().ID
	m = update(t, m, telemetryMsg{run: id, lines: telemetry.FallbackLines})
	for i := 0; i < 3*flow.CheckpointStep; i++ {
		m = update(t, m, tickMsg{run: id})
	}

	if len(m.entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(m.entries))
	}
	for i, e := range m.entries {
		if e.Text != telemetry.FallbackLines[i] {
			t.Errorf("entries[%d] = %q, want %q", i, e.Text, telemetry.FallbackLines[i])
		}
	}

	view := m.View()
	if !strings.Contains(view, "SINCRONIZANDO") {
		t.Error("View() should show the provisioning header")
	}
	if !strings.Contains(view, " 36%") {
		t.Error("View() should show the progress percentage")
	}
	if !strings.Contains(view, "[15:04:05]") {
		t.Error("View() should timestamp log lines")
	}

	// A stale tick from an unrelated run changes nothing.
	m = update(t, m, tickMsg{run: id + 1})
	if m.Controller.ActiveRun().Progress != 3*flow.CheckpointStep {
		t.Errorf("stale tick moved progress to %d", m.Controller.ActiveRun().Progress)
	}
}

func TestCopyIndicator(t *testing.T) {
	clip := &fakeClipboard{}
	m := newTestModel(clip, flow.ScreenLogin)
	m = typeText(t, m, "a@b.com")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = typeText(t, m, "x")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = update(t, m, keyRunes("n"))
	m = completeRun(t, m, nil)
	m = update(t, m, keyRunes("p"))

	if m.Controller.Screen() != flow.ScreenPayment {
		t.Fatalf("Screen() = %s, want payment", m.Controller.Screen())
	}
	if !strings.Contains(m.View(), "COPIAR CHAVE") {
		t.Error("View() should show the copy button")
	}

	next, cmd := m.Update(keyRunes("y"))
	m = next.(AppModel)
	if cmd == nil {
		t.Error("copy should schedule a reset")
	}
	if clip.text != flow.DefaultPaymentReference {
		t.Errorf("clipboard = %q, want %q", clip.text, flow.DefaultPaymentReference)
	}
	if !strings.Contains(m.View(), "CHAVE COPIADA") {
		t.Error("View() should show the copied state")
	}

	m = update(t, m, copyResetMsg{seq: 1})
	if m.Controller.CopyIndicator().Active() {
		t.Error("indicator still raised after reset")
	}
	if m.Controller.Screen() != flow.ScreenPayment {
		t.Errorf("copy changed screen to %s", m.Controller.Screen())
	}
}

func TestCopyFailureShown(t *testing.T) {
	m := newTestModel(&fakeClipboard{err: errors.New("no display")}, flow.ScreenLogin)
	m = typeText(t, m, "a@b.com")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = typeText(t, m, "x")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = update(t, m, keyRunes("n"))
	m = completeRun(t, m, nil)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = update(t, m, keyRunes("c"))

	if !m.Controller.CopyIndicator().Failed {
		t.Error("CopyIndicator().Failed = false")
	}
	if !strings.Contains(m.View(), "FALHA AO COPIAR") {
		t.Error("View() should show the copy failure")
	}
}

// TestEndToEnd walks landing through validation using key presses.
func TestEndToEnd(t *testing.T) {
	clip := &fakeClipboard{}
	m := newTestModel(clip, "")

	m = update(t, m, keyRunes("c"))
	m = typeText(t, m, "a@b.com")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = typeText(t, m, "x")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = completeRun(t, m, telemetry.FallbackLines)

	if m.Controller.Screen() != flow.ScreenPaymentPending {
		t.Fatalf("Screen() = %s, want payment_pending", m.Controller.Screen())
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !strings.Contains(m.View(), DefaultAmountLabel) {
		t.Error("View() should show the amount label")
	}
	m = update(t, m, keyRunes("y"))
	if clip.text != flow.DefaultPaymentReference {
		t.Fatalf("clipboard = %q", clip.text)
	}
	m = update(t, m, copyResetMsg{seq: 1})

	m = update(t, m, keyRunes("s"))
	if m.Controller.Screen() != flow.ScreenProvisioning {
		t.Fatalf("Screen() = %s, want provisioning", m.Controller.Screen())
	}
	if len(m.entries) != 0 {
		t.Errorf("entries = %d at start of second run, want 0", len(m.entries))
	}
	m = completeRun(t, m, telemetry.FallbackLines)

	if m.Controller.Screen() != flow.ScreenSuccessValidation {
		t.Fatalf("Screen() = %s, want success_validation", m.Controller.Screen())
	}
	id := m.Controller.ProtocolID()
	if len(id) != flow.ProtocolIDLength {
		t.Errorf("ProtocolID() = %q", id)
	}
	if !strings.Contains(m.View(), "PROTOCOLO: "+id) {
		t.Error("View() should show the protocol id")
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.Controller.Screen() != flow.ScreenPostLoginChoice {
		t.Errorf("esc from validation = %s, want post_login_choice", m.Controller.Screen())
	}
}

func TestEffectCmds(t *testing.T) {
	if effectCmds(nil, nil) != nil {
		t.Error("effectCmds() with no effects should be nil")
	}

	src := &fakeSource{lines: []string{"a", "b"}}
	msg := fetchCmd(src, 7, context.Background())()

	tm, ok := msg.(telemetryMsg)
	if !ok {
		t.Fatalf("fetchCmd() = %T, want telemetryMsg", msg)
	}
	if tm.run != 7 || len(tm.lines) != 2 {
		t.Errorf("telemetryMsg = %+v", tm)
	}
	if src.calls != 1 {
		t.Errorf("Fetch() calls = %d, want 1", src.calls)
	}
}

func TestWindowResize(t *testing.T) {
	m := newTestModel(nil, "")
	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	if m.Width != 120 || m.Height != 40 {
		t.Errorf("size = %dx%d, want 120x40", m.Width, m.Height)
	}
	if m.ProgressBar.Width != PanelWidth(120)-16 {
		t.Errorf("ProgressBar.Width = %d", m.ProgressBar.Width)
	}
	if !strings.Contains(m.View(), AppName) {
		t.Error("View() should render the header")
	}
}
