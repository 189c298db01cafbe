package tui

import (
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/uplink/internal/flow"
	"github.com/muurk/uplink/internal/telemetry"
)

var errClipboardUnsupported = errors.New("no clipboard utility available")

// Options configures the portal.
type Options struct {
	// Source supplies telemetry lines. Nil always uses the fallback lines.
	Source TelemetrySource

	// Clipboard receives the payment reference. Nil uses the system clipboard.
	Clipboard flow.Clipboard

	// PaymentReference is copied by the payment panel.
	PaymentReference string

	// AmountLabel is the amount shown on the payment screens.
	AmountLabel string

	// Start opens the portal on a screen other than landing. Only screens
	// reachable without a run are accepted (landing, signup, login).
	Start flow.Screen

	// Now is the clock used for log timestamps. Defaults to time.Now.
	Now func() time.Time
}

// DefaultAmountLabel is shown when no amount is configured.
const DefaultAmountLabel = "DEMO 0,00"

// AppModel is the top-level Bubble Tea model. It owns the flow controller and
// translates key presses into flow events and controller effects into
// commands.
type AppModel struct {
	Controller *flow.Controller
	Form       CredentialForm

	// Menu cursor for landing and post-login choice
	Cursor int

	// Telemetry log with the time each line appeared
	logRun  flow.RunID
	entries []logEntry

	// UI state
	Width       int
	Height      int
	Spinner     spinner.Model
	ProgressBar progress.Model
	Help        help.Model
	Keys        keyMaps

	source      TelemetrySource
	amountLabel string
	now         func() time.Time
}

// NewAppModel creates the portal model.
func NewAppModel(opts Options) AppModel {
	if opts.Source == nil {
		opts.Source = telemetry.NewSource(nil)
	}
	if opts.Clipboard == nil {
		opts.Clipboard = SystemClipboard{}
	}
	if opts.AmountLabel == "" {
		opts.AmountLabel = DefaultAmountLabel
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	ctrl := flow.NewController(flow.Options{
		Clipboard:        opts.Clipboard,
		PaymentReference: opts.PaymentReference,
	})
	switch opts.Start {
	case flow.ScreenSignup:
		ctrl.Handle(flow.EventChooseSignup)
	case flow.ScreenLogin:
		ctrl.Handle(flow.EventChooseLogin)
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	bar := progress.New(
		progress.WithGradient("#C2410C", "#F97316"),
		progress.WithoutPercentage(),
	)
	bar.Width = 40

	return AppModel{
		Controller:  ctrl,
		Form:        NewCredentialForm(),
		Width:       DefaultWidth,
		Height:      DefaultHeight,
		Spinner:     s,
		ProgressBar: bar,
		Help:        help.New(),
		Keys:        newKeyMaps(),
		source:      opts.Source,
		amountLabel: opts.AmountLabel,
		now:         opts.Now,
	}
}

// Init starts the spinner and the cursor blink.
func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.Spinner.Tick, m.Form.Reset())
}

// Update handles all messages and routes them to the controller
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.ProgressBar.Width = PanelWidth(msg.Width) - 16
		if m.ProgressBar.Width < 10 {
			m.ProgressBar.Width = 10
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.Controller.Close()
			return m, tea.Quit
		}
		return m.handleKey(msg)

	case telemetryMsg:
		return m, m.apply(m.Controller.TelemetryReady(msg.run, msg.lines))

	case tickMsg:
		cmd := m.apply(m.Controller.Tick(msg.run))
		m.syncLog()
		return m, cmd

	case settleMsg:
		return m.afterTransition(m.apply(m.Controller.Settle(msg.run)))

	case copyResetMsg:
		m.Controller.ResetCopy(msg.seq)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd
	}

	// Cursor blink and other input-bound messages
	if m.onForm() {
		var cmd tea.Cmd
		m.Form, _, cmd = m.Form.Update(msg, m.Keys.Form)
		return m, cmd
	}
	return m, nil
}

// Dispatch sends a flow event to the controller and returns the resulting
// command. It is the single entry point for user actions.
func (m AppModel) Dispatch(event flow.Event) (AppModel, tea.Cmd) {
	before := m.Controller.Screen()
	cmd := m.apply(m.Controller.Handle(event))
	if m.Controller.Screen() != before {
		model, extra := m.afterTransition(cmd)
		return model.(AppModel), extra
	}
	return m, cmd
}

// apply executes controller effects.
func (m AppModel) apply(effects []flow.Effect) tea.Cmd {
	return effectCmds(m.source, effects)
}

// afterTransition resets per-screen UI state after the screen changed.
func (m AppModel) afterTransition(cmd tea.Cmd) (tea.Model, tea.Cmd) {
	m.Cursor = 0
	m.syncLog()
	if m.onForm() {
		blink := m.Form.Reset()
		return m, tea.Batch(cmd, blink)
	}
	return m, cmd
}

// syncLog stamps newly appended log lines and drops entries of old runs.
func (m *AppModel) syncLog() {
	run := m.Controller.ActiveRun()
	if run == nil {
		return
	}
	if run.ID != m.logRun {
		m.logRun = run.ID
		m.entries = nil
	}
	for i := len(m.entries); i < len(run.Log); i++ {
		m.entries = append(m.entries, logEntry{At: m.now(), Text: run.Log[i]})
	}
}

func (m AppModel) onForm() bool {
	s := m.Controller.Screen()
	return s == flow.ScreenSignup || s == flow.ScreenLogin
}

// handleKey maps key presses to flow events for the current screen
func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.Controller.Screen() {
	case flow.ScreenLanding:
		return m.handleMenu(msg, m.Keys.Landing, flow.EventChooseSignup, flow.EventChooseLogin, true)

	case flow.ScreenPostLoginChoice:
		return m.handleMenu(msg, m.Keys.Choice, flow.EventChooseAlreadyPaid, flow.EventChooseNotPaid, false)

	case flow.ScreenSignup, flow.ScreenLogin:
		form, action, cmd := m.Form.Update(msg, m.Keys.Form)
		m.Form = form
		email, password := m.Form.Values()
		m.Controller.SetEmail(email)
		m.Controller.SetPassword(password)

		switch action {
		case formActionSubmit:
			next, dcmd := m.Dispatch(flow.EventSubmitCredentials)
			return next, tea.Batch(cmd, dcmd)
		case formActionBack:
			return m.Dispatch(flow.EventGoBack)
		}
		return m, cmd

	case flow.ScreenPaymentPending:
		switch {
		case key.Matches(msg, m.Keys.Pending.Pay):
			return m.Dispatch(flow.EventGoToPayment)
		case key.Matches(msg, m.Keys.Pending.Back):
			return m.Dispatch(flow.EventGoBack)
		case key.Matches(msg, m.Keys.Pending.Quit):
			return m.quit()
		}

	case flow.ScreenPayment:
		switch {
		case key.Matches(msg, m.Keys.Payment.Copy):
			return m.Dispatch(flow.EventCopyPaymentKey)
		case key.Matches(msg, m.Keys.Payment.Satellite):
			return m.Dispatch(flow.EventTriggerDecorativeConfirm)
		case key.Matches(msg, m.Keys.Payment.Back):
			return m.Dispatch(flow.EventGoBack)
		case key.Matches(msg, m.Keys.Payment.Quit):
			return m.quit()
		}

	case flow.ScreenProvisioning:
		if key.Matches(msg, m.Keys.Provisioning.Quit) {
			return m.quit()
		}

	case flow.ScreenSuccessValidation:
		switch {
		case key.Matches(msg, m.Keys.Validation.Back):
			return m.Dispatch(flow.EventGoBack)
		case key.Matches(msg, m.Keys.Validation.Quit):
			return m.quit()
		}
	}

	return m, nil
}

// handleMenu handles the two-option menus. escQuits is set on landing,
// where there is no back target.
func (m AppModel) handleMenu(msg tea.KeyMsg, keys menuKeyMap, first, second flow.Event, escQuits bool) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		m.Cursor = 0
	case key.Matches(msg, keys.Down):
		m.Cursor = 1
	case key.Matches(msg, keys.First):
		return m.Dispatch(first)
	case key.Matches(msg, keys.Second):
		return m.Dispatch(second)
	case key.Matches(msg, keys.Select):
		if m.Cursor == 0 {
			return m.Dispatch(first)
		}
		return m.Dispatch(second)
	case key.Matches(msg, keys.Quit):
		return m.quit()
	case key.Matches(msg, keys.Back):
		if escQuits {
			return m.quit()
		}
		return m.Dispatch(flow.EventGoBack)
	}
	return m, nil
}

func (m AppModel) quit() (tea.Model, tea.Cmd) {
	m.Controller.Close()
	return m, tea.Quit
}
