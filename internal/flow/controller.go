package flow

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/muurk/uplink/internal/logging"
)

// CopyResetDelay is how long the copy indicator stays raised.
const CopyResetDelay = 2 * time.Second

// DefaultPaymentReference is the placeholder copied by the payment panel when
// no reference is configured. It is opaque to the controller.
const DefaultPaymentReference = "DEMO-PAYMENT-REFERENCE-0000-0000"

// Clipboard is the write-only clipboard collaborator.
// github.com/atotto/clipboard satisfies it via an adapter in the tui package.
type Clipboard interface {
	WriteAll(text string) error
}

// Credentials holds the form input. It is never validated beyond presence and
// never leaves the process.
type Credentials struct {
	Email    string
	Password string
}

// Complete reports whether both fields are non-empty.
func (c Credentials) Complete() bool {
	return strings.TrimSpace(c.Email) != "" && c.Password != ""
}

// CopyIndicator is the cosmetic state of the copy button.
type CopyIndicator struct {
	Copied bool
	Failed bool
	seq    uint64
}

// Active reports whether either state is currently shown.
func (c CopyIndicator) Active() bool { return c.Copied || c.Failed }

// Effect is asynchronous work requested by the Controller. The caller executes
// it and reports back through the matching Controller method.
type Effect interface {
	isEffect()
}

// FetchTelemetry asks the caller to fetch telemetry lines using Ctx and then
// call TelemetryReady(Run, lines).
type FetchTelemetry struct {
	Run RunID
	Ctx context.Context
}

// ScheduleTick asks the caller to call Tick(Run) after After.
type ScheduleTick struct {
	Run   RunID
	After time.Duration
}

// ScheduleSettle asks the caller to call Settle(Run) after After.
type ScheduleSettle struct {
	Run   RunID
	After time.Duration
}

// ScheduleCopyReset asks the caller to call ResetCopy(Seq) after After.
type ScheduleCopyReset struct {
	Seq   uint64
	After time.Duration
}

func (FetchTelemetry) isEffect()    {}
func (ScheduleTick) isEffect()      {}
func (ScheduleSettle) isEffect()    {}
func (ScheduleCopyReset) isEffect() {}

// Options configures a Controller.
type Options struct {
	// Clipboard receives the payment reference on copy. Nil disables copying
	// (the indicator reports failure).
	Clipboard Clipboard

	// PaymentReference is copied verbatim. Defaults to DefaultPaymentReference.
	PaymentReference string

	// NewProtocolID generates the display id shown on the validation screen.
	// Defaults to NewProtocolID.
	NewProtocolID func() string

	// Context is the parent of every run context. Defaults to
	// context.Background().
	Context context.Context
}

// Controller is the flow state machine.
type Controller struct {
	screen      Screen
	credentials Credentials
	run         *Run
	lastRun     RunID
	copy        CopyIndicator
	protocolID  string

	clipboard  Clipboard
	reference  string
	newID      func() string
	parent     context.Context
	submitErrs []string
}

// NewController creates a controller positioned on the landing screen.
func NewController(opts Options) *Controller {
	if opts.PaymentReference == "" {
		opts.PaymentReference = DefaultPaymentReference
	}
	if opts.NewProtocolID == nil {
		opts.NewProtocolID = NewProtocolID
	}
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	return &Controller{
		screen:    ScreenLanding,
		clipboard: opts.Clipboard,
		reference: opts.PaymentReference,
		newID:     opts.NewProtocolID,
		parent:    opts.Context,
	}
}

// Screen returns the current screen.
func (c *Controller) Screen() Screen { return c.screen }

// Credentials returns the current form input.
func (c *Controller) Credentials() Credentials { return c.credentials }

// ActiveRun returns the current run, or nil when none is active.
func (c *Controller) ActiveRun() *Run { return c.run }

// CopyIndicator returns the copy button state.
func (c *Controller) CopyIndicator() CopyIndicator { return c.copy }

// ProtocolID returns the id generated on the last entry to the validation
// screen.
func (c *Controller) ProtocolID() string { return c.protocolID }

// PaymentReference returns the string the copy action writes.
func (c *Controller) PaymentReference() string { return c.reference }

// MissingFields lists the form fields that blocked the last submit.
func (c *Controller) MissingFields() []string { return c.submitErrs }

// CanGoBack reports whether back navigation is available on the current screen.
func (c *Controller) CanGoBack() bool {
	_, ok := BackTarget(c.screen)
	return ok
}

// SetEmail updates the email field.
func (c *Controller) SetEmail(v string) {
	c.credentials.Email = v
	c.submitErrs = nil
}

// SetPassword updates the password field.
func (c *Controller) SetPassword(v string) {
	c.credentials.Password = v
	c.submitErrs = nil
}

// Handle applies a user event. Events that do not apply to the current screen
// are ignored.
func (c *Controller) Handle(event Event) []Effect {
	out := Next(c.screen, event)

	switch out.Kind {
	case OutcomeNone:
		logging.Debug("Event ignored",
			zap.String("screen", string(c.screen)),
			zap.String("event", event.String()),
		)
		return nil

	case OutcomeCopy:
		return c.copyPaymentKey()

	case OutcomeProvision:
		if event == EventSubmitCredentials && !c.validateCredentials() {
			return nil
		}
		return c.startRun(out.Screen)

	case OutcomeGoto:
		if event == EventSubmitCredentials && !c.validateCredentials() {
			return nil
		}
		c.enter(out.Screen, event.String())
		return nil
	}

	return nil
}

func (c *Controller) validateCredentials() bool {
	var missing []string
	if strings.TrimSpace(c.credentials.Email) == "" {
		missing = append(missing, "email")
	}
	if c.credentials.Password == "" {
		missing = append(missing, "password")
	}
	c.submitErrs = missing
	return len(missing) == 0
}

// enter switches screens and applies per-screen entry actions.
func (c *Controller) enter(next Screen, cause string) {
	prev := c.screen
	c.screen = next

	if next != ScreenProvisioning && c.run != nil {
		// Leaving provisioning destroys the run.
		c.run.Cancel()
		c.run = nil
	}
	if next == ScreenSuccessValidation {
		c.protocolID = c.newID()
	}
	if next != ScreenPayment {
		c.copy = CopyIndicator{seq: c.copy.seq}
	}

	logging.LogTransition(string(prev), string(next), cause)
}

// startRun cancels any active run and begins a new one targeting target.
func (c *Controller) startRun(target Screen) []Effect {
	if c.run != nil {
		logging.Debug("Superseding provisioning run",
			zap.Uint64("run", uint64(c.run.ID)),
		)
		c.run.Cancel()
		c.run = nil
	}

	c.lastRun++
	prev := c.screen
	c.screen = ScreenProvisioning
	c.run = newRun(c.parent, c.lastRun, target)
	c.copy = CopyIndicator{seq: c.copy.seq}

	logging.LogTransition(string(prev), string(ScreenProvisioning), "provision")
	logging.LogRunStarted(uint64(c.run.ID), string(target))

	return []Effect{FetchTelemetry{Run: c.run.ID, Ctx: c.run.Context()}}
}

// current returns the active run if its id matches.
func (c *Controller) current(id RunID) *Run {
	if c.run == nil || c.run.ID != id || c.run.Cancelled() {
		return nil
	}
	return c.run
}

// TelemetryReady attaches fetched lines to run id and starts its timer.
// Results for a superseded run are discarded.
func (c *Controller) TelemetryReady(id RunID, lines []string) []Effect {
	run := c.current(id)
	if run == nil {
		logging.Debug("Discarding telemetry for stale run", zap.Uint64("run", uint64(id)))
		return nil
	}
	if !run.Begin(lines) {
		return nil
	}
	logging.Debug("Telemetry attached",
		zap.Uint64("run", uint64(id)),
		zap.Int("lines", len(lines)),
	)
	return []Effect{ScheduleTick{Run: id, After: TickInterval}}
}

// Tick advances run id by one interval.
func (c *Controller) Tick(id RunID) []Effect {
	run := c.current(id)
	if run == nil {
		return nil
	}
	switch run.Tick() {
	case TickAdvanced:
		return []Effect{ScheduleTick{Run: id, After: TickInterval}}
	case TickComplete:
		return []Effect{ScheduleSettle{Run: id, After: SettleDelay}}
	}
	return nil
}

// Settle finishes run id by switching to its target screen.
func (c *Controller) Settle(id RunID) []Effect {
	run := c.current(id)
	if run == nil || !run.Complete() {
		return nil
	}
	logging.LogRunCompleted(uint64(id), string(run.Target), len(run.Log))
	c.enter(run.Target, "run_complete")
	return nil
}

func (c *Controller) copyPaymentKey() []Effect {
	c.copy.seq++
	seq := c.copy.seq

	var err error
	if c.clipboard == nil {
		err = errNoClipboard
	} else {
		err = c.clipboard.WriteAll(c.reference)
	}

	if err != nil {
		logging.Warn("Clipboard write failed", zap.Error(err))
		c.copy = CopyIndicator{Failed: true, seq: seq}
	} else {
		c.copy = CopyIndicator{Copied: true, seq: seq}
	}
	return []Effect{ScheduleCopyReset{Seq: seq, After: CopyResetDelay}}
}

// ResetCopy lowers the copy indicator if seq is the most recent copy.
func (c *Controller) ResetCopy(seq uint64) {
	if seq != c.copy.seq {
		return
	}
	c.copy = CopyIndicator{seq: seq}
}

// Close cancels any active run.
func (c *Controller) Close() {
	if c.run != nil {
		c.run.Cancel()
		c.run = nil
	}
}
