package flow

import (
	"errors"
	"reflect"
	"testing"
)

type fakeClipboard struct {
	text   string
	writes int
	err    error
}

func (f *fakeClipboard) WriteAll(text string) error {
	f.writes++
	if f.err != nil {
		return f.err
	}
	f.text = text
	return nil
}

func newTestController(clip Clipboard) *Controller {
	return NewController(Options{
		Clipboard:     clip,
		NewProtocolID: func() string { return "PROTO0001" },
	})
}

// fetchOf returns the FetchTelemetry effect in effects.
func fetchOf(t *testing.T, effects []Effect) FetchTelemetry {
	t.Helper()
	if len(effects) != 1 {
		t.Fatalf("effects = %#v, want one FetchTelemetry", effects)
	}
	f, ok := effects[0].(FetchTelemetry)
	if !ok {
		t.Fatalf("effect = %#v, want FetchTelemetry", effects[0])
	}
	return f
}

// finishRun feeds lines to the active run and drives it through settle.
func finishRun(t *testing.T, c *Controller, id RunID, src []string) {
	t.Helper()

	effects := c.TelemetryReady(id, src)
	for i := 0; i < 1000; i++ {
		if len(effects) != 1 {
			t.Fatalf("effects = %#v, want exactly one", effects)
		}
		switch e := effects[0].(type) {
		case ScheduleTick:
			if e.After != TickInterval {
				t.Fatalf("tick after %v, want %v", e.After, TickInterval)
			}
			effects = c.Tick(e.Run)
		case ScheduleSettle:
			if e.After != SettleDelay {
				t.Fatalf("settle after %v, want %v", e.After, SettleDelay)
			}
			if c.ActiveRun().Progress != MaxProgress {
				t.Fatalf("settle scheduled at progress %d", c.ActiveRun().Progress)
			}
			if c.Screen() != ScreenProvisioning {
				t.Fatalf("screen changed before settle: %s", c.Screen())
			}
			c.Settle(e.Run)
			return
		default:
			t.Fatalf("unexpected effect %#v", e)
		}
	}
	t.Fatal("run never settled")
}

func TestController_StartsOnLanding(t *testing.T) {
	c := newTestController(nil)

	if c.Screen() != ScreenLanding {
		t.Errorf("Screen() = %s, want landing", c.Screen())
	}
	if c.CanGoBack() {
		t.Error("CanGoBack() on landing = true")
	}
	if c.PaymentReference() != DefaultPaymentReference {
		t.Errorf("PaymentReference() = %q, want %q", c.PaymentReference(), DefaultPaymentReference)
	}
}

func TestController_SubmitRequiresCredentials(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		missing  []string
	}{
		{"both empty", "", "", []string{"email", "password"}},
		{"blank email", "   ", "x", []string{"email"}},
		{"no password", "a@b.com", "", []string{"password"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestController(nil)
			c.Handle(EventChooseLogin)
			c.SetEmail(tt.email)
			c.SetPassword(tt.password)

			if effects := c.Handle(EventSubmitCredentials); effects != nil {
				t.Errorf("effects = %#v, want nil", effects)
			}
			if c.Screen() != ScreenLogin {
				t.Errorf("Screen() = %s, want login", c.Screen())
			}
			if !reflect.DeepEqual(c.MissingFields(), tt.missing) {
				t.Errorf("MissingFields() = %v, want %v", c.MissingFields(), tt.missing)
			}

			c.SetEmail("a@b.com")
			if len(c.MissingFields()) != 0 {
				t.Error("editing a field should clear MissingFields()")
			}
		})
	}
}

func TestController_SignupStartsRun(t *testing.T) {
	c := newTestController(nil)
	c.Handle(EventChooseSignup)
	c.SetEmail("a@b.com")
	c.SetPassword("x")

	f := fetchOf(t, c.Handle(EventSubmitCredentials))

	if c.Screen() != ScreenProvisioning {
		t.Fatalf("Screen() = %s, want provisioning", c.Screen())
	}
	run := c.ActiveRun()
	if run == nil || run.ID != f.Run {
		t.Fatalf("ActiveRun() = %+v, want run %d", run, f.Run)
	}
	if run.Target != ScreenPaymentPending {
		t.Errorf("Target = %s, want payment_pending", run.Target)
	}
	if run.Progress != 0 || len(run.Log) != 0 {
		t.Errorf("new run Progress = %d Log = %v, want 0 and empty", run.Progress, run.Log)
	}
	if f.Ctx == nil || f.Ctx.Err() != nil {
		t.Error("fetch context should be live")
	}

	snap := c.Snapshot()
	if !snap.Waiting {
		t.Error("Snapshot().Waiting = false before telemetry")
	}
	if snap.CanGoBack {
		t.Error("Snapshot().CanGoBack during provisioning = true")
	}

	// Ticks before telemetry are ignored.
	if effects := c.Tick(f.Run); effects != nil {
		t.Errorf("Tick() before telemetry = %#v", effects)
	}

	src := lines(10)
	finishRun(t, c, f.Run, src)

	if c.Screen() != ScreenPaymentPending {
		t.Errorf("Screen() = %s, want payment_pending", c.Screen())
	}
	if c.ActiveRun() != nil {
		t.Error("run should be released after settle")
	}
	if f.Ctx.Err() == nil {
		t.Error("run context should be cancelled after settle")
	}
}

func TestController_SettleBeforeCompleteIgnored(t *testing.T) {
	c := newTestController(nil)
	c.Handle(EventChooseLogin)
	c.SetEmail("a@b.com")
	c.SetPassword("x")
	c.Handle(EventSubmitCredentials)

	f := fetchOf(t, c.Handle(EventChooseNotPaid))
	c.TelemetryReady(f.Run, lines(3))
	c.Tick(f.Run)

	c.Settle(f.Run)
	if c.Screen() != ScreenProvisioning {
		t.Errorf("Screen() = %s after early settle, want provisioning", c.Screen())
	}
}

func TestController_StaleRunDiscarded(t *testing.T) {
	c := newTestController(nil)
	c.Handle(EventChooseLogin)
	c.SetEmail("a@b.com")
	c.SetPassword("x")
	c.Handle(EventSubmitCredentials)

	first := fetchOf(t, c.Handle(EventChooseNotPaid))

	// Supersede the first run while its fetch is still in flight.
	second := fetchOf(t, c.startRun(ScreenSuccessValidation))

	if first.Run == second.Run {
		t.Fatal("run ids must differ")
	}
	if first.Ctx.Err() == nil {
		t.Error("superseded run context should be cancelled")
	}

	if effects := c.TelemetryReady(first.Run, []string{"stale"}); effects != nil {
		t.Errorf("stale TelemetryReady effects = %#v, want nil", effects)
	}
	if c.ActiveRun().Begun() {
		t.Error("stale telemetry attached to the current run")
	}
	if effects := c.Tick(first.Run); effects != nil {
		t.Errorf("stale Tick effects = %#v, want nil", effects)
	}

	finishRun(t, c, second.Run, lines(4))
	if c.Screen() != ScreenSuccessValidation {
		t.Errorf("Screen() = %s, want success_validation", c.Screen())
	}

	// A late settle for the first run changes nothing.
	c.Settle(first.Run)
	if c.Screen() != ScreenSuccessValidation {
		t.Errorf("Screen() = %s after stale settle", c.Screen())
	}
}

func TestController_BackNavigation(t *testing.T) {
	c := newTestController(nil)
	c.Handle(EventChooseLogin)
	c.SetEmail("a@b.com")
	c.SetPassword("x")
	c.Handle(EventSubmitCredentials)

	if c.Screen() != ScreenPostLoginChoice {
		t.Fatalf("Screen() = %s, want post_login_choice", c.Screen())
	}

	f := fetchOf(t, c.Handle(EventChooseNotPaid))
	if effects := c.Handle(EventGoBack); effects != nil {
		t.Errorf("back during provisioning returned %#v", effects)
	}
	if c.Screen() != ScreenProvisioning {
		t.Fatalf("back left provisioning: %s", c.Screen())
	}
	finishRun(t, c, f.Run, nil)

	c.Handle(EventGoToPayment)
	if c.Screen() != ScreenPayment {
		t.Fatalf("Screen() = %s, want payment", c.Screen())
	}

	c.Handle(EventGoBack)
	if c.Screen() != ScreenPostLoginChoice {
		t.Errorf("back from payment = %s, want post_login_choice", c.Screen())
	}

	c.Handle(EventGoBack)
	if c.Screen() != ScreenLanding {
		t.Errorf("back from choice = %s, want landing", c.Screen())
	}

	c.Handle(EventGoBack)
	if c.Screen() != ScreenLanding {
		t.Errorf("back from landing = %s, want landing", c.Screen())
	}
}

func TestController_Copy(t *testing.T) {
	clip := &fakeClipboard{}
	c := newTestController(clip)
	c.Handle(EventChooseLogin)
	c.SetEmail("a@b.com")
	c.SetPassword("x")
	c.Handle(EventSubmitCredentials)
	f := fetchOf(t, c.Handle(EventChooseNotPaid))
	finishRun(t, c, f.Run, nil)
	c.Handle(EventGoToPayment)

	effects := c.Handle(EventCopyPaymentKey)
	if len(effects) != 1 {
		t.Fatalf("effects = %#v, want one ScheduleCopyReset", effects)
	}
	reset, ok := effects[0].(ScheduleCopyReset)
	if !ok {
		t.Fatalf("effect = %#v, want ScheduleCopyReset", effects[0])
	}
	if reset.After != CopyResetDelay {
		t.Errorf("reset after %v, want %v", reset.After, CopyResetDelay)
	}

	if clip.text != DefaultPaymentReference {
		t.Errorf("clipboard = %q, want %q", clip.text, DefaultPaymentReference)
	}
	if !c.CopyIndicator().Copied {
		t.Error("CopyIndicator().Copied = false after copy")
	}
	if c.Screen() != ScreenPayment {
		t.Errorf("copy changed screen to %s", c.Screen())
	}

	// A second copy supersedes the first reset.
	second := c.Handle(EventCopyPaymentKey)[0].(ScheduleCopyReset)
	c.ResetCopy(reset.Seq)
	if !c.CopyIndicator().Copied {
		t.Error("stale reset lowered the indicator")
	}
	c.ResetCopy(second.Seq)
	if c.CopyIndicator().Active() {
		t.Error("indicator still raised after reset")
	}
	if clip.writes != 2 {
		t.Errorf("clipboard writes = %d, want 2", clip.writes)
	}
}

func TestController_CopyFailure(t *testing.T) {
	tests := []struct {
		name string
		clip Clipboard
	}{
		{"write error", &fakeClipboard{err: errors.New("no display")}},
		{"no clipboard", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestController(tt.clip)
			c.screen = ScreenPayment

			c.Handle(EventCopyPaymentKey)
			ind := c.CopyIndicator()
			if ind.Copied {
				t.Error("Copied = true on failure")
			}
			if !ind.Failed {
				t.Error("Failed = false on failure")
			}
		})
	}
}

func TestController_CopyOnlyOnPayment(t *testing.T) {
	clip := &fakeClipboard{}
	c := newTestController(clip)

	if effects := c.Handle(EventCopyPaymentKey); effects != nil {
		t.Errorf("copy on landing = %#v", effects)
	}
	if clip.writes != 0 {
		t.Error("clipboard written outside payment")
	}
}

func TestController_ProtocolIDOnEntry(t *testing.T) {
	n := 0
	c := NewController(Options{
		NewProtocolID: func() string {
			n++
			return string(rune('0' + n))
		},
	})
	c.screen = ScreenPayment

	f := fetchOf(t, c.Handle(EventTriggerDecorativeConfirm))
	if f.Run != 1 {
		t.Errorf("first run id = %d, want 1", f.Run)
	}
	finishRun(t, c, f.Run, nil)

	if c.ProtocolID() != "1" {
		t.Errorf("ProtocolID() = %q, want 1", c.ProtocolID())
	}
	if c.Snapshot().ProtocolID != "1" {
		t.Errorf("Snapshot().ProtocolID = %q, want 1", c.Snapshot().ProtocolID)
	}

	c.Handle(EventGoBack)
	c.Handle(EventChooseAlreadyPaid)
	finishRun(t, c, c.ActiveRun().ID, nil)
	if c.ProtocolID() != "2" {
		t.Errorf("ProtocolID() = %q after second entry, want 2", c.ProtocolID())
	}
}

func TestController_Close(t *testing.T) {
	c := newTestController(nil)
	c.screen = ScreenPostLoginChoice
	f := fetchOf(t, c.Handle(EventChooseNotPaid))

	c.Close()

	if c.ActiveRun() != nil {
		t.Error("ActiveRun() after Close() should be nil")
	}
	if f.Ctx.Err() == nil {
		t.Error("run context should be cancelled by Close()")
	}
}

// TestController_EndToEnd walks landing through validation.
func TestController_EndToEnd(t *testing.T) {
	clip := &fakeClipboard{}
	c := NewController(Options{Clipboard: clip})

	c.Handle(EventChooseSignup)
	if c.Screen() != ScreenSignup {
		t.Fatalf("Screen() = %s, want signup", c.Screen())
	}

	c.SetEmail("a@b.com")
	c.SetPassword("x")
	f := fetchOf(t, c.Handle(EventSubmitCredentials))
	finishRun(t, c, f.Run, nil)
	if c.Screen() != ScreenPaymentPending {
		t.Fatalf("Screen() = %s, want payment_pending", c.Screen())
	}

	c.Handle(EventGoToPayment)
	if c.Screen() != ScreenPayment {
		t.Fatalf("Screen() = %s, want payment", c.Screen())
	}

	reset := c.Handle(EventCopyPaymentKey)[0].(ScheduleCopyReset)
	if clip.text != DefaultPaymentReference || !c.CopyIndicator().Copied {
		t.Fatalf("copy: clipboard = %q indicator = %+v", clip.text, c.CopyIndicator())
	}
	c.ResetCopy(reset.Seq)
	if c.CopyIndicator().Copied {
		t.Fatal("indicator not lowered")
	}

	f = fetchOf(t, c.Handle(EventTriggerDecorativeConfirm))
	if c.ActiveRun().Progress != 0 || len(c.ActiveRun().Log) != 0 {
		t.Fatal("second run did not start fresh")
	}
	finishRun(t, c, f.Run, lines(10))

	if c.Screen() != ScreenSuccessValidation {
		t.Fatalf("Screen() = %s, want success_validation", c.Screen())
	}
	if len(c.ProtocolID()) != ProtocolIDLength {
		t.Errorf("ProtocolID() = %q, want %d characters", c.ProtocolID(), ProtocolIDLength)
	}
}

func TestNewProtocolID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		id := NewProtocolID()
		if len(id) != ProtocolIDLength {
			t.Fatalf("NewProtocolID() = %q, want %d characters", id, ProtocolIDLength)
		}
		for _, r := range id {
			if !(r >= '0' && r <= '9') && !(r >= 'A' && r <= 'Z') {
				t.Fatalf("NewProtocolID() = %q has invalid character %q", id, r)
			}
		}
		seen[id] = true
	}
	if len(seen) < 45 {
		t.Errorf("only %d distinct ids out of 50", len(seen))
	}
}
