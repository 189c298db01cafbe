package flow

import (
	"context"
	"sort"
	"time"
)

// Fetcher supplies the telemetry lines for one run. *telemetry.Source
// implements it.
type Fetcher interface {
	Fetch(ctx context.Context) []string
}

// Driver executes a Controller's effects without a terminal. Effects run
// sequentially in the order they were requested, so a Driver is only suited
// to scripted event sequences.
type Driver struct {
	Controller *Controller
	Fetcher    Fetcher

	// Sleep waits for d or until ctx is done. Defaults to a real timer.
	Sleep func(ctx context.Context, d time.Duration) error

	// OnTick is called after every tick that advanced run.
	OnTick func(run *Run)

	// OnCheckpoint is called when a tick appended a log line. index is the
	// line's position in run.Log.
	OnCheckpoint func(run *Run, index int)
}

// Dispatch applies event and executes the resulting effects until none are
// left. It returns ctx.Err() if ctx ends first.
func (d *Driver) Dispatch(ctx context.Context, event Event) error {
	return d.Drain(ctx, d.Controller.Handle(event))
}

// Drain executes effects and everything they lead to.
func (d *Driver) Drain(ctx context.Context, effects []Effect) error {
	queue := append([]Effect(nil), effects...)

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}

		e := queue[0]
		queue = queue[1:]

		var next []Effect
		switch e := e.(type) {
		case FetchTelemetry:
			var lines []string
			if d.Fetcher != nil {
				lines = d.Fetcher.Fetch(e.Ctx)
			}
			next = d.Controller.TelemetryReady(e.Run, lines)

		case ScheduleTick:
			if err := d.sleep(ctx, e.After); err != nil {
				return err
			}
			next = d.tick(e.Run)

		case ScheduleSettle:
			if err := d.sleep(ctx, e.After); err != nil {
				return err
			}
			next = d.Controller.Settle(e.Run)

		case ScheduleCopyReset:
			if err := d.sleep(ctx, e.After); err != nil {
				return err
			}
			d.Controller.ResetCopy(e.Seq)
		}

		queue = append(queue, next...)
	}
	return nil
}

func (d *Driver) tick(id RunID) []Effect {
	run := d.Controller.current(id)
	before, progress := 0, 0
	if run != nil {
		before, progress = len(run.Log), run.Progress
	}

	effects := d.Controller.Tick(id)

	if run == nil || run.Progress == progress {
		return effects
	}
	if d.OnTick != nil {
		d.OnTick(run)
	}
	if d.OnCheckpoint != nil {
		for i := before; i < len(run.Log); i++ {
			d.OnCheckpoint(run, i)
		}
	}
	return effects
}

func (d *Driver) sleep(ctx context.Context, after time.Duration) error {
	if d.Sleep != nil {
		return d.Sleep(ctx, after)
	}
	return Sleep(ctx, after)
}

// Sleep waits for d or until ctx is done.
func Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Scenarios are scripted event sequences for headless runs, keyed by name.
// Each assumes credentials were already set.
var Scenarios = map[string][]Event{
	"signup":  {EventChooseSignup, EventSubmitCredentials},
	"paid":    {EventChooseLogin, EventSubmitCredentials, EventChooseAlreadyPaid},
	"unpaid":  {EventChooseLogin, EventSubmitCredentials, EventChooseNotPaid, EventGoToPayment},
	"payment": {EventChooseLogin, EventSubmitCredentials, EventChooseNotPaid, EventGoToPayment, EventCopyPaymentKey, EventTriggerDecorativeConfirm},
}

// ScenarioNames returns the keys of Scenarios in a stable order.
func ScenarioNames() []string {
	names := make([]string, 0, len(Scenarios))
	for name := range Scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
