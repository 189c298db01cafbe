// Package flow implements the screen-flow controller for the uplink portal.
//
// The package is UI-agnostic: it knows nothing about Bubble Tea, terminals or
// rendering. It owns three things:
//
//   - The transition table (Next) mapping a Screen and an Event to an Outcome.
//   - The provisioning Run, a fixed-cadence progress simulator that appends
//     telemetry lines to a log at checkpoint steps.
//   - The Controller, which holds the current Screen, the credential input,
//     the active Run and the clipboard copy indicator.
//
// # Effects
//
// The Controller never sleeps, spawns goroutines or performs I/O other than
// the clipboard write. Anything asynchronous is returned as an Effect:
//
//	effects := ctrl.Handle(flow.EventSubmitCredentials)
//	for _, e := range effects {
//	    switch e := e.(type) {
//	    case flow.FetchTelemetry:
//	        // fetch lines, then call ctrl.TelemetryReady(e.Run, lines)
//	    case flow.ScheduleTick:
//	        // after e.After, call ctrl.Tick(e.Run)
//	    }
//	}
//
// Every asynchronous callback is tagged with the RunID (or copy sequence
// number) it was issued for. Callbacks for a superseded run are dropped, so a
// slow telemetry fetch or a stray timer from an earlier run can never touch
// the current run's progress or log.
//
// # Thread Safety
//
// A Controller must be driven from a single goroutine. The Bubble Tea update
// loop satisfies this.
package flow
