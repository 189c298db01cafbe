// Package ui provides terminal output components for the uplink CLI.
//
// These components use Lipgloss (and the Bubbles progress bar) to render
// styled output for the non-interactive commands. Unlike the interactive
// portal, they follow a "run once and exit" pattern.
//
// # Architecture
//
// The package provides these component types:
//
//   - Header: Command banner showing operation name and parameters
//   - Progress: Progress bar with a checkpoint list
//   - Result: Success/failure/warning boxes with details
//   - LogBox: Numbered telemetry lines
//
// Runner orchestrates the header → progress → result flow for simulated
// runs. Printer covers commands that only print boxes.
//
// # Usage Pattern
//
//	runner := ui.NewRunner(ui.RunnerConfig{
//	    Title:      "Provisioning Simulation",
//	    Command:    "uplink simulate --scenario paid",
//	    Params:     []ui.Detail{{Key: "Provider", Value: "none"}},
//	    TotalSteps: 8,
//	    Live:       ui.IsTerminal(),
//	})
//
//	details, err := runner.RunWithResult(ctx, func(onStep ui.StepCallback, onPercent ui.PercentCallback) ([]ui.Detail, error) {
//	    onPercent(0.12)
//	    onStep(1, "BOOT: secure channel", ui.StepComplete, "12%")
//	    return nil, nil
//	})
//
// # Logging Integration
//
// Logging is controlled via the UPLINK_LOG_LEVEL environment variable. When
// unset, zap logging is silent so the curated output is displayed cleanly.
package ui
