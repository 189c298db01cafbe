package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/uplink/internal/config"
	"github.com/muurk/uplink/internal/flow"
	"github.com/muurk/uplink/internal/logging"
	"github.com/muurk/uplink/internal/portal/tui"
	"github.com/muurk/uplink/internal/telemetry"
	"github.com/muurk/uplink/internal/ui"
	"github.com/muurk/uplink/internal/urls"
)

// Command flags
var (
	startScreen  string
	scenarioName string
	instant      bool
	forceInit    bool
)

// Demo credentials for scripted runs. They only satisfy the presence check.
const (
	demoEmail    = "demo@example.invalid"
	demoPassword = "demo"
)

func init() {
	rootCmd.AddCommand(portalCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(telemetryCmd)
	rootCmd.AddCommand(configCmd)
}

// portalCmd launches the interactive portal
var portalCmd = &cobra.Command{
	Use:   "portal",
	Short: "Launch the interactive portal",
	Long: `Launch the full-screen portal.

Keys:
  ↑/↓ or j/k   move between menu entries
  enter        select or submit
  tab          switch form field
  y or c       copy the payment reference (payment screen)
  s            confirm via satellite (payment screen)
  esc          back (quits on the landing screen)
  q, ctrl+c    quit (q is typed as text inside the form)

Logging inside the portal requires --log-file, since output on the
terminal would corrupt the screen.`,
	Example: `  # Launch the portal (default command)
  uplink

  # Open directly on the login form
  uplink portal --start login

  # Use Gemini for telemetry lines
  GEMINI_API_KEY=... uplink portal --provider gemini

  # Debug log to a file
  uplink portal --log-level debug --log-file /tmp/uplink.log`,
	RunE: runPortal,
}

func init() {
	portalCmd.Flags().StringVar(&startScreen, "start", "", "Start screen (landing, signup, login)")
}

func runPortal(cmd *cobra.Command, args []string) error {
	if err := logging.InitializeForTerminalUI(logLevel, logFile); err != nil {
		return err
	}
	defer logging.Sync()

	start, err := parseStartScreen(startScreen)
	if err != nil {
		return err
	}

	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	source, err := cfg.NewSource(providerName)
	if err != nil {
		return err
	}

	model := tui.NewAppModel(tui.Options{
		Source:           source,
		PaymentReference: cfg.Payment.Reference,
		AmountLabel:      cfg.Payment.AmountLabel,
		Start:            start,
	})

	logging.Info("Portal starting",
		zap.String("start", string(start)),
		zap.String("provider", cfg.ProviderConfig().Name),
	)

	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if m, ok := final.(tui.AppModel); ok {
		m.Controller.Close()
	}
	if err != nil {
		return fmt.Errorf("portal error: %w", err)
	}
	return nil
}

// parseStartScreen accepts the screens reachable without a run.
func parseStartScreen(name string) (flow.Screen, error) {
	if name == "" {
		return flow.ScreenLanding, nil
	}
	s, err := flow.ParseScreen(name)
	if err != nil {
		return "", err
	}
	switch s {
	case flow.ScreenLanding, flow.ScreenSignup, flow.ScreenLogin:
		return s, nil
	}
	return "", fmt.Errorf("cannot start on %q (expected landing, signup or login)", name)
}

// simulateCmd drives a scripted flow without a terminal UI
var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a scripted flow headlessly",
	Long: `Drive the portal flow with a scripted event sequence and print each
telemetry checkpoint as it is reached.

Scenarios:
  signup    create account → provisioning → payment pending
  paid      login → "already paid" → provisioning → validation
  unpaid    login → "not paid" → provisioning → payment pending → payment
  payment   unpaid, then copy the reference and confirm → validation

The copy action in scripted runs writes to an in-memory clipboard.`,
	Example: `  # Login flow ending on the validation screen
  uplink simulate --scenario paid

  # Skip the animation delays
  uplink simulate --scenario payment --instant`,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().StringVar(&scenarioName, "scenario", "paid", "Scenario ("+strings.Join(flow.ScenarioNames(), ", ")+")")
	simulateCmd.Flags().BoolVar(&instant, "instant", false, "Skip timer delays")
}

// memoryClipboard keeps the last copied text for the result box.
type memoryClipboard struct {
	text string
}

func (c *memoryClipboard) WriteAll(text string) error {
	c.text = text
	return nil
}

func runSimulate(cmd *cobra.Command, args []string) error {
	if err := logging.Initialize(logLevel, logFile); err != nil {
		return err
	}
	defer logging.Sync()

	events, ok := flow.Scenarios[scenarioName]
	if !ok {
		return fmt.Errorf("unknown scenario %q (expected %s)", scenarioName, strings.Join(flow.ScenarioNames(), ", "))
	}

	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	source, err := cfg.NewSource(providerName)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt)
	defer stop()

	clip := &memoryClipboard{}
	ctrl := flow.NewController(flow.Options{
		Clipboard:        clip,
		PaymentReference: cfg.Payment.Reference,
		Context:          ctx,
	})
	defer ctrl.Close()
	ctrl.SetEmail(demoEmail)
	ctrl.SetPassword(demoPassword)

	runs := plannedRuns(events)
	runner := ui.NewRunner(ui.RunnerConfig{
		Title:   "Provisioning Simulation",
		Command: "uplink simulate --scenario " + scenarioName,
		Params: []ui.Detail{
			{Key: "Provider", Value: cfg.ProviderConfig().Name},
			{Key: "Runs", Value: fmt.Sprintf("%d", runs)},
			{Key: "Amount", Value: cfg.Payment.AmountLabel},
		},
		TotalSteps: runs * (flow.MaxProgress / flow.CheckpointStep),
		Live:       ui.IsTerminal(),
		Output:     cmd.OutOrStdout(),
		Troubleshooting: []string{
			"Check the config file with: uplink config show",
			"Try offline telemetry with: --provider none",
			"Run with --log-level debug for details",
		},
	})

	_, err = runner.RunWithResult(ctx, func(onStep ui.StepCallback, onPercent ui.PercentCallback) ([]ui.Detail, error) {
		step := 0
		driver := &flow.Driver{
			Controller: ctrl,
			Fetcher:    source,
			OnTick: func(run *flow.Run) {
				onPercent(float64(run.Progress) / flow.MaxProgress)
			},
			OnCheckpoint: func(run *flow.Run, index int) {
				step++
				onStep(step, run.Log[index], ui.StepComplete, fmt.Sprintf("run %d · %d%%", run.ID, run.Progress))
			},
		}
		if instant {
			driver.Sleep = func(ctx context.Context, _ time.Duration) error { return ctx.Err() }
		}

		for _, e := range events {
			if err := driver.Dispatch(ctx, e); err != nil {
				return simulationDetails(ctrl, clip), err
			}
		}
		return simulationDetails(ctrl, clip), nil
	})
	return err
}

// plannedRuns counts the provisioning runs events will start from landing.
func plannedRuns(events []flow.Event) int {
	screen, runs := flow.ScreenLanding, 0
	for _, e := range events {
		out := flow.Next(screen, e)
		switch out.Kind {
		case flow.OutcomeProvision:
			runs++
			screen = out.Screen
		case flow.OutcomeGoto:
			screen = out.Screen
		}
	}
	return runs
}

func simulationDetails(ctrl *flow.Controller, clip *memoryClipboard) []ui.Detail {
	details := []ui.Detail{{Key: "Final screen", Value: string(ctrl.Screen())}}
	if clip.text != "" {
		details = append(details, ui.Detail{Key: "Copied", Value: clip.text})
	}
	if id := ctrl.ProtocolID(); id != "" && ctrl.Screen() == flow.ScreenSuccessValidation {
		details = append(details, ui.Detail{Key: "Protocol", Value: id})
	}
	return details
}

// telemetryCmd fetches one set of telemetry lines
var telemetryCmd = &cobra.Command{
	Use:   "telemetry",
	Short: "Fetch and print one set of telemetry lines",
	Long: `Ask the configured provider for telemetry lines and print them.

If the provider is not configured or the call fails, the fallback lines
are printed with the reason. API keys are read from GEMINI_API_KEY
(or GOOGLE_API_KEY) and OPENAI_API_KEY.`,
	Example: `  # Use the configured provider
  uplink telemetry

  # Try Gemini
  GEMINI_API_KEY=... uplink telemetry --provider gemini`,
	RunE: runTelemetry,
}

func runTelemetry(cmd *cobra.Command, args []string) error {
	if err := logging.Initialize(logLevel, logFile); err != nil {
		return err
	}
	defer logging.Sync()

	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	source, err := cfg.NewSource(providerName)
	if err != nil {
		return err
	}

	name := telemetry.ProviderNone
	if source.Provider != nil {
		name = source.Provider.Name()
	}

	printer := ui.NewPrinter(cmd.OutOrStdout())
	printer.PrintHeader("Telemetry", "uplink telemetry", []ui.Detail{
		{Key: "Provider", Value: name},
		{Key: "Timeout", Value: source.Timeout.String()},
		{Key: "Prompt", Value: source.Prompt()},
	})
	if source.Provider != nil {
		printer.PrintPleaseWait("Waiting for "+name, "up to "+source.Timeout.String())
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt)
	defer stop()

	lines, err := source.FetchDetailed(ctx)
	printer.PrintLog(fmt.Sprintf("Telemetry (%d lines)", len(lines)), lines)
	printer.Newline()

	if err != nil {
		details := []ui.Detail{{Key: "Reason", Value: reason(err)}}
		for _, u := range urls.ForProvider(name) {
			details = append(details, ui.Detail{Key: "See", Value: u})
		}
		printer.PrintWarning("Fallback lines used", details, err)
		return nil
	}
	printer.PrintSuccess("Telemetry received", []ui.Detail{{Key: "Lines", Value: fmt.Sprintf("%d", len(lines))}})
	return nil
}

// reason names the fallback cause for display.
func reason(err error) string {
	var pe *telemetry.ProviderError
	if errors.As(err, &pe) {
		return pe.Type.String()
	}
	return "unknown"
}

// configCmd manages the config file
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Example: `  uplink config init
  uplink config init --force
  uplink config init --config ./uplink.yaml`,
	RunE: runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, path, err := loadConfig()
		if err != nil {
			return err
		}
		data, err := config.Marshal(cfg, path)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := configFilePath()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&forceInit, "force", false, "Overwrite an existing file without asking")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path, err := configFilePath()
	if err != nil {
		return err
	}

	err = config.CreateDefaultConfig(path, forceInit)
	if errors.Is(err, config.ErrConfigExists) && ui.IsTerminal() {
		if !ui.ConfirmOverwrite(cmd.InOrStdin(), cmd.OutOrStdout(), path) {
			return nil
		}
		err = config.CreateDefaultConfig(path, true)
	}
	if err != nil {
		return err
	}

	ui.NewPrinter(cmd.OutOrStdout()).PrintSuccess("Configuration written", []ui.Detail{
		{Key: "Path", Value: path},
		{Key: "Provider", Value: telemetry.ProviderNone},
	})
	return nil
}

// commandContext returns the command's context, or Background when cobra
// was executed without one.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
