// Package logging provides structured logging for uplink.
//
// This package wraps a package-level zap logger with convenience functions.
// Logging is silent by default: nothing is written unless UPLINK_LOG_LEVEL (or
// the --log-level flag) is set.
//
// # Log Levels
//
//   - Debug: Ignored events, stale run results, telemetry attachment
//   - Info: Screen transitions, run start and completion
//   - Warn: Provider failures (fallback used), clipboard failures
//   - Error: Startup failures
//
// # Structured Logging
//
//	logging.Info("Screen transition",
//	    zap.String("from", "landing"),
//	    zap.String("to", "signup"),
//	)
//
// Credentials are never logged. Only the screen, event and run identifiers
// are recorded.
//
// # Terminal UI
//
// The portal owns the terminal. InitializeForTerminalUI only enables output
// when a log file is configured (UPLINK_LOG_FILE or --log-file):
//
//	if err := logging.InitializeForTerminalUI("debug", "/tmp/uplink.log"); err != nil {
//	    return err
//	}
//	defer logging.Sync()
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. Initialize and SetLogger
// must be called before any goroutine logs.
package logging
