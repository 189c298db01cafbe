package logging

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger *zap.Logger

// LogLevelEnvVar is the environment variable that controls logging verbosity.
// When unset or empty, logging is silent (no zap output).
// Valid values: "debug", "info", "warn", "error"
const LogLevelEnvVar = "UPLINK_LOG_LEVEL"

// LogFileEnvVar names the file log output is written to. The interactive
// portal owns the terminal, so it only logs when this is set.
const LogFileEnvVar = "UPLINK_LOG_FILE"

// Initialize creates a new logger with the specified level writing to output.
// If level is empty, it checks UPLINK_LOG_LEVEL. If output is empty, it checks
// UPLINK_LOG_FILE and then falls back to stderr.
// If no level is set, logging is disabled (silent mode).
func Initialize(level, output string) error {
	if level == "" {
		level = os.Getenv(LogLevelEnvVar)
	}
	if output == "" {
		output = os.Getenv(LogFileEnvVar)
	}
	if output == "" {
		output = "stderr"
	}

	if level == "" {
		logger = zap.NewNop()
		return nil
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(ParseLevel(level)),
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{output},
		ErrorOutputPaths: []string{"stderr"},
	}

	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	if output == "stderr" || output == "stdout" {
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		// No ANSI escapes in files
		config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	var err error
	logger, err = config.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	return nil
}

// InitializeForTerminalUI initializes logging for the full-screen portal.
// Log output to stdout/stderr would corrupt the screen, so unless a file is
// configured the logger stays silent regardless of level.
func InitializeForTerminalUI(level, file string) error {
	if file == "" {
		file = os.Getenv(LogFileEnvVar)
	}
	if file == "" || file == "stdout" || file == "stderr" {
		logger = zap.NewNop()
		return nil
	}
	return Initialize(level, file)
}

// ParseLevel maps a level name to a zap level. Unknown names map to info.
func ParseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// SetLogger replaces the global logger. Tests use it with zaptest/observer.
func SetLogger(l *zap.Logger) {
	logger = l
}

// GetLogger returns the global logger instance
func GetLogger() *zap.Logger {
	if logger == nil {
		// Silent until initialized
		logger = zap.NewNop()
	}
	return logger
}

// Info logs an info message
func Info(msg string, fields ...zap.Field) {
	GetLogger().Info(msg, fields...)
}

// Debug logs a debug message
func Debug(msg string, fields ...zap.Field) {
	GetLogger().Debug(msg, fields...)
}

// Warn logs a warning message
func Warn(msg string, fields ...zap.Field) {
	GetLogger().Warn(msg, fields...)
}

// Error logs an error message
func Error(msg string, fields ...zap.Field) {
	GetLogger().Error(msg, fields...)
}

// LogTransition logs a screen change
func LogTransition(from, to, cause string) {
	Info("Screen transition",
		zap.String("from", from),
		zap.String("to", to),
		zap.String("cause", cause),
	)
}

// LogRunStarted logs the start of a provisioning run
func LogRunStarted(run uint64, target string) {
	Info("Provisioning run started",
		zap.Uint64("run", run),
		zap.String("target", target),
	)
}

// LogRunCompleted logs the end of a provisioning run
func LogRunCompleted(run uint64, target string, logLines int) {
	Info("Provisioning run completed",
		zap.Uint64("run", run),
		zap.String("target", target),
		zap.Int("log_lines", logLines),
	)
}

// LogTelemetryFallback logs why the fallback telemetry lines were used
func LogTelemetryFallback(provider string, err error) {
	Warn("Telemetry provider failed, using fallback lines",
		zap.String("provider", provider),
		zap.Error(err),
	)
}

// Sync flushes any buffered log entries
func Sync() {
	if logger != nil {
		_ = logger.Sync()
	}
}
