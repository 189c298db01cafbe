// Package config provides user configuration management for the uplink portal.
//
// The configuration is a small YAML file selecting the telemetry provider and
// the strings shown on the payment screens. A missing file is not an error:
// Load returns the defaults, which use no provider and therefore always show
// the fallback telemetry lines.
//
// # Configuration File Location
//
// The configuration file is stored in platform-appropriate locations:
//   - Linux: $XDG_CONFIG_HOME/uplink/config.yaml or $HOME/.config/uplink/config.yaml
//   - macOS: $HOME/.config/uplink/config.yaml
//   - Windows: %LOCALAPPDATA%\uplink\config.yaml
//
// # Security
//
// IMPORTANT: This package NEVER stores API keys. Providers read them from the
// environment (GEMINI_API_KEY, GOOGLE_API_KEY, OPENAI_API_KEY).
//
// # Usage Example
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	src, err := cfg.NewSource("")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Thread Safety
//
// File writes are protected by a mutex and performed atomically (temporary
// file plus rename).
package config
