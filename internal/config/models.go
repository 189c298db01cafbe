package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/muurk/uplink/internal/flow"
	"github.com/muurk/uplink/internal/telemetry"
)

// CurrentVersion is the config file format version.
const CurrentVersion = 1

// Config represents the entire user configuration file.
type Config struct {
	Version   int              `yaml:"version"`
	Telemetry *TelemetryConfig `yaml:"telemetry,omitempty"`
	Payment   *PaymentConfig   `yaml:"payment,omitempty"`
}

// TelemetryConfig selects the text-generation provider for the provisioning
// log. API keys are read from the environment only.
type TelemetryConfig struct {
	Provider       string `yaml:"provider"`           // "gemini", "openai" or "none"
	Model          string `yaml:"model,omitempty"`    // Provider model name
	Endpoint       string `yaml:"endpoint,omitempty"` // Base URL (openai) or host:port (gemini)
	Language       string `yaml:"language,omitempty"` // Language of the generated lines
	Theme          string `yaml:"theme,omitempty"`    // Subject of the generated lines
	TimeoutSeconds int    `yaml:"timeout_seconds"`    // Per-call timeout
}

// PaymentConfig holds the strings shown on the payment screens.
type PaymentConfig struct {
	Reference   string `yaml:"reference"`    // Copied verbatim by the copy action
	AmountLabel string `yaml:"amount_label"` // Display only
}

// NewConfig creates a Config with default values.
func NewConfig() *Config {
	return &Config{
		Version: CurrentVersion,
		Telemetry: &TelemetryConfig{
			Provider:       telemetry.ProviderNone,
			Language:       telemetry.DefaultLanguage,
			Theme:          telemetry.DefaultTheme,
			TimeoutSeconds: int(telemetry.DefaultTimeout / time.Second),
		},
		Payment: &PaymentConfig{
			Reference:   flow.DefaultPaymentReference,
			AmountLabel: "DEMO 0,00",
		},
	}
}

// applyDefaults fills sections and fields missing from a loaded file.
func (c *Config) applyDefaults() {
	def := NewConfig()

	if c.Telemetry == nil {
		c.Telemetry = def.Telemetry
	}
	if c.Telemetry.Provider == "" {
		c.Telemetry.Provider = def.Telemetry.Provider
	}
	if c.Telemetry.Language == "" {
		c.Telemetry.Language = def.Telemetry.Language
	}
	if c.Telemetry.Theme == "" {
		c.Telemetry.Theme = def.Telemetry.Theme
	}
	if c.Telemetry.TimeoutSeconds <= 0 {
		c.Telemetry.TimeoutSeconds = def.Telemetry.TimeoutSeconds
	}

	if c.Payment == nil {
		c.Payment = def.Payment
	}
	if c.Payment.Reference == "" {
		c.Payment.Reference = def.Payment.Reference
	}
	if c.Payment.AmountLabel == "" {
		c.Payment.AmountLabel = def.Payment.AmountLabel
	}
}

// Validate checks values that cannot be defaulted.
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return fmt.Errorf("unsupported config version: %d (expected %d)", c.Version, CurrentVersion)
	}
	switch strings.ToLower(c.Telemetry.Provider) {
	case telemetry.ProviderNone, telemetry.ProviderGemini, telemetry.ProviderOpenAI:
	default:
		return fmt.Errorf("invalid telemetry provider %q (expected gemini, openai or none)", c.Telemetry.Provider)
	}
	return nil
}

// ProviderConfig returns the telemetry provider selection.
func (c *Config) ProviderConfig() telemetry.ProviderConfig {
	return telemetry.ProviderConfig{
		Name:     c.Telemetry.Provider,
		Model:    c.Telemetry.Model,
		Endpoint: c.Telemetry.Endpoint,
	}
}

// Timeout returns the provider call timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Telemetry.TimeoutSeconds) * time.Second
}

// NewSource builds the telemetry source described by the config. A provider
// override replaces the configured provider name when non-empty.
func (c *Config) NewSource(providerOverride string) (*telemetry.Source, error) {
	pc := c.ProviderConfig()
	if providerOverride != "" {
		pc.Name = providerOverride
	}

	provider, err := telemetry.NewProvider(pc)
	if err != nil {
		return nil, err
	}

	src := telemetry.NewSource(provider)
	src.Language = c.Telemetry.Language
	src.Theme = c.Telemetry.Theme
	src.Timeout = c.Timeout()
	return src, nil
}
