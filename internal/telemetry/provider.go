package telemetry

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// Provider names accepted by NewProvider.
const (
	ProviderNone   = "none"
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// API key environment variables. Keys are never read from the config file.
const (
	GoogleAPIKeyEnvVar = "GOOGLE_API_KEY"
	GeminiAPIKeyEnvVar = "GEMINI_API_KEY"
	OpenAIAPIKeyEnvVar = "OPENAI_API_KEY"
)

// ProviderConfig selects and configures a provider.
type ProviderConfig struct {
	Name     string
	Model    string
	Endpoint string
}

// NewProvider builds the provider named in cfg, reading its API key from the
// environment. "none" returns a nil provider, which a Source treats as
// "always use the fallback".
func NewProvider(cfg ProviderConfig) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Name)) {
	case "", ProviderNone:
		return nil, nil

	case ProviderGemini:
		key := os.Getenv(GeminiAPIKeyEnvVar)
		if key == "" {
			key = os.Getenv(GoogleAPIKeyEnvVar)
		}
		p := NewGeminiProvider(key, cfg.Model)
		p.Endpoint = cfg.Endpoint
		return p, nil

	case ProviderOpenAI:
		return NewOpenAIProvider(cfg.Endpoint, os.Getenv(OpenAIAPIKeyEnvVar), cfg.Model), nil

	default:
		return nil, fmt.Errorf("unknown telemetry provider %q (expected gemini, openai or none)", cfg.Name)
	}
}

// StaticProvider returns fixed lines or a fixed error. It is used for offline
// runs and in tests.
type StaticProvider struct {
	Lines []string
	Err   error
}

var _ Provider = StaticProvider{}

// Name implements Provider
func (StaticProvider) Name() string { return "static" }

// GenerateLines implements Provider
func (s StaticProvider) GenerateLines(ctx context.Context, prompt string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.Err != nil {
		return nil, s.Err
	}
	return append([]string(nil), s.Lines...), nil
}
