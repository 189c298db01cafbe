package telemetry

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/muurk/uplink/internal/logging"
)

// RequestedLines is how many lines the prompt asks for, and the most a Source
// will ever return.
const RequestedLines = 10

// DefaultTimeout bounds a single provider call.
const DefaultTimeout = 8 * time.Second

// Defaults for the prompt.
const (
	DefaultLanguage = "Portuguese"
	DefaultTheme    = "Satellite Uplink Connection Handshake"
)

// FallbackLines are returned whenever the provider fails or produces nothing
// usable. Order is significant.
var FallbackLines = []string{
	"Sincronizando matriz de fase orbital...",
	"Autenticando gateway terrestre...",
	"Otimizando latência de feixe...",
	"Criptografando túnel fim-a-fim...",
	"Validando assinatura digital do terminal...",
	"Provisionando credenciais de acesso...",
}

// Provider generates raw telemetry lines from a prompt.
type Provider interface {
	// Name identifies the provider in logs and errors.
	Name() string
	// GenerateLines returns the non-empty lines of the model output.
	// Failures are returned as *ProviderError.
	GenerateLines(ctx context.Context, prompt string) ([]string, error)
}

// Source supplies the telemetry lines for a provisioning run. It never fails:
// any provider error yields a copy of FallbackLines.
type Source struct {
	Provider Provider
	Language string
	Theme    string
	Timeout  time.Duration
}

// NewSource creates a Source with default prompt settings. A nil provider
// always yields the fallback lines.
func NewSource(p Provider) *Source {
	return &Source{
		Provider: p,
		Language: DefaultLanguage,
		Theme:    DefaultTheme,
		Timeout:  DefaultTimeout,
	}
}

// Prompt returns the fixed prompt sent to the provider.
func (s *Source) Prompt() string {
	language := s.Language
	if language == "" {
		language = DefaultLanguage
	}
	theme := s.Theme
	if theme == "" {
		theme = DefaultTheme
	}
	return fmt.Sprintf(
		"Generate %d technical-sounding one-line logs for a '%s' in %s. Return only the lines.",
		RequestedLines, theme, language,
	)
}

// Fetch returns the lines for one run. It blocks until the provider answers,
// the timeout elapses or ctx is done.
func (s *Source) Fetch(ctx context.Context) []string {
	lines, err := s.fetch(ctx)
	if err != nil {
		if IsType(err, ErrTypeCanceled) {
			// Superseded run; the caller discards the result.
			logging.Debug("Telemetry fetch canceled")
			return Fallback()
		}
		name := "none"
		if s.Provider != nil {
			name = s.Provider.Name()
		}
		logging.LogTelemetryFallback(name, err)
		return Fallback()
	}
	return lines
}

// FetchDetailed is Fetch that also reports whether the fallback was used and
// why. The CLI uses it to explain the result.
func (s *Source) FetchDetailed(ctx context.Context) ([]string, error) {
	lines, err := s.fetch(ctx)
	if err != nil {
		return Fallback(), err
	}
	return lines, nil
}

func (s *Source) fetch(ctx context.Context) ([]string, error) {
	if s.Provider == nil {
		return nil, newError("none", ErrTypeConfig, "no provider configured", nil)
	}

	timeout := s.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	raw, err := s.Provider.GenerateLines(ctx, s.Prompt())
	if err != nil {
		return nil, classify(s.Provider.Name(), err)
	}

	lines := CleanLines(raw)
	if len(lines) == 0 {
		return nil, newError(s.Provider.Name(), ErrTypeEmpty, "no usable lines in response", nil)
	}
	return lines, nil
}

// Fallback returns a fresh copy of FallbackLines.
func Fallback() []string {
	return append([]string(nil), FallbackLines...)
}

var listMarker = regexp.MustCompile(`^(?:[-*•]\s+|\d+[.)]\s+)`)

// SplitLines splits model output on newlines and drops blank lines.
func SplitLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(strings.TrimRight(line, "\r"))
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

// CleanLines trims each line, strips list markers and code fences, drops empty
// lines and caps the result at RequestedLines.
func CleanLines(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "```") {
			continue
		}
		line = strings.TrimSpace(listMarker.ReplaceAllString(line, ""))
		if line == "" {
			continue
		}
		out = append(out, line)
		if len(out) == RequestedLines {
			break
		}
	}
	return out
}
