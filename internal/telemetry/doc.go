// Package telemetry supplies the decorative log lines shown while a
// provisioning run is in progress.
//
// A Source asks a Provider (a text-generation API) for ten short
// technical-sounding lines. The call is best effort: on any failure, or when
// the response contains no usable lines, Source.Fetch returns the six
// FallbackLines in their fixed order. Fetch never returns an error and never
// retries.
//
// # Providers
//
//   - GeminiProvider: Google Generative Language API (GEMINI_API_KEY or GOOGLE_API_KEY)
//   - OpenAIProvider: any OpenAI-compatible /chat/completions endpoint (OPENAI_API_KEY)
//   - StaticProvider: fixed lines or a fixed error, for offline use and tests
//
// Provider failures are reported as *ProviderError with an ErrorType so the
// CLI can explain why the fallback was used:
//
//	lines, err := source.FetchDetailed(ctx)
//	if telemetry.IsType(err, telemetry.ErrTypeConfig) {
//	    fmt.Println("no API key; showing fallback lines")
//	}
package telemetry
