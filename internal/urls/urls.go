package urls

// Provider pages referenced from troubleshooting output.

// GeminiAPIKeys is where a Gemini API key (GEMINI_API_KEY) is created.
const GeminiAPIKeys = "https://aistudio.google.com/app/apikey"

// GeminiModels lists model names accepted in telemetry.model.
const GeminiModels = "https://ai.google.dev/gemini-api/docs/models"

// OpenAIAPIKeys is where an OpenAI API key (OPENAI_API_KEY) is created.
const OpenAIAPIKeys = "https://platform.openai.com/api-keys"

// OpenAIChatCompletions documents the endpoint an openai-compatible
// telemetry.endpoint must serve.
const OpenAIChatCompletions = "https://platform.openai.com/docs/api-reference/chat"

// ForProvider returns the key and reference pages for a provider name, or
// nil for providers without external pages.
func ForProvider(name string) []string {
	switch name {
	case "gemini":
		return []string{GeminiAPIKeys, GeminiModels}
	case "openai":
		return []string{OpenAIAPIKeys, OpenAIChatCompletions}
	}
	return nil
}
