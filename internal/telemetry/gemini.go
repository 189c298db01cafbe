package telemetry

import (
	"context"
	"strings"

	generativelanguage "cloud.google.com/go/ai/generativelanguage/apiv1beta"
	"cloud.google.com/go/ai/generativelanguage/apiv1beta/generativelanguagepb"
	"google.golang.org/api/option"
)

// DefaultGeminiModel is used when no model is configured.
const DefaultGeminiModel = "models/gemini-flash-latest"

// GeminiProvider calls the Google Generative Language API.
type GeminiProvider struct {
	APIKey string
	Model  string

	// Endpoint overrides the API endpoint (host:port). Empty uses the default.
	Endpoint string

	// ClientOptions are appended to the defaults when dialing.
	ClientOptions []option.ClientOption
}

var _ Provider = (*GeminiProvider)(nil)

// NewGeminiProvider creates a provider for model using apiKey.
func NewGeminiProvider(apiKey, model string) *GeminiProvider {
	if model == "" {
		model = DefaultGeminiModel
	}
	return &GeminiProvider{APIKey: apiKey, Model: model}
}

// Name implements Provider
func (g *GeminiProvider) Name() string { return "gemini" }

// GenerateLines implements Provider
func (g *GeminiProvider) GenerateLines(ctx context.Context, prompt string) ([]string, error) {
	if g.APIKey == "" {
		return nil, newError(g.Name(), ErrTypeConfig, "API key not set", nil)
	}

	opts := []option.ClientOption{option.WithAPIKey(g.APIKey)}
	if g.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(g.Endpoint))
	}
	opts = append(opts, g.ClientOptions...)

	client, err := generativelanguage.NewGenerativeClient(ctx, opts...)
	if err != nil {
		return nil, newError(g.Name(), ErrTypeConfig, "failed to create client", err)
	}
	defer func() { _ = client.Close() }()

	model := g.Model
	if !strings.HasPrefix(model, "models/") {
		model = "models/" + model
	}

	resp, err := client.GenerateContent(ctx, &generativelanguagepb.GenerateContentRequest{
		Model: model,
		Contents: []*generativelanguagepb.Content{
			{
				Role: "user",
				Parts: []*generativelanguagepb.Part{
					{
						Data: &generativelanguagepb.Part_Text{
							Text: prompt,
						},
					},
				},
			},
		},
	})
	if err != nil {
		return nil, classify(g.Name(), err)
	}

	return SplitLines(geminiText(resp)), nil
}

// geminiText concatenates the text parts of the first candidate.
func geminiText(resp *generativelanguagepb.GenerateContentResponse) string {
	cands := resp.GetCandidates()
	if len(cands) == 0 {
		return ""
	}
	var b strings.Builder
	for _, part := range cands[0].GetContent().GetParts() {
		b.WriteString(part.GetText())
	}
	return b.String()
}
