package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Defaults for the OpenAI-compatible provider.
const (
	DefaultOpenAIBaseURL = "https://api.openai.com/v1"
	DefaultOpenAIModel   = "gpt-4o-mini"
)

// OpenAIProvider calls any OpenAI-compatible /chat/completions endpoint.
type OpenAIProvider struct {
	BaseURL    string
	APIKey     string
	Model      string
	HTTPClient *http.Client
}

var _ Provider = (*OpenAIProvider)(nil)

// NewOpenAIProvider creates a provider. Empty baseURL and model use defaults.
func NewOpenAIProvider(baseURL, apiKey, model string) *OpenAIProvider {
	if baseURL == "" {
		baseURL = DefaultOpenAIBaseURL
	}
	if model == "" {
		model = DefaultOpenAIModel
	}
	return &OpenAIProvider{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		APIKey:     apiKey,
		Model:      model,
		HTTPClient: &http.Client{},
	}
}

// Name implements Provider
func (o *OpenAIProvider) Name() string { return "openai" }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type chatErrorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// GenerateLines implements Provider
func (o *OpenAIProvider) GenerateLines(ctx context.Context, prompt string) ([]string, error) {
	if o.APIKey == "" {
		return nil, newError(o.Name(), ErrTypeConfig, "API key not set", nil)
	}

	body, err := json.Marshal(chatRequest{
		Model:    o.Model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return nil, newError(o.Name(), ErrTypeParse, "failed to encode request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, newError(o.Name(), ErrTypeConfig, "failed to create request", err)
	}
	req.Header.Set("Authorization", "Bearer "+o.APIKey)
	req.Header.Set("Content-Type", "application/json")

	client := o.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, classify(o.Name(), err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, classify(o.Name(), err)
	}

	if resp.StatusCode != http.StatusOK {
		msg := fmt.Sprintf("unexpected status code: %d", resp.StatusCode)
		var errResp chatErrorResponse
		if json.Unmarshal(data, &errResp) == nil && errResp.Error.Message != "" {
			msg = errResp.Error.Message
		}
		return nil, &ProviderError{
			Type:       ErrTypeHTTP,
			Provider:   o.Name(),
			Message:    msg,
			StatusCode: resp.StatusCode,
		}
	}

	var parsed chatResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, newError(o.Name(), ErrTypeParse, "malformed response", err)
	}
	if len(parsed.Choices) == 0 {
		return nil, newError(o.Name(), ErrTypeEmpty, "response has no choices", nil)
	}

	return SplitLines(parsed.Choices[0].Message.Content), nil
}
