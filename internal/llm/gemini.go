package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

const (
	defaultGeminiBaseURL = "https://generativelanguage.googleapis.com"
	defaultGeminiModel   = "gemini-pro"
)

// geminiProvider talks to the Google Generative Language API.
type geminiProvider struct {
	baseURL string
	apiKey  string
	model   string
	client  *resty.Client
}

func newGemini(settings Settings, client *resty.Client) *geminiProvider {
	model := settings.Model
	if strings.TrimSpace(model) == "" {
		model = defaultGeminiModel
	}
	return &geminiProvider{
		baseURL: baseOrDefault(settings.BaseURL, defaultGeminiBaseURL),
		apiKey:  settings.APIKey,
		model:   model,
		client:  client,
	}
}

func (p *geminiProvider) Name() string { return ProviderGemini }

func (p *geminiProvider) GenerateText(ctx context.Context, prompt string, opts Options) (string, error) {
	body := map[string]any{
		"contents": []map[string]any{
			{"parts": []map[string]string{{"text": prompt}}},
		},
		"generationConfig": map[string]any{
			"temperature": opts.Temperature,
		},
	}
	if opts.MaxTokens > 0 {
		body["generationConfig"].(map[string]any)["maxOutputTokens"] = opts.MaxTokens
	}
	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent", p.baseURL, p.model)
	resp, err := p.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetQueryParam("key", p.apiKey).
		SetBody(body).
		Post(endpoint)
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	if resp.IsError() {
		return "", statusError("gemini", resp.StatusCode(), resp.String())
	}
	text := gjson.GetBytes(resp.Body(), "candidates.0.content.parts.0.text").String()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("gemini: empty candidate")
	}
	return strings.TrimSpace(text), nil
}
