package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

const (
	defaultOllamaBaseURL = "http://localhost:11434"
	defaultOllamaModel   = "llama2"
)

// ollamaProvider talks to a local Ollama daemon.
type ollamaProvider struct {
	baseURL string
	model   string
	client  *resty.Client
}

func newOllama(settings Settings, client *resty.Client) *ollamaProvider {
	model := settings.Model
	if strings.TrimSpace(model) == "" {
		model = defaultOllamaModel
	}
	return &ollamaProvider{
		baseURL: baseOrDefault(settings.BaseURL, defaultOllamaBaseURL),
		model:   model,
		client:  client,
	}
}

func (p *ollamaProvider) Name() string { return ProviderOllama }

func (p *ollamaProvider) GenerateText(ctx context.Context, prompt string, opts Options) (string, error) {
	body := map[string]any{
		"model":  p.model,
		"prompt": prompt,
		"stream": false,
		"options": map[string]any{
			"temperature": opts.Temperature,
			"num_predict": opts.MaxTokens,
		},
	}
	resp, err := p.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(p.baseURL + "/api/generate")
	if err != nil {
		return "", fmt.Errorf("ollama: %w", err)
	}
	if resp.IsError() {
		return "", statusError("ollama", resp.StatusCode(), resp.String())
	}
	text := gjson.GetBytes(resp.Body(), "response").String()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("ollama: empty response")
	}
	return strings.TrimSpace(text), nil
}
