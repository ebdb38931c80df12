package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

const (
	defaultGitHubBaseURL = "https://models.inference.ai.azure.com"
	defaultGitHubModel   = "gpt-4o-mini"
)

// githubProvider talks to the OpenAI-compatible GitHub Models endpoint.
type githubProvider struct {
	baseURL string
	apiKey  string
	model   string
	client  *resty.Client
}

func newGitHubModels(settings Settings, client *resty.Client) *githubProvider {
	model := settings.Model
	if strings.TrimSpace(model) == "" {
		model = defaultGitHubModel
	}
	return &githubProvider{
		baseURL: baseOrDefault(settings.BaseURL, defaultGitHubBaseURL),
		apiKey:  settings.APIKey,
		model:   model,
		client:  client,
	}
}

func (p *githubProvider) Name() string { return ProviderGitHub }

func (p *githubProvider) GenerateText(ctx context.Context, prompt string, opts Options) (string, error) {
	body := map[string]any{
		"model": p.model,
		"messages": []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": prompt},
		},
		"temperature": opts.Temperature,
	}
	if opts.MaxTokens > 0 {
		body["max_tokens"] = opts.MaxTokens
	}
	resp, err := p.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetAuthToken(p.apiKey).
		SetBody(body).
		Post(p.baseURL + "/chat/completions")
	if err != nil {
		return "", fmt.Errorf("github models: %w", err)
	}
	if resp.IsError() {
		return "", statusError("github models", resp.StatusCode(), resp.String())
	}
	text := gjson.GetBytes(resp.Body(), "choices.0.message.content").String()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("github models: empty completion")
	}
	return strings.TrimSpace(text), nil
}

// systemPrompt frames every narrative request the same way regardless of
// provider, for consistent grading language.
const systemPrompt = "You are an expert evaluator of machine-learning projects " +
	"built with Kedro. You give objective, evidence-based feedback and always " +
	"justify your observations with concrete findings from the project."
