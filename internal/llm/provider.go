// Package llm holds the text-generation capability the narrative component
// depends on, with one client per supported provider. Providers are selected
// by configuration at startup and passed explicitly to their consumers.
package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// Provider identifiers accepted in configuration.
const (
	ProviderOllama = "ollama"
	ProviderGitHub = "github"
	ProviderGemini = "gemini"
)

// Options tune a single generation request.
type Options struct {
	MaxTokens   int
	Temperature float64
}

// Provider is the capability the narrative component is polymorphic over.
type Provider interface {
	Name() string
	GenerateText(ctx context.Context, prompt string, opts Options) (string, error)
}

// Settings selects and configures a provider.
type Settings struct {
	Provider string
	APIKey   string
	BaseURL  string
	Model    string
	Timeout  time.Duration
}

// New builds the configured provider. The provider set is closed; anything
// else is a configuration error.
func New(settings Settings) (Provider, error) {
	name := strings.TrimSpace(strings.ToLower(settings.Provider))
	client := resty.New()
	if settings.Timeout > 0 {
		client.SetTimeout(settings.Timeout)
	}
	switch name {
	case ProviderOllama:
		return newOllama(settings, client), nil
	case ProviderGitHub:
		if strings.TrimSpace(settings.APIKey) == "" {
			return nil, fmt.Errorf("provider %q requires an API key", name)
		}
		return newGitHubModels(settings, client), nil
	case ProviderGemini:
		if strings.TrimSpace(settings.APIKey) == "" {
			return nil, fmt.Errorf("provider %q requires an API key", name)
		}
		return newGemini(settings, client), nil
	case "":
		return nil, fmt.Errorf("provider is required")
	default:
		return nil, fmt.Errorf("unsupported provider %q", settings.Provider)
	}
}

func baseOrDefault(base, fallback string) string {
	if strings.TrimSpace(base) == "" {
		return fallback
	}
	return strings.TrimRight(base, "/")
}

func statusError(provider string, status int, body string) error {
	return fmt.Errorf("%s: status %d: %s", provider, status, strings.TrimSpace(body))
}
