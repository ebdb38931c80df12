package config

import (
	"fmt"
	"strings"
)

// Issue captures a validation problem with a configuration value.
type Issue struct {
	Field   string
	Message string
}

// ValidationError aggregates configuration issues.
type ValidationError struct {
	Issues []Issue
}

// Error renders validation errors as a multi-line string.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return "configuration validation failed"
	}
	lines := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		lines = append(lines, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return strings.Join(lines, "\n")
}

// providers is the closed set of accepted LLM providers.
var providers = map[string]bool{
	"ollama": true,
	"github": true,
	"gemini": true,
}

// Validate checks the configuration for completeness. GITHUB_TOKEN is
// required: evaluations clone from GitHub and anonymous access rate-limits
// a whole class batch. The LLM key is only required for remote providers.
func Validate(cfg *Config) error {
	var issues []Issue
	add := func(field, message string) {
		issues = append(issues, Issue{Field: field, Message: message})
	}

	if cfg.GithubToken == "" {
		add("GITHUB_TOKEN", "is required")
	}
	if cfg.LLMProvider != "" {
		if !providers[strings.ToLower(cfg.LLMProvider)] {
			add("LLM_PROVIDER", fmt.Sprintf("unsupported provider %q (one of: ollama, github, gemini)", cfg.LLMProvider))
		} else if strings.ToLower(cfg.LLMProvider) != "ollama" && cfg.LLMAPIKey == "" {
			add("LLM_API_KEY", fmt.Sprintf("is required for provider %q", cfg.LLMProvider))
		}
	}
	if cfg.OutputDir == "" {
		add("RUBRICA_OUTPUT_DIR", "is required")
	}
	if cfg.Timeout <= 0 {
		add("RUBRICA_TIMEOUT_SECONDS", "must be a positive integer")
	}
	if cfg.Parallelism <= 0 {
		add("RUBRICA_PARALLELISM", "must be a positive integer")
	}
	if cfg.NarrativeRetries < 0 {
		add("RUBRICA_NARRATIVE_RETRIES", "must be zero or a positive integer")
	}

	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}
