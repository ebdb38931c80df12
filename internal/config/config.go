// Package config resolves and validates the process configuration from the
// environment. Configuration problems are fatal before any evaluation runs.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Defaults applied when the environment leaves a knob unset.
const (
	DefaultOutputDir      = "./evaluations"
	DefaultTimeoutSeconds = 300
	DefaultParallelism    = 3
	DefaultRetries        = 1
)

// Config is the resolved process configuration, shared read-only across a
// whole run.
type Config struct {
	GithubToken      string
	LLMProvider      string
	LLMAPIKey        string
	LLMBaseURL       string
	LLMModel         string
	OutputDir        string
	Timeout          time.Duration
	Parallelism      int
	NarrativeRetries int
}

// Load reads .env (when present) and the environment, applies defaults, and
// validates the result.
func Load() (Config, error) {
	// Missing .env is fine; explicit environment always wins.
	_ = godotenv.Load()
	cfg := FromEnv(os.Getenv)
	if err := Validate(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// FromEnv builds a Config from a lookup function, without validating.
func FromEnv(getenv func(string) string) Config {
	cfg := Config{
		GithubToken:      strings.TrimSpace(getenv("GITHUB_TOKEN")),
		LLMProvider:      strings.TrimSpace(getenv("LLM_PROVIDER")),
		LLMAPIKey:        strings.TrimSpace(getenv("LLM_API_KEY")),
		LLMBaseURL:       strings.TrimSpace(getenv("LLM_BASE_URL")),
		LLMModel:         strings.TrimSpace(getenv("LLM_MODEL")),
		OutputDir:        strings.TrimSpace(getenv("RUBRICA_OUTPUT_DIR")),
		Timeout:          DefaultTimeoutSeconds * time.Second,
		Parallelism:      DefaultParallelism,
		NarrativeRetries: DefaultRetries,
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = DefaultOutputDir
	}
	if raw := strings.TrimSpace(getenv("RUBRICA_TIMEOUT_SECONDS")); raw != "" {
		if seconds, err := strconv.Atoi(raw); err == nil {
			cfg.Timeout = time.Duration(seconds) * time.Second
		} else {
			cfg.Timeout = -1 // flagged by Validate
		}
	}
	if raw := strings.TrimSpace(getenv("RUBRICA_PARALLELISM")); raw != "" {
		if parallel, err := strconv.Atoi(raw); err == nil {
			cfg.Parallelism = parallel
		} else {
			cfg.Parallelism = -1
		}
	}
	if raw := strings.TrimSpace(getenv("RUBRICA_NARRATIVE_RETRIES")); raw != "" {
		if retries, err := strconv.Atoi(raw); err == nil {
			cfg.NarrativeRetries = retries
		} else {
			cfg.NarrativeRetries = -1
		}
	}
	return cfg
}

// NarrativeConfigured reports whether narrative augmentation can run with
// this configuration.
func (c Config) NarrativeConfigured() bool {
	return c.LLMProvider != ""
}
