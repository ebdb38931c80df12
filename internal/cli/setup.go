package cli

import (
	"fmt"
	"io"

	"rubrica/internal/config"
	"rubrica/internal/llm"
	"rubrica/internal/narrative"
	"rubrica/internal/rubric"
	"rubrica/internal/runner"
	"rubrica/internal/vcs"
)

// evaluatorOptions carries the flags shared by evaluate and batch.
type evaluatorOptions struct {
	RubricPath  string
	LateDays    int
	NoNarrative bool
	Verbose     bool
}

// newEvaluator assembles the evaluation pipeline from the process
// configuration and command flags.
func newEvaluator(cfg config.Config, opts evaluatorOptions, log io.Writer) (*runner.Evaluator, error) {
	r, err := rubric.Load(opts.RubricPath)
	if err != nil {
		return nil, fmt.Errorf("load rubric: %w", err)
	}

	evaluator := &runner.Evaluator{
		Rubric:   r,
		Git:      vcs.NewClient(cfg.GithubToken),
		Timeout:  cfg.Timeout,
		LateDays: opts.LateDays,
	}
	if opts.Verbose {
		evaluator.Log = log
	}

	if cfg.NarrativeConfigured() && !opts.NoNarrative {
		provider, err := llm.New(llm.Settings{
			Provider: cfg.LLMProvider,
			APIKey:   cfg.LLMAPIKey,
			BaseURL:  cfg.LLMBaseURL,
			Model:    cfg.LLMModel,
			Timeout:  cfg.Timeout,
		})
		if err != nil {
			return nil, fmt.Errorf("configure narrative provider: %w", err)
		}
		evaluator.Augmenter = &narrative.Augmenter{
			Provider: provider,
			Retries:  cfg.NarrativeRetries,
		}
	}
	return evaluator, nil
}
