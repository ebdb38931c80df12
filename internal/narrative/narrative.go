// Package narrative enriches a scored evaluation with LLM-generated prose.
// Augmentation is best-effort: provider failures leave the numeric result
// untouched.
package narrative

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"rubrica/internal/llm"
	"rubrica/internal/score"
)

const (
	// maxPromptChars bounds the prompt regardless of rubric size.
	maxPromptChars = 6000

	strongLevel = 6.0
	weakLevel   = 4.0
)

// Augmenter wraps a provider with retry policy.
type Augmenter struct {
	Provider llm.Provider
	// Retries is the number of additional attempts after the first failure.
	Retries     int
	MaxTokens   int
	Temperature float64
}

// Augment generates a narrative for the result. An error only means the
// narrative is unavailable; callers must not fail the evaluation on it.
func (a Augmenter) Augment(ctx context.Context, result score.EvaluationResult) (string, error) {
	if a.Provider == nil {
		return "", fmt.Errorf("no provider configured")
	}
	prompt := BuildPrompt(result)
	opts := llm.Options{MaxTokens: a.MaxTokens, Temperature: a.Temperature}
	if opts.MaxTokens == 0 {
		opts.MaxTokens = 800
	}
	if opts.Temperature == 0 {
		opts.Temperature = 0.3
	}

	var lastErr error
	for attempt := 0; attempt <= a.Retries; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		text, err := a.Provider.GenerateText(ctx, prompt, opts)
		if err == nil {
			return text, nil
		}
		lastErr = err
	}
	return "", lastErr
}

// BuildPrompt summarizes the scored result as strengths and weaknesses for
// the provider to elaborate on. The prompt is bounded in length.
func BuildPrompt(result score.EvaluationResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "A student project was graded %.1f/7.0 (%s) against the rubric %q.\n",
		result.Grade, result.Status(), result.Rubric)

	var strengths, weaknesses []string
	for _, criterion := range result.Criteria {
		line := fmt.Sprintf("%s (level %.0f): %s", criterion.Name, criterion.Level, criterion.Justification)
		switch {
		case criterion.Level >= strongLevel:
			strengths = append(strengths, line)
		case criterion.Level < weakLevel:
			weaknesses = append(weaknesses, line)
		}
	}
	writeSection(&b, "Strengths", strengths)
	writeSection(&b, "Weaknesses", weaknesses)

	if len(result.Adjustments) > 0 {
		b.WriteString("Adjustments applied:\n")
		for _, adjustment := range result.Adjustments {
			fmt.Fprintf(&b, "- %+.1f: %s\n", adjustment.Delta, adjustment.Reason)
		}
	}

	b.WriteString("\nWrite a short narrative (3 paragraphs at most) for the student: ")
	b.WriteString("overall assessment, the most important improvements in priority order, ")
	b.WriteString("and concrete next steps. Do not restate the numeric grade.")

	prompt := b.String()
	if len(prompt) > maxPromptChars {
		cut := maxPromptChars
		// back off to a rune boundary so the cut never splits a character
		for cut > 0 && !utf8.RuneStart(prompt[cut]) {
			cut--
		}
		prompt = prompt[:cut]
	}
	return prompt
}

func writeSection(b *strings.Builder, title string, lines []string) {
	if len(lines) == 0 {
		return
	}
	fmt.Fprintf(b, "%s:\n", title)
	for _, line := range lines {
		fmt.Fprintf(b, "- %s\n", line)
	}
}
