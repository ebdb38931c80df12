package report

import (
	"fmt"
	"strings"

	"rubrica/internal/score"
)

// RenderMarkdown renders the per-student Markdown report.
func RenderMarkdown(result score.EvaluationResult) string {
	var b strings.Builder
	b.WriteString("# Project Evaluation\n\n")
	fmt.Fprintf(&b, "- **Student**: %s\n", result.Student)
	if result.Partner != "" {
		fmt.Fprintf(&b, "- **Partner**: %s\n", result.Partner)
	}
	fmt.Fprintf(&b, "- **Repository**: %s\n", result.Repo.URL)
	if result.Repo.Commit != "" {
		fmt.Fprintf(&b, "- **Commit**: %s\n", result.Repo.Commit)
	}
	fmt.Fprintf(&b, "- **Rubric**: %s\n", result.Rubric)
	fmt.Fprintf(&b, "- **Date**: %s\n\n", result.EvaluatedAt.Format("2006-01-02 15:04"))

	fmt.Fprintf(&b, "## Result\n\n**%.1f / 7.0** (%s)\n\n", result.Grade, result.Status())
	if result.Failure != "" {
		fmt.Fprintf(&b, "> %s\n\n", result.Failure)
	}
	if result.Summary != "" {
		b.WriteString(result.Summary)
		b.WriteString("\n\n")
	}

	b.WriteString("## Criteria\n\n")
	b.WriteString("| Criterion | Weight | Level | Justification |\n")
	b.WriteString("|-----------|--------|-------|---------------|\n")
	for _, criterion := range result.Criteria {
		fmt.Fprintf(&b, "| %s | %.0f%% | %.1f | %s |\n",
			criterion.Name, criterion.Weight*100, criterion.Level, criterion.Justification)
	}
	b.WriteString("\n")

	if len(result.Adjustments) > 0 {
		b.WriteString("## Adjustments\n\n")
		for _, adjustment := range result.Adjustments {
			fmt.Fprintf(&b, "- %+.1f: %s\n", adjustment.Delta, adjustment.Reason)
		}
		b.WriteString("\n")
	}

	writeList(&b, "Strengths", result.Strengths)
	writeList(&b, "Areas for Improvement", result.Improvements)
	writeList(&b, "Recommendations", result.Recommendations)

	if result.Narrative != "" {
		b.WriteString("## Feedback\n\n")
		b.WriteString(result.Narrative)
		b.WriteString("\n")
	}
	return b.String()
}

func writeList(b *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "## %s\n\n", heading)
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
	b.WriteString("\n")
}
