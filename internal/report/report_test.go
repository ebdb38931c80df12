package report

import (
	"strings"
	"testing"
	"time"

	"rubrica/internal/score"
)

func sampleResult() score.EvaluationResult {
	return score.EvaluationResult{
		Student: "Ada Lovelace",
		Partner: "Grace Hopper",
		Repo:    score.RepoInfo{URL: "https://github.com/org/repo", Commit: "abc123"},
		Rubric:  "Kedro ML Project Evaluation",
		Grade:   5.3,
		Passed:  true,
		Criteria: []score.CriterionResult{
			{Name: "Project Structure", Weight: 0.10, Level: 7.0, Justification: "full layout"},
			{Name: "Data Catalog", Weight: 0.10, Level: 4.0, Justification: "one dataset short"},
		},
		Adjustments:     []score.Adjustment{{Reason: "unit tests present", Delta: 0.5}},
		Strengths:       []string{"Project Structure: full layout"},
		Improvements:    []string{"EDA Notebook: notebook missing"},
		Recommendations: []string{"Add a data-understanding notebook covering univariate and bivariate analysis"},
		Summary:         "Project graded 5.3/7.0. Performance level: good. PASSED.",
		Narrative:       "Strong structure; expand the catalog next.",
		EvaluatedAt:     time.Date(2026, 8, 15, 10, 30, 0, 0, time.UTC),
	}
}

// TestRenderHTML verifies the report carries the core evaluation facts.
func TestRenderHTML(t *testing.T) {
	html, err := RenderHTML(sampleResult())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{
		"Ada Lovelace",
		"Grace Hopper",
		"https://github.com/org/repo",
		"5.3 / 7.0",
		"PASSED",
		"Project Structure",
		"unit tests present",
		"Strong structure",
		"<h2>Strengths</h2>",
		"<h2>Areas for Improvement</h2>",
		"<h2>Recommendations</h2>",
		"Performance level: good",
		"data-understanding notebook",
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("html missing %q:\n%s", want, html)
		}
	}
}

// TestRenderHTMLEscapesContent verifies untrusted repository content cannot
// inject markup.
func TestRenderHTMLEscapesContent(t *testing.T) {
	result := sampleResult()
	result.Narrative = "<script>alert(1)</script>"

	html, err := RenderHTML(result)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(html, "<script>alert(1)</script>") {
		t.Fatalf("narrative not escaped:\n%s", html)
	}
}

// TestRenderHTMLFailedResult verifies failures render with their detail.
func TestRenderHTMLFailedResult(t *testing.T) {
	result := sampleResult()
	result.Passed = false
	result.Failed = true
	result.Failure = "repository unavailable"

	html, err := RenderHTML(result)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(html, "ERROR") || !strings.Contains(html, "repository unavailable") {
		t.Fatalf("failure detail missing:\n%s", html)
	}
}

// TestRenderMarkdown verifies the Markdown layout and optional sections.
func TestRenderMarkdown(t *testing.T) {
	md := RenderMarkdown(sampleResult())
	for _, want := range []string{
		"# Project Evaluation",
		"**Student**: Ada Lovelace",
		"**5.3 / 7.0** (PASSED)",
		"| Project Structure | 10% | 7.0 | full layout |",
		"- +0.5: unit tests present",
		"## Strengths",
		"- Project Structure: full layout",
		"## Areas for Improvement",
		"- EDA Notebook: notebook missing",
		"## Recommendations",
		"Performance level: good",
		"## Feedback",
	} {
		if !strings.Contains(md, want) {
			t.Fatalf("markdown missing %q:\n%s", want, md)
		}
	}

	bare := sampleResult()
	bare.Adjustments = nil
	bare.Narrative = ""
	bare.Strengths = nil
	bare.Improvements = nil
	bare.Recommendations = nil
	md = RenderMarkdown(bare)
	for _, section := range []string{"## Adjustments", "## Feedback", "## Strengths", "## Areas for Improvement", "## Recommendations"} {
		if strings.Contains(md, section) {
			t.Fatalf("empty section %q must be omitted:\n%s", section, md)
		}
	}
}
