// Package score turns collected evidence into graded evaluation results.
package score

import "time"

// GradeMin and GradeMax bound the final grade scale.
const (
	GradeMin = 1.0
	GradeMax = 7.0
)

// CriterionResult records the level assigned to one criterion.
type CriterionResult struct {
	CriterionID   string  `json:"criterion_id"`
	Name          string  `json:"name"`
	Weight        float64 `json:"weight"`
	Level         float64 `json:"level"`
	Justification string  `json:"justification"`
}

// Adjustment is a signed grade delta applied after the weighted sum.
// Every adjustment carries a reason for auditability.
type Adjustment struct {
	Reason string  `json:"reason"`
	Delta  float64 `json:"delta"`
}

// RepoInfo identifies the evaluated checkout.
type RepoInfo struct {
	URL    string `json:"url"`
	Commit string `json:"commit,omitempty"`
	Branch string `json:"branch,omitempty"`
	Dirty  bool   `json:"dirty,omitempty"`
}

// EvaluationResult is the complete, immutable outcome of grading one
// student repository.
type EvaluationResult struct {
	ID          string            `json:"id"`
	Student     string            `json:"student"`
	Partner     string            `json:"partner,omitempty"`
	Repo        RepoInfo          `json:"repo"`
	Rubric      string            `json:"rubric"`
	Criteria    []CriterionResult `json:"criteria"`
	Grade       float64           `json:"grade"`
	Adjustments []Adjustment      `json:"adjustments,omitempty"`
	Passed      bool              `json:"passed"`
	Failed      bool              `json:"failed"`
	Failure     string            `json:"failure,omitempty"`

	// Rule-based feedback derived from the assigned levels, present on
	// every result. Narrative holds the optional LLM prose on top of it.
	Strengths       []string `json:"strengths,omitempty"`
	Improvements    []string `json:"improvements,omitempty"`
	Recommendations []string `json:"recommendations,omitempty"`
	Summary         string   `json:"summary"`

	Narrative   string    `json:"narrative,omitempty"`
	EvaluatedAt time.Time `json:"evaluated_at"`
}

// Status renders the pass/fail state the way reports display it.
func (r EvaluationResult) Status() string {
	switch {
	case r.Failed:
		return "ERROR"
	case r.Passed:
		return "PASSED"
	default:
		return "FAILED"
	}
}
