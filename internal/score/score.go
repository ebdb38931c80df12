package score

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"rubrica/internal/evidence"
	"rubrica/internal/rubric"
)

// Params bundles the inputs for scoring one repository.
type Params struct {
	Student     string
	Partner     string
	RepoURL     string
	Commit      string
	Branch      string
	Dirty       bool
	Adjustments []Adjustment
	Now         time.Time
}

// Score produces an EvaluationResult from a validated rubric and the
// evidence collected for one checkout. It never fails: unavailable or
// partial evidence degrades the affected criteria to their lowest level.
func Score(r rubric.Rubric, ev evidence.Evidence, params Params) EvaluationResult {
	now := params.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	criteria := make([]CriterionResult, 0, len(r.Criteria))
	weighted := 0.0
	for _, criterion := range r.Criteria {
		level, justification := assignLevel(criterion, ev)
		criteria = append(criteria, CriterionResult{
			CriterionID:   criterion.ID,
			Name:          criterion.Name,
			Weight:        criterion.Weight,
			Level:         float64(level),
			Justification: justification,
		})
		weighted += float64(level) * criterion.Weight
	}

	adjustments := dedupeByReason(params.Adjustments)
	grade := weighted
	for _, adjustment := range adjustments {
		grade += adjustment.Delta
	}
	grade = clamp(grade)

	result := EvaluationResult{
		ID:          uuid.NewString(),
		Student:     params.Student,
		Partner:     params.Partner,
		Repo:        RepoInfo{URL: params.RepoURL, Commit: params.Commit, Branch: params.Branch, Dirty: params.Dirty},
		Rubric:      r.Name,
		Criteria:    criteria,
		Grade:       grade,
		Adjustments: adjustments,
		Passed:      grade >= r.Passing(),
		EvaluatedAt: now,
	}
	buildFeedback(&result)
	if ev.Unavailable {
		result.Failed = true
		result.Failure = "repository unavailable"
		unavailableFeedback(&result)
	}
	return result
}

// assignLevel applies a criterion's rules top-down and takes the first
// match. Rule totality is guaranteed by rubric validation, which requires
// an unconditional fallback at the lowest level.
func assignLevel(criterion rubric.Criterion, ev evidence.Evidence) (rubric.Level, string) {
	if ev.Unavailable {
		return criterion.LowestLevel(), "repository unavailable"
	}
	for _, rule := range criterion.Rules {
		if rule.When == nil || rule.When(ev) {
			return rule.Level, rule.Because
		}
	}
	// unreachable for a validated rubric
	return criterion.LowestLevel(), "no rule matched; evidence missing"
}

// dedupeByReason keeps the first adjustment per reason so that repeated
// detection of the same condition cannot double-apply a delta.
func dedupeByReason(adjustments []Adjustment) []Adjustment {
	if len(adjustments) == 0 {
		return nil
	}
	seen := map[string]struct{}{}
	kept := make([]Adjustment, 0, len(adjustments))
	for _, adjustment := range adjustments {
		if _, dup := seen[adjustment.Reason]; dup {
			continue
		}
		seen[adjustment.Reason] = struct{}{}
		kept = append(kept, adjustment)
	}
	return kept
}

func clamp(grade float64) float64 {
	if grade < GradeMin {
		return GradeMin
	}
	if grade > GradeMax {
		return GradeMax
	}
	return grade
}

// DetectAdjustments derives the built-in bonuses and penalties from
// evidence: optional tooling earns bonuses, missing deliverables penalties.
func DetectAdjustments(ev evidence.Evidence) []Adjustment {
	if ev.Unavailable {
		return nil
	}
	var adjustments []Adjustment
	if ev.Extras.HasKedroViz {
		adjustments = append(adjustments, Adjustment{Reason: "kedro-viz configured", Delta: 0.3})
	}
	if ev.Docs.HasTests {
		adjustments = append(adjustments, Adjustment{Reason: "unit tests present", Delta: 0.5})
	}
	if ev.Extras.HasCIWorkflow {
		adjustments = append(adjustments, Adjustment{Reason: "CI workflow configured", Delta: 0.3})
	}
	if ev.Extras.HasDockerfile {
		adjustments = append(adjustments, Adjustment{Reason: "project containerized", Delta: 0.2})
	}
	if missing := 3 - ev.Catalog.DatasetCount; missing > 0 {
		adjustments = append(adjustments, Adjustment{
			Reason: fmt.Sprintf("%d dataset(s) short of the required three", missing),
			Delta:  -1.0 * float64(missing),
		})
	}
	if !ev.Structure.IsKedroProject() {
		adjustments = append(adjustments, Adjustment{Reason: "project does not run as a Kedro project", Delta: -2.0})
	}
	return adjustments
}

// LatePenalty builds the late-submission adjustment: -0.5 per day.
func LatePenalty(days int) (Adjustment, bool) {
	if days <= 0 {
		return Adjustment{}, false
	}
	return Adjustment{
		Reason: fmt.Sprintf("late submission: %d day(s)", days),
		Delta:  -0.5 * float64(days),
	}, true
}
