package rubric

import (
	"fmt"
	"math"
	"strings"
)

// WeightTolerance is the allowed deviation of the criterion weight sum
// from 1.0.
const WeightTolerance = 1e-6

// Issue captures a validation problem with a rubric field.
type Issue struct {
	Field   string
	Message string
}

// ValidationError aggregates rubric validation issues.
type ValidationError struct {
	Issues []Issue
}

// Error renders validation errors as a multi-line string.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return "rubric validation failed"
	}
	lines := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		lines = append(lines, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return strings.Join(lines, "\n")
}

// Validate checks a rubric for structural correctness: weights in (0,1]
// summing to 1.0 within tolerance, unique criterion IDs, rule levels drawn
// from the criterion's declared set, and a guaranteed fallback rule.
// A rubric failing validation must not be used for evaluation.
func Validate(r *Rubric) error {
	var issues []Issue
	add := func(field, message string) {
		issues = append(issues, Issue{Field: field, Message: message})
	}

	if strings.TrimSpace(r.Name) == "" {
		add("name", "is required")
	}
	if len(r.Criteria) == 0 {
		add("criteria", "at least one criterion is required")
	}
	if r.PassingGrade < 0 || r.PassingGrade > 7.0 {
		add("passing_grade", fmt.Sprintf("must be within [0, 7.0], got %v", r.PassingGrade))
	}

	seen := map[string]struct{}{}
	weightSum := 0.0
	for i, criterion := range r.Criteria {
		fieldPrefix := fmt.Sprintf("criteria[%d]", i)
		id := strings.TrimSpace(criterion.ID)
		if id == "" {
			add(fieldPrefix+".id", "is required")
		} else if _, exists := seen[id]; exists {
			add("criteria.id", fmt.Sprintf("duplicate id %q", id))
		} else {
			seen[id] = struct{}{}
		}
		if criterion.Weight <= 0 || criterion.Weight > 1 {
			add(fieldPrefix+".weight", fmt.Sprintf("must be in (0, 1], got %v", criterion.Weight))
		}
		weightSum += criterion.Weight

		if len(criterion.Levels) == 0 {
			add(fieldPrefix+".levels", "at least one level is required")
		}
		for level := range criterion.Levels {
			if !isCanonicalLevel(level) {
				add(fieldPrefix+".levels", fmt.Sprintf("level %v is not in the canonical set", float64(level)))
			}
		}

		if len(criterion.Rules) == 0 {
			add(fieldPrefix+".rules", "at least one rule is required")
			continue
		}
		for j, rule := range criterion.Rules {
			if _, declared := criterion.Levels[rule.Level]; !declared {
				add(fmt.Sprintf("%s.rules[%d]", fieldPrefix, j),
					fmt.Sprintf("level %v is not declared by the criterion", float64(rule.Level)))
			}
		}
		last := criterion.Rules[len(criterion.Rules)-1]
		if last.When != nil {
			add(fieldPrefix+".rules", "last rule must be an unconditional fallback")
		} else if last.Level != criterion.LowestLevel() {
			add(fieldPrefix+".rules", "fallback rule must assign the lowest level")
		}
	}

	if len(r.Criteria) > 0 && math.Abs(weightSum-1.0) > WeightTolerance {
		add("criteria", fmt.Sprintf("weights must sum to 1.0, got %v", weightSum))
	}

	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}

func isCanonicalLevel(level Level) bool {
	for _, canonical := range Levels {
		if level == canonical {
			return true
		}
	}
	return false
}
