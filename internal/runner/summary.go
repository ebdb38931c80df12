package runner

import "rubrica/internal/score"

// BatchSummary aggregates one batch of evaluations. It is recomputed from
// scratch at the end of a batch, never maintained incrementally.
type BatchSummary struct {
	Attempted int     `json:"attempted"`
	Evaluated int     `json:"evaluated"`
	Failures  int     `json:"failures"`
	Passed    int     `json:"passed"`
	PassRate  float64 `json:"pass_rate"`
	Mean      float64 `json:"mean"`
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`

	// Distribution counts successful evaluations per whole-grade band
	// ("1.0-1.9" .. "6.0-7.0").
	Distribution map[string]int `json:"distribution"`
}

// gradeBands orders the distribution keys from lowest to highest band.
var gradeBands = []string{"1.0-1.9", "2.0-2.9", "3.0-3.9", "4.0-4.9", "5.0-5.9", "6.0-7.0"}

// Summarize aggregates batch results. Failed evaluations count toward
// Attempted, Failures, and pass visibility but are excluded from the
// numeric aggregates, so a partially failed batch still reports cleanly.
func Summarize(results []score.EvaluationResult) BatchSummary {
	summary := BatchSummary{
		Attempted:    len(results),
		Distribution: map[string]int{},
	}
	for _, band := range gradeBands {
		summary.Distribution[band] = 0
	}

	sum := 0.0
	for _, result := range results {
		if result.Passed {
			summary.Passed++
		}
		if result.Failed {
			summary.Failures++
			continue
		}
		summary.Evaluated++
		sum += result.Grade
		if summary.Evaluated == 1 || result.Grade < summary.Min {
			summary.Min = result.Grade
		}
		if result.Grade > summary.Max {
			summary.Max = result.Grade
		}
		summary.Distribution[band(result.Grade)]++
	}
	if summary.Evaluated > 0 {
		summary.Mean = sum / float64(summary.Evaluated)
	}
	if summary.Attempted > 0 {
		summary.PassRate = float64(summary.Passed) / float64(summary.Attempted)
	}
	return summary
}

func band(grade float64) string {
	switch {
	case grade < 2.0:
		return gradeBands[0]
	case grade < 3.0:
		return gradeBands[1]
	case grade < 4.0:
		return gradeBands[2]
	case grade < 5.0:
		return gradeBands[3]
	case grade < 6.0:
		return gradeBands[4]
	default:
		return gradeBands[5]
	}
}
