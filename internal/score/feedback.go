package score

import "fmt"

// Level bands for feedback derivation. A criterion at or above strongLevel
// is a strength; below weakLevel it needs improvement.
const (
	strongLevel = 6.0
	weakLevel   = 4.0
)

// recommendations maps a weak criterion to a concrete next step.
var recommendations = map[string]string{
	"structure":       "Review the Kedro directory layout (conf/, data/, src/, notebooks/) and its base configuration files",
	"catalog":         "Add more datasets to conf/base/catalog.yml (at least three are required)",
	"nodes":           "Split the logic into small documented functions with type hints under src/",
	"pipelines":       "Implement a pipeline package for each CRISP-DM phase under src/*/pipelines/",
	"eda":             "Add a data-understanding notebook covering univariate and bivariate analysis",
	"cleaning":        "Back the data-preparation notebook with a data_engineering pipeline",
	"features":        "Parameterize the feature transformations through conf/base/parameters.yml",
	"targets":         "Document the modeling target variables in the business-understanding notebook and README",
	"documentation":   "Complete the three CRISP-DM notebooks and the project README",
	"reproducibility": "Add requirements.txt, .env.example, and tests so the project runs from a clean clone",
}

// buildFeedback derives the rule-based feedback lists from the assigned
// levels. It runs on every result so reports carry guidance even when no
// narrative provider is configured.
func buildFeedback(result *EvaluationResult) {
	for _, criterion := range result.Criteria {
		switch {
		case criterion.Level >= strongLevel:
			result.Strengths = append(result.Strengths,
				fmt.Sprintf("%s: %s", criterion.Name, criterion.Justification))
		case criterion.Level < weakLevel:
			result.Improvements = append(result.Improvements,
				fmt.Sprintf("%s: %s", criterion.Name, criterion.Justification))
			if recommendation, ok := recommendations[criterion.CriterionID]; ok {
				result.Recommendations = append(result.Recommendations, recommendation)
			}
		}
	}
	result.Summary = summaryLine(result.Grade, result.Passed)
}

// unavailableFeedback replaces the derived lists when the repository could
// not be checked out at all.
func unavailableFeedback(result *EvaluationResult) {
	result.Strengths = nil
	result.Improvements = []string{"The repository could not be accessed"}
	result.Recommendations = []string{"Verify the repository URL is correct and the repository is accessible"}
	result.Summary = fmt.Sprintf("Evaluation failed: %s.", result.Failure)
}

func summaryLine(grade float64, passed bool) string {
	var band string
	switch {
	case grade >= 6.0:
		band = "excellent"
	case grade >= 5.0:
		band = "good"
	case grade >= 4.0:
		band = "sufficient"
	default:
		band = "insufficient"
	}
	status := "FAILED"
	if passed {
		status = "PASSED"
	}
	return fmt.Sprintf("Project graded %.1f/7.0. Performance level: %s. %s.", grade, band, status)
}
