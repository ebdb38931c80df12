package rubric

import "rubrica/internal/evidence"

// levelDescriptions is the shared performance scale used by every Kedro
// criterion, mirroring the course's grading bands.
var levelDescriptions = map[Level]string{
	LevelExcellent:    "Complete achievement of every expected aspect",
	LevelGood:         "High achievement with minimal omissions",
	LevelSatisfactory: "Solid achievement of the core elements",
	LevelAcceptable:   "Basic elements achieved",
	LevelBasic:        "Significant omissions or errors",
	LevelIncipient:    "Largely incorrect implementation",
	LevelInsufficient: "Does not meet minimum requirements",
}

func hasPhase(ev evidence.Evidence, phase string) bool {
	for _, found := range ev.Notebooks.Phases {
		if found == phase {
			return true
		}
	}
	return false
}

func hasPipeline(ev evidence.Evidence, name string) bool {
	for _, found := range ev.Pipelines.Names {
		if found == name {
			return true
		}
	}
	return false
}

// NewKedroML builds the built-in rubric for Kedro machine-learning projects:
// ten criteria at 10% each covering the first three CRISP-DM phases.
func NewKedroML() Rubric {
	return Rubric{
		Name:         "Kedro ML Project Evaluation",
		Description:  "Machine-learning projects implemented with the Kedro framework, covering the first three CRISP-DM phases",
		PassingGrade: DefaultPassingGrade,
		Criteria: []Criterion{
			{
				ID:          "structure",
				Name:        "Project Structure and Configuration",
				Description: "Kedro project correctly structured with complete configuration",
				Weight:      0.10,
				Levels:      levelDescriptions,
				Rules: []ThresholdRule{
					{Level: LevelExcellent, When: func(ev evidence.Evidence) bool {
						return ev.Structure.IsKedroProject() && len(ev.Structure.MissingPaths) == 0
					}, Because: "full Kedro layout with every expected directory and configuration file"},
					{Level: LevelGood, When: func(ev evidence.Evidence) bool {
						return ev.Structure.IsKedroProject() && len(ev.Structure.MissingPaths) <= 2
					}, Because: "Kedro layout present with at most two missing paths"},
					{Level: LevelAcceptable, When: func(ev evidence.Evidence) bool {
						return ev.Structure.DirCount() >= 2
					}, Because: "partial layout: at least two of the main Kedro directories exist"},
					{Level: LevelIncipient, When: func(ev evidence.Evidence) bool {
						return ev.Structure.DirCount() >= 1
					}, Because: "only one of the main Kedro directories exists"},
					{Level: LevelInsufficient, Because: "no recognizable Kedro project structure"},
				},
			},
			{
				ID:          "catalog",
				Name:        "Data Catalog Implementation",
				Description: "Multiple datasets correctly configured in the Kedro catalog",
				Weight:      0.10,
				Levels:      levelDescriptions,
				Rules: []ThresholdRule{
					{Level: LevelExcellent, When: func(ev evidence.Evidence) bool {
						return ev.Catalog.DatasetCount > 3
					}, Because: "catalog defines more than the three required datasets"},
					{Level: LevelGood, When: func(ev evidence.Evidence) bool {
						return ev.Catalog.DatasetCount == 3
					}, Because: "catalog defines the three required datasets"},
					{Level: LevelSatisfactory, When: func(ev evidence.Evidence) bool {
						return ev.Catalog.DatasetCount == 2
					}, Because: "catalog defines two datasets where three are required"},
					{Level: LevelAcceptable, When: func(ev evidence.Evidence) bool {
						return ev.Catalog.DatasetCount == 1
					}, Because: "catalog defines a single dataset"},
					{Level: LevelInsufficient, Because: "no usable dataset entries in the catalog"},
				},
			},
			{
				ID:          "nodes",
				Name:        "Node and Function Development",
				Description: "Modular nodes built from pure, documented functions",
				Weight:      0.10,
				Levels:      levelDescriptions,
				Rules: []ThresholdRule{
					{Level: LevelExcellent, When: func(ev evidence.Evidence) bool {
						return ev.CodeMetrics.PythonFiles >= 5 && ev.CodeMetrics.HasDocstrings && ev.CodeMetrics.HasTypeHints
					}, Because: "substantial Python codebase with docstrings and type hints"},
					{Level: LevelGood, When: func(ev evidence.Evidence) bool {
						return ev.CodeMetrics.PythonFiles >= 3 && ev.CodeMetrics.HasDocstrings
					}, Because: "documented Python modules present"},
					{Level: LevelAcceptable, When: func(ev evidence.Evidence) bool {
						return ev.CodeMetrics.PythonFiles >= 1
					}, Because: "Python sources present but lacking documentation signals"},
					{Level: LevelInsufficient, Because: "no Python sources found under src/"},
				},
			},
			{
				ID:          "pipelines",
				Name:        "Pipeline Construction",
				Description: "Pipelines organized per CRISP-DM phase with clear dependencies",
				Weight:      0.10,
				Levels:      levelDescriptions,
				Rules: []ThresholdRule{
					{Level: LevelExcellent, When: func(ev evidence.Evidence) bool {
						return len(ev.Pipelines.Names) >= 3
					}, Because: "three or more pipelines registered"},
					{Level: LevelGood, When: func(ev evidence.Evidence) bool {
						return len(ev.Pipelines.Names) == 2
					}, Because: "two pipelines registered"},
					{Level: LevelSatisfactory, When: func(ev evidence.Evidence) bool {
						return len(ev.Pipelines.Names) == 1
					}, Because: "a single pipeline registered"},
					{Level: LevelInsufficient, Because: "no pipeline packages found"},
				},
			},
			{
				ID:          "eda",
				Name:        "Exploratory Data Analysis",
				Description: "Thorough EDA with univariate, bivariate, and multivariate analysis",
				Weight:      0.10,
				Levels:      levelDescriptions,
				Rules: []ThresholdRule{
					{Level: LevelExcellent, When: func(ev evidence.Evidence) bool {
						return hasPhase(ev, "02_data_understanding") && ev.Structure.HasData
					}, Because: "data-understanding notebook present alongside the data layer"},
					{Level: LevelGood, When: func(ev evidence.Evidence) bool {
						return hasPhase(ev, "02_data_understanding")
					}, Because: "data-understanding notebook present"},
					{Level: LevelAcceptable, When: func(ev evidence.Evidence) bool {
						return len(ev.Notebooks.Phases) >= 1
					}, Because: "some CRISP-DM notebook present, but no dedicated EDA phase"},
					{Level: LevelInsufficient, Because: "no EDA notebook found"},
				},
			},
			{
				ID:          "cleaning",
				Name:        "Data Cleaning and Treatment",
				Description: "Differentiated strategies for cleaning each dataset",
				Weight:      0.10,
				Levels:      levelDescriptions,
				Rules: []ThresholdRule{
					{Level: LevelExcellent, When: func(ev evidence.Evidence) bool {
						return hasPhase(ev, "03_data_preparation") && hasPipeline(ev, "data_engineering")
					}, Because: "data-preparation notebook backed by a data_engineering pipeline"},
					{Level: LevelSatisfactory, When: func(ev evidence.Evidence) bool {
						return hasPhase(ev, "03_data_preparation") || hasPipeline(ev, "data_engineering")
					}, Because: "cleaning work present in notebooks or pipelines, not both"},
					{Level: LevelInsufficient, Because: "no evidence of data cleaning work"},
				},
			},
			{
				ID:          "features",
				Name:        "Transformation and Feature Engineering",
				Description: "Advanced transformations and derived feature creation",
				Weight:      0.10,
				Levels:      levelDescriptions,
				Rules: []ThresholdRule{
					{Level: LevelExcellent, When: func(ev evidence.Evidence) bool {
						return ev.Structure.HasParameters && hasPhase(ev, "03_data_preparation") && ev.Structure.HasData
					}, Because: "parameterized transformations with a preparation notebook and data layers"},
					{Level: LevelAcceptable, When: func(ev evidence.Evidence) bool {
						return ev.Structure.HasParameters || hasPhase(ev, "03_data_preparation")
					}, Because: "partial feature-engineering evidence"},
					{Level: LevelInsufficient, Because: "no feature-engineering evidence"},
				},
			},
			{
				ID:          "targets",
				Name:        "ML Target Identification",
				Description: "Correct identification of target variables for modeling",
				Weight:      0.10,
				Levels:      levelDescriptions,
				Rules: []ThresholdRule{
					{Level: LevelExcellent, When: func(ev evidence.Evidence) bool {
						return hasPhase(ev, "01_business_understanding") && ev.Docs.ReadmeLines >= 30
					}, Because: "business-understanding notebook plus a substantive README"},
					{Level: LevelAcceptable, When: func(ev evidence.Evidence) bool {
						return hasPhase(ev, "01_business_understanding") || ev.Docs.HasReadme
					}, Because: "target discussion only partially documented"},
					{Level: LevelInsufficient, Because: "no documented target identification"},
				},
			},
			{
				ID:          "documentation",
				Name:        "Documentation and Notebooks",
				Description: "Structured notebooks per CRISP-DM phase and project documentation",
				Weight:      0.10,
				Levels:      levelDescriptions,
				Rules: []ThresholdRule{
					{Level: LevelExcellent, When: func(ev evidence.Evidence) bool {
						return ev.Docs.HasReadme && len(ev.Notebooks.Phases) >= 3
					}, Because: "README plus all three CRISP-DM notebooks"},
					{Level: LevelGood, When: func(ev evidence.Evidence) bool {
						return ev.Docs.HasReadme && len(ev.Notebooks.Phases) >= 2
					}, Because: "README plus two CRISP-DM notebooks"},
					{Level: LevelSatisfactory, When: func(ev evidence.Evidence) bool {
						return ev.Docs.HasReadme
					}, Because: "README present but notebooks incomplete"},
					{Level: LevelInsufficient, Because: "no README found"},
				},
			},
			{
				ID:          "reproducibility",
				Name:        "Reproducibility and Best Practices",
				Description: "Project is fully reproducible following good practices",
				Weight:      0.10,
				Levels:      levelDescriptions,
				Rules: []ThresholdRule{
					{Level: LevelExcellent, When: func(ev evidence.Evidence) bool {
						passed, total := ev.ReproducibilityChecks()
						return passed == total
					}, Because: "every reproducibility check passed"},
					{Level: LevelGood, When: func(ev evidence.Evidence) bool {
						passed, total := ev.ReproducibilityChecks()
						return float64(passed) >= 0.75*float64(total)
					}, Because: "most reproducibility checks passed"},
					{Level: LevelSatisfactory, When: func(ev evidence.Evidence) bool {
						passed, total := ev.ReproducibilityChecks()
						return float64(passed) >= 0.5*float64(total)
					}, Because: "half of the reproducibility checks passed"},
					{Level: LevelBasic, When: func(ev evidence.Evidence) bool {
						passed, _ := ev.ReproducibilityChecks()
						return passed >= 1
					}, Because: "only isolated reproducibility practices found"},
					{Level: LevelInsufficient, Because: "no reproducibility practices found"},
				},
			},
		},
	}
}
