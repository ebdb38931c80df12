// Package evidence inspects a checked-out student repository and records the
// facts criterion rules decide on. Collection is read-only and deterministic:
// the same tree always yields the same Evidence.
package evidence

// Evidence holds the facts observed in one repository checkout. It is
// computed fresh per evaluation and never cached across repositories.
type Evidence struct {
	// Unavailable marks a repository that could not be checked out at all.
	Unavailable bool

	Structure   Structure
	Catalog     Catalog
	Pipelines   Pipelines
	Notebooks   Notebooks
	Docs        Docs
	CodeMetrics CodeMetrics
	Extras      Extras

	// Errors lists non-fatal inspection problems (unreadable file, malformed
	// catalog). They degrade individual facts, never the whole collection.
	Errors []string
}

// Structure records presence of the expected Kedro layout.
type Structure struct {
	HasConf       bool
	HasData       bool
	HasSrc        bool
	HasNotebooks  bool
	HasCatalog    bool
	HasParameters bool
	HasLoggingCfg bool
	HasPyproject  bool
	MissingPaths  []string
}

// DirCount returns how many of the four top-level Kedro directories exist.
func (s Structure) DirCount() int {
	count := 0
	for _, present := range []bool{s.HasConf, s.HasData, s.HasSrc, s.HasNotebooks} {
		if present {
			count++
		}
	}
	return count
}

// IsKedroProject reports whether the tree looks like a Kedro project:
// most top-level directories plus the core configuration files.
func (s Structure) IsKedroProject() bool {
	configCount := 0
	for _, present := range []bool{s.HasCatalog, s.HasParameters, s.HasPyproject} {
		if present {
			configCount++
		}
	}
	return s.DirCount() >= 3 && configCount >= 2
}

// Catalog records facts about conf/base/catalog.yml.
type Catalog struct {
	Present      bool
	DatasetCount int
	Malformed    bool
}

// Pipelines records pipeline packages found under src/*/pipelines/.
type Pipelines struct {
	Names []string
}

// Notebooks records which CRISP-DM phases have a matching notebook.
type Notebooks struct {
	Phases []string
}

// Docs records documentation and reproducibility facts.
type Docs struct {
	HasReadme       bool
	ReadmeLines     int
	HasRequirements bool
	HasGitignore    bool
	HasEnvExample   bool
	HasTests        bool
}

// ReproducibilityChecks counts how many reproducibility facts hold, out of
// the total number checked.
func (e Evidence) ReproducibilityChecks() (passed, total int) {
	checks := []bool{
		e.Docs.HasRequirements,
		e.Docs.HasReadme,
		e.Docs.HasGitignore,
		e.Docs.HasEnvExample,
		e.Docs.HasTests,
		e.Structure.HasParameters,
		e.Structure.HasLoggingCfg,
	}
	for _, ok := range checks {
		if ok {
			passed++
		}
	}
	return passed, len(checks)
}

// CodeMetrics summarizes the Python sources under src/.
type CodeMetrics struct {
	PythonFiles   int
	TotalLines    int
	HasDocstrings bool
	HasTypeHints  bool
}

// Extras records optional tooling that earns bonus adjustments.
type Extras struct {
	HasKedroViz   bool
	HasCIWorkflow bool
	HasDockerfile bool
}
