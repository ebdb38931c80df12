package runner

import (
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"rubrica/internal/score"
)

// StudentPaths names the artifacts written for one evaluated student.
type StudentPaths struct {
	Dir        string
	ResultJSON string
	ReportHTML string
	ReportMD   string
}

// BatchPaths names the artifacts written once per batch run.
type BatchPaths struct {
	GradesCSV  string
	GradesXLSX string
	StatsJSON  string
}

// NewStudentPaths computes the per-student output layout under outputDir.
// The directory is <slug>_<yyyymmdd> so reruns on a later day never
// overwrite earlier evaluations.
func NewStudentPaths(outputDir, student string, now time.Time) StudentPaths {
	dir := filepath.Join(outputDir, slug(student)+"_"+now.Format("20060102"))
	return StudentPaths{
		Dir:        dir,
		ResultJSON: filepath.Join(dir, "evaluation.json"),
		ReportHTML: filepath.Join(dir, "report.html"),
		ReportMD:   filepath.Join(dir, "report.md"),
	}
}

// NewBatchPaths computes the batch-level output layout under outputDir.
func NewBatchPaths(outputDir string, now time.Time) BatchPaths {
	stamp := now.Format("20060102_1504")
	return BatchPaths{
		GradesCSV:  filepath.Join(outputDir, "grades_"+stamp+".csv"),
		GradesXLSX: filepath.Join(outputDir, "grades_"+stamp+".xlsx"),
		StatsJSON:  filepath.Join(outputDir, "statistics_"+stamp+".json"),
	}
}

// slug converts a student name into a filesystem-safe directory component.
func slug(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "unknown"
	}
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '/', r == '\\', r == '-', r == '.':
			b.WriteByte('_')
		}
	}
	out := strings.Trim(b.String(), "_")
	if out == "" {
		return "unknown"
	}
	return out
}

// gradeRow is one line of the batch grade sheet, shared by the CSV and
// XLSX writers so the two formats never drift.
type gradeRow struct {
	Student string
	Partner string
	Repo    string
	Grade   string
	Status  string
	Failure string
}

var gradeHeader = []string{"student", "partner", "repository", "grade", "status", "detail"}

func gradeRows(results []score.EvaluationResult) []gradeRow {
	rows := make([]gradeRow, 0, len(results))
	for _, result := range results {
		row := gradeRow{
			Student: result.Student,
			Partner: result.Partner,
			Repo:    result.Repo.URL,
			Status:  result.Status(),
			Failure: result.Failure,
		}
		if !result.Failed {
			row.Grade = formatGrade(result.Grade)
		}
		rows = append(rows, row)
	}
	return rows
}

func formatGrade(grade float64) string {
	return strconv.FormatFloat(grade, 'f', 1, 64)
}
