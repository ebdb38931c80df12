package runner

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"rubrica/internal/score"
)

var fixedNow = time.Date(2026, 8, 15, 10, 30, 0, 0, time.UTC)

// TestNewStudentPaths verifies the per-student directory layout.
func TestNewStudentPaths(t *testing.T) {
	paths := NewStudentPaths("/out", "Ada Lovelace", fixedNow)
	if paths.Dir != filepath.Join("/out", "ada_lovelace_20260815") {
		t.Fatalf("dir = %q", paths.Dir)
	}
	if filepath.Base(paths.ResultJSON) != "evaluation.json" {
		t.Fatalf("json = %q", paths.ResultJSON)
	}
	if filepath.Base(paths.ReportHTML) != "report.html" || filepath.Base(paths.ReportMD) != "report.md" {
		t.Fatalf("reports = %q %q", paths.ReportHTML, paths.ReportMD)
	}
}

// TestSlug verifies filesystem-safe name conversion.
func TestSlug(t *testing.T) {
	cases := map[string]string{
		"Ada Lovelace":   "ada_lovelace",
		"o'brien/María":  "obrien_mara",
		"   ":            "unknown",
		"..":             "unknown",
		"Grace-Hopper.2": "grace_hopper_2",
	}
	for name, want := range cases {
		if got := slug(name); got != want {
			t.Fatalf("slug(%q) = %q, want %q", name, got, want)
		}
	}
}

// TestWriteEvaluation verifies all three per-student artifacts are written
// and the JSON round-trips.
func TestWriteEvaluation(t *testing.T) {
	result := score.EvaluationResult{
		ID:      "run-1",
		Student: "Ada",
		Repo:    score.RepoInfo{URL: "https://github.com/org/repo"},
		Rubric:  "Kedro ML Project Evaluation",
		Grade:   5.3,
		Passed:  true,
		Criteria: []score.CriterionResult{
			{CriterionID: "structure", Name: "Structure", Weight: 1.0, Level: 5.0, Justification: "partial"},
		},
		EvaluatedAt: fixedNow,
	}
	paths := NewStudentPaths(t.TempDir(), "Ada", fixedNow)

	if err := WriteEvaluation(paths, result); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(paths.ResultJSON)
	if err != nil {
		t.Fatalf("read json: %v", err)
	}
	var decoded score.EvaluationResult
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	if decoded.Grade != 5.3 || decoded.Student != "Ada" {
		t.Fatalf("decoded = %+v", decoded)
	}

	html, err := os.ReadFile(paths.ReportHTML)
	if err != nil {
		t.Fatalf("read html: %v", err)
	}
	if !strings.Contains(string(html), "Ada") {
		t.Fatalf("html missing student name")
	}
	if _, err := os.Stat(paths.ReportMD); err != nil {
		t.Fatalf("markdown report missing: %v", err)
	}
}

// TestWriteBatchOutputs verifies the grade sheet formats and statistics.
func TestWriteBatchOutputs(t *testing.T) {
	results := []score.EvaluationResult{
		{Student: "Ada", Partner: "Grace", Repo: score.RepoInfo{URL: "https://github.com/org/r1"}, Grade: 5.3, Passed: true},
		{Student: "Alan", Repo: score.RepoInfo{URL: "https://github.com/org/r2"}, Grade: score.GradeMin, Failed: true, Failure: "repository unavailable"},
	}
	summary := Summarize(results)
	paths := NewBatchPaths(t.TempDir(), fixedNow)

	if err := WriteBatchOutputs(paths, results, summary); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	file, err := os.Open(paths.GradesCSV)
	if err != nil {
		t.Fatalf("open csv: %v", err)
	}
	defer file.Close()
	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("rows = %d, want header plus 2", len(records))
	}
	if records[1][0] != "Ada" || records[1][3] != "5.3" || records[1][4] != "PASSED" {
		t.Fatalf("first row = %v", records[1])
	}
	if records[2][3] != "" || records[2][4] != "ERROR" {
		t.Fatalf("failed row must have no grade: %v", records[2])
	}

	workbook, err := excelize.OpenFile(paths.GradesXLSX)
	if err != nil {
		t.Fatalf("open xlsx: %v", err)
	}
	defer workbook.Close()
	cell, err := workbook.GetCellValue("Grades", "A2")
	if err != nil {
		t.Fatalf("read xlsx cell: %v", err)
	}
	if cell != "Ada" {
		t.Fatalf("xlsx A2 = %q", cell)
	}

	data, err := os.ReadFile(paths.StatsJSON)
	if err != nil {
		t.Fatalf("read statistics: %v", err)
	}
	var decoded BatchSummary
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("decode statistics: %v", err)
	}
	if decoded.Attempted != 2 || decoded.Evaluated != 1 {
		t.Fatalf("statistics = %+v", decoded)
	}
}

// TestBatchPathsStamp verifies batch filenames carry the run stamp.
func TestBatchPathsStamp(t *testing.T) {
	paths := NewBatchPaths("/out", fixedNow)
	if filepath.Base(paths.GradesCSV) != "grades_20260815_1030.csv" {
		t.Fatalf("csv = %q", paths.GradesCSV)
	}
	if filepath.Base(paths.GradesXLSX) != "grades_20260815_1030.xlsx" {
		t.Fatalf("xlsx = %q", paths.GradesXLSX)
	}
	if filepath.Base(paths.StatsJSON) != "statistics_20260815_1030.json" {
		t.Fatalf("stats = %q", paths.StatsJSON)
	}
}
