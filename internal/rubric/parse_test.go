package rubric

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestParseFileRejectsUnknownFields verifies typos in overlay files surface
// as errors.
func TestParseFileRejectsUnknownFields(t *testing.T) {
	_, err := ParseFile([]byte("name: custom\npasing_grade: 5.0\n"))
	if err == nil {
		t.Fatalf("expected parse error for unknown field")
	}
}

// TestParseFileRejectsMultipleDocuments verifies multi-document YAML is
// rejected.
func TestParseFileRejectsMultipleDocuments(t *testing.T) {
	_, err := ParseFile([]byte("name: a\n---\nname: b\n"))
	if err == nil || !strings.Contains(err.Error(), "multiple YAML documents") {
		t.Fatalf("expected multi-document error, got %v", err)
	}
}

// TestLoadWithoutOverlayReturnsBuiltIn verifies an empty path yields the
// built-in rubric.
func TestLoadWithoutOverlayReturnsBuiltIn(t *testing.T) {
	r, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(r.Criteria) != 10 {
		t.Fatalf("criteria = %d, want 10", len(r.Criteria))
	}
	if r.Passing() != DefaultPassingGrade {
		t.Fatalf("passing = %v, want %v", r.Passing(), DefaultPassingGrade)
	}
}

// TestLoadAppliesOverlay verifies an overlay customizes names, weights,
// and the pass threshold while keeping the rubric valid.
func TestLoadAppliesOverlay(t *testing.T) {
	overlay := strings.Join([]string{
		"name: Custom Course Rubric",
		"passing_grade: 5.0",
		"criteria:",
		"  - id: structure",
		"    name: Layout",
		"    weight: 0.19",
		"  - id: catalog",
		"    weight: 0.01",
		"",
	}, "\n")
	path := filepath.Join(t.TempDir(), "rubric.yml")
	if err := os.WriteFile(path, []byte(overlay), 0o644); err != nil {
		t.Fatalf("write overlay: %v", err)
	}

	r, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Name != "Custom Course Rubric" {
		t.Fatalf("name = %q", r.Name)
	}
	if r.Passing() != 5.0 {
		t.Fatalf("passing = %v, want 5.0", r.Passing())
	}
	if r.Criteria[0].Name != "Layout" {
		t.Fatalf("criterion name = %q", r.Criteria[0].Name)
	}
	if math.Abs(r.Criteria[0].Weight-0.19) > 1e-9 {
		t.Fatalf("weight = %v, want 0.19", r.Criteria[0].Weight)
	}
}

// TestLoadRejectsUnknownCriterion verifies overlays may only reference
// built-in criterion ids.
func TestLoadRejectsUnknownCriterion(t *testing.T) {
	overlay := "criteria:\n  - id: deployment\n    weight: 0.10\n"
	path := filepath.Join(t.TempDir(), "rubric.yml")
	if err := os.WriteFile(path, []byte(overlay), 0o644); err != nil {
		t.Fatalf("write overlay: %v", err)
	}

	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "unknown criterion") {
		t.Fatalf("expected unknown-criterion error, got %v", err)
	}
}

// TestLoadRejectsInvalidOverlayWeights verifies overlays that break the
// weight sum fail validation.
func TestLoadRejectsInvalidOverlayWeights(t *testing.T) {
	overlay := "criteria:\n  - id: structure\n    weight: 0.50\n"
	path := filepath.Join(t.TempDir(), "rubric.yml")
	if err := os.WriteFile(path, []byte(overlay), 0o644); err != nil {
		t.Fatalf("write overlay: %v", err)
	}

	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "sum to 1.0") {
		t.Fatalf("expected weight-sum error, got %v", err)
	}
}

// TestLoadMissingOverlayFile verifies a missing overlay path is an error.
func TestLoadMissingOverlayFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yml")); err == nil {
		t.Fatalf("expected error for missing overlay file")
	}
}
