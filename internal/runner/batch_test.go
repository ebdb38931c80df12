package runner

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"rubrica/internal/score"
)

// fakeGrader grades by roster position with a controllable failure set.
type fakeGrader struct {
	mu       sync.Mutex
	active   int32
	peak     int32
	failures map[string]bool
	grades   map[string]float64
}

func (f *fakeGrader) Evaluate(ctx context.Context, student Student) score.EvaluationResult {
	current := atomic.AddInt32(&f.active, 1)
	defer atomic.AddInt32(&f.active, -1)
	f.mu.Lock()
	if current > f.peak {
		f.peak = current
	}
	failed := f.failures[student.Name]
	grade := f.grades[student.Name]
	f.mu.Unlock()

	if failed {
		return score.EvaluationResult{
			Student: student.Name,
			Repo:    score.RepoInfo{URL: student.RepoURL},
			Grade:   score.GradeMin,
			Failed:  true,
			Failure: "repository unavailable",
		}
	}
	return score.EvaluationResult{
		Student: student.Name,
		Repo:    score.RepoInfo{URL: student.RepoURL},
		Grade:   grade,
		Passed:  grade >= 4.0,
	}
}

func rosterOf(n int) []Student {
	students := make([]Student, 0, n)
	for i := 0; i < n; i++ {
		students = append(students, Student{
			Name:    fmt.Sprintf("student-%02d", i),
			RepoURL: fmt.Sprintf("https://github.com/org/repo-%02d", i),
		})
	}
	return students
}

// TestRunBatchPreservesRosterOrder verifies results come back in input
// order regardless of worker scheduling.
func TestRunBatchPreservesRosterOrder(t *testing.T) {
	students := rosterOf(20)
	grader := &fakeGrader{grades: map[string]float64{}, failures: map[string]bool{}}
	for i, student := range students {
		grader.grades[student.Name] = 1.0 + float64(i%7)*0.5
	}

	results := RunBatch(context.Background(), grader, students, 4)
	if len(results) != len(students) {
		t.Fatalf("results = %d, want %d", len(results), len(students))
	}
	for i, result := range results {
		if result.Student != students[i].Name {
			t.Fatalf("slot %d holds %q, want %q", i, result.Student, students[i].Name)
		}
	}
}

// TestRunBatchBoundsParallelism verifies no more than the configured
// workers run at once.
func TestRunBatchBoundsParallelism(t *testing.T) {
	students := rosterOf(12)
	grader := &fakeGrader{grades: map[string]float64{}, failures: map[string]bool{}}

	RunBatch(context.Background(), grader, students, 3)
	if grader.peak > 3 {
		t.Fatalf("peak concurrency = %d, want <= 3", grader.peak)
	}
}

// TestRunBatchKeepsFailuresLocal verifies one failed evaluation does not
// disturb the rest of the batch.
func TestRunBatchKeepsFailuresLocal(t *testing.T) {
	students := rosterOf(5)
	grader := &fakeGrader{
		grades:   map[string]float64{},
		failures: map[string]bool{"student-02": true},
	}
	for _, student := range students {
		grader.grades[student.Name] = 5.0
	}

	results := RunBatch(context.Background(), grader, students, 2)
	failures := 0
	for i, result := range results {
		if result.Failed {
			failures++
			if i != 2 {
				t.Fatalf("unexpected failure at slot %d", i)
			}
		}
	}
	if failures != 1 {
		t.Fatalf("failures = %d, want 1", failures)
	}
}

// TestRunBatchCancelledContext verifies unprocessed students still appear
// as failed results.
func TestRunBatchCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	students := rosterOf(8)
	grader := &fakeGrader{grades: map[string]float64{}, failures: map[string]bool{}}

	results := RunBatch(ctx, grader, students, 2)
	if len(results) != len(students) {
		t.Fatalf("results = %d, want %d", len(results), len(students))
	}
	for i, result := range results {
		if result.Student != students[i].Name {
			t.Fatalf("slot %d holds %q, want %q", i, result.Student, students[i].Name)
		}
	}
}

// TestRunBatchEmptyRoster verifies a zero-student batch returns cleanly.
func TestRunBatchEmptyRoster(t *testing.T) {
	grader := &fakeGrader{grades: map[string]float64{}, failures: map[string]bool{}}
	if results := RunBatch(context.Background(), grader, nil, 4); len(results) != 0 {
		t.Fatalf("results = %d, want 0", len(results))
	}
}
