package runner

import (
	"context"
	"sync"

	"rubrica/internal/score"
)

// DefaultParallelism bounds concurrent evaluations when none is configured.
const DefaultParallelism = 3

// batchItem carries one evaluation outcome back to its roster slot.
type batchItem struct {
	index  int
	result score.EvaluationResult
}

// Grader evaluates one roster entry. *Evaluator is the production
// implementation.
type Grader interface {
	Evaluate(ctx context.Context, student Student) score.EvaluationResult
}

// RunBatch evaluates every roster entry through a bounded worker pool and
// returns the results in roster order. Workers share only the read-only
// grader; each failure stays local to its own slot. The function returns
// after all workers have finished (the aggregation barrier).
func RunBatch(ctx context.Context, grader Grader, students []Student, parallelism int) []score.EvaluationResult {
	if parallelism <= 0 {
		parallelism = DefaultParallelism
	}
	if parallelism > len(students) {
		parallelism = len(students)
	}

	jobs := make(chan int)
	items := make(chan batchItem, len(students))

	var wg sync.WaitGroup
	for worker := 0; worker < parallelism; worker++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for index := range jobs {
				items <- batchItem{
					index:  index,
					result: grader.Evaluate(ctx, students[index]),
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for index := range students {
			select {
			case jobs <- index:
			case <-ctx.Done():
				return
			}
		}
	}()

	wg.Wait()
	close(items)

	results := make([]score.EvaluationResult, len(students))
	filled := make([]bool, len(students))
	for item := range items {
		results[item.index] = item.result
		filled[item.index] = true
	}
	// A cancelled run leaves unprocessed slots; mark them so aggregation
	// still accounts for every attempted student.
	for index, ok := range filled {
		if !ok {
			results[index] = cancelledResult(students[index])
		}
	}
	return results
}

func cancelledResult(student Student) score.EvaluationResult {
	return score.EvaluationResult{
		Student: student.Name,
		Partner: student.Partner,
		Repo:    score.RepoInfo{URL: student.RepoURL},
		Grade:   score.GradeMin,
		Failed:  true,
		Failure: "evaluation cancelled",
	}
}
