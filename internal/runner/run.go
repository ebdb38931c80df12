// Package runner orchestrates evaluations: checkout, evidence collection,
// scoring, optional narrative, and output writing.
package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"rubrica/internal/evidence"
	"rubrica/internal/narrative"
	"rubrica/internal/rubric"
	"rubrica/internal/score"
	"rubrica/internal/vcs"
)

// Evaluator holds the read-only collaborators shared by every evaluation in
// a run. It is safe for concurrent use: the rubric is immutable and each
// evaluation works in its own checkout directory.
type Evaluator struct {
	Rubric    rubric.Rubric
	Git       vcs.Client
	Augmenter *narrative.Augmenter

	// Timeout bounds one whole evaluation (clone, inspection, narrative).
	Timeout time.Duration

	// LateDays applies the late-submission penalty to every evaluation.
	LateDays int

	// Verbose logging sink; nil disables progress output.
	Log io.Writer
}

// Evaluate grades one student repository. It always returns a complete
// result: checkout or inspection failures degrade the result instead of
// erroring, so a batch never loses visibility of who failed.
func (e *Evaluator) Evaluate(ctx context.Context, student Student) score.EvaluationResult {
	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}
	e.logf("Evaluating %s (%s)", student.Name, vcs.Redact(student.RepoURL))

	params := score.Params{
		Student: student.Name,
		Partner: student.Partner,
		RepoURL: vcs.Redact(student.RepoURL),
	}

	checkout, cleanup, err := e.checkout(ctx, student.RepoURL)
	if err != nil {
		e.logf("Checkout failed for %s: %v", student.Name, err)
		result := score.Score(e.Rubric, evidence.Evidence{Unavailable: true}, params)
		result.Failure = fmt.Sprintf("repository unavailable: %v", err)
		return result
	}
	defer cleanup()

	if meta, err := e.Git.Metadata(ctx, checkout); err == nil {
		params.Commit = meta.Commit
		params.Branch = meta.Branch
		params.Dirty = meta.Dirty
	}

	ev := evidence.Collect(checkout)
	params.Adjustments = score.DetectAdjustments(ev)
	if penalty, ok := score.LatePenalty(e.LateDays); ok {
		params.Adjustments = append(params.Adjustments, penalty)
	}

	result := score.Score(e.Rubric, ev, params)
	e.logf("Scored %s: %.1f (%s)", student.Name, result.Grade, result.Status())

	if e.Augmenter != nil {
		text, err := e.Augmenter.Augment(ctx, result)
		if err != nil {
			// Best-effort enrichment: the numeric grade stands on its own.
			e.logf("Narrative unavailable for %s: %v", student.Name, err)
		} else {
			result.Narrative = text
		}
	}
	return result
}

// checkout clones the repository into a temporary directory and returns the
// path plus its cleanup function.
func (e *Evaluator) checkout(ctx context.Context, repoURL string) (string, func(), error) {
	dir, err := os.MkdirTemp("", "rubrica-checkout-")
	if err != nil {
		return "", nil, fmt.Errorf("create checkout dir: %w", err)
	}
	cleanup := func() { _ = os.RemoveAll(dir) }
	if err := e.Git.Clone(ctx, repoURL, dir); err != nil {
		cleanup()
		return "", nil, err
	}
	return dir, cleanup, nil
}

func (e *Evaluator) logf(format string, args ...any) {
	if e.Log == nil {
		return
	}
	fmt.Fprintf(e.Log, format+"\n", args...)
}
