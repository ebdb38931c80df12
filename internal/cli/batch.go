package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"rubrica/internal/config"
	"rubrica/internal/runner"
)

// runBatch builds the handler for the batch command.
func runBatch(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		csvPath := fs.String("csv", "", "Roster CSV file (required)")
		outputDir := fs.String("output", "", "Override output directory")
		parallel := fs.Int("parallel", 0, "Concurrent evaluations (default from environment)")
		lateDays := fs.Int("late-days", 0, "Days past the deadline, applied to every student")
		rubricPath := fs.String("rubric", "", "Path to a rubric overlay file")
		noNarrative := fs.Bool("no-narrative", false, "Skip LLM narrative feedback")
		verbose := fs.Bool("verbose", false, "Verbose logging")
		if err := fs.Parse(args); err != nil {
			return ExitUsage
		}

		if *csvPath == "" {
			fmt.Fprintln(stderr, "Missing --csv")
			return ExitUsage
		}

		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(stderr, "Invalid configuration:\n%v\n", err)
			return ExitError
		}
		if *outputDir != "" {
			cfg.OutputDir = *outputDir
		}
		if *parallel > 0 {
			cfg.Parallelism = *parallel
		}

		students, warnings, err := runner.LoadRoster(*csvPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load roster: %v\n", err)
			return ExitError
		}
		for _, warning := range warnings {
			fmt.Fprintf(stderr, "Roster warning: %s\n", warning)
		}
		if len(students) == 0 {
			fmt.Fprintln(stderr, "Roster contains no students")
			return ExitError
		}

		evaluator, err := newEvaluator(cfg, evaluatorOptions{
			RubricPath:  *rubricPath,
			LateDays:    *lateDays,
			NoNarrative: *noNarrative,
			Verbose:     *verbose,
		}, stdout)
		if err != nil {
			fmt.Fprintf(stderr, "Setup failed: %v\n", err)
			return ExitError
		}

		if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
			fmt.Fprintf(stderr, "Failed to create output directory: %v\n", err)
			return ExitError
		}

		fmt.Fprintf(stdout, "Evaluating %d students (parallelism %d)\n", len(students), cfg.Parallelism)
		now := time.Now()
		results := runner.RunBatch(context.Background(), evaluator, students, cfg.Parallelism)

		writeFailures := 0
		for i, result := range results {
			paths := runner.NewStudentPaths(cfg.OutputDir, students[i].Name, now)
			if err := runner.WriteEvaluation(paths, result); err != nil {
				fmt.Fprintf(stderr, "Failed to write outputs for %s: %v\n", students[i].Name, err)
				writeFailures++
			}
		}

		summary := runner.Summarize(results)
		batchPaths := runner.NewBatchPaths(cfg.OutputDir, now)
		if err := runner.WriteBatchOutputs(batchPaths, results, summary); err != nil {
			fmt.Fprintf(stderr, "Failed to write batch outputs: %v\n", err)
			return ExitError
		}

		fmt.Fprintf(stdout, "Evaluated %d/%d, passed %d (%.0f%%)\n",
			summary.Evaluated, summary.Attempted, summary.Passed, summary.PassRate*100)
		if summary.Evaluated > 0 {
			fmt.Fprintf(stdout, "Grades: mean %.2f, min %.1f, max %.1f\n", summary.Mean, summary.Min, summary.Max)
		}
		fmt.Fprintf(stdout, "Grade sheet: %s\n", batchPaths.GradesCSV)
		fmt.Fprintf(stdout, "Statistics: %s\n", batchPaths.StatsJSON)
		if writeFailures > 0 {
			return ExitError
		}
		return ExitOK
	}
}
