package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"time"

	"rubrica/internal/config"
	"rubrica/internal/runner"
	"rubrica/internal/vcs"
)

// runEvaluate builds the handler for the evaluate command.
func runEvaluate(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		student := fs.String("student", "", "Student name (defaults to the repository name)")
		partner := fs.String("partner", "", "Partner name for pair submissions")
		lateDays := fs.Int("late-days", 0, "Days past the deadline")
		rubricPath := fs.String("rubric", "", "Path to a rubric overlay file")
		outputDir := fs.String("output", "", "Override output directory")
		noNarrative := fs.Bool("no-narrative", false, "Skip LLM narrative feedback")
		verbose := fs.Bool("verbose", false, "Verbose logging")
		if err := fs.Parse(args); err != nil {
			return ExitUsage
		}

		if fs.NArg() != 1 {
			fmt.Fprintln(stderr, "Usage: rubrica evaluate <repo-url> [--student <name>]")
			return ExitUsage
		}
		name := *student
		if name == "" {
			name = vcs.RepoName(fs.Arg(0))
		}

		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(stderr, "Invalid configuration:\n%v\n", err)
			return ExitError
		}
		if *outputDir != "" {
			cfg.OutputDir = *outputDir
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

		result := evaluator.Evaluate(context.Background(), runner.Student{
			Name:    name,
			Partner: *partner,
			RepoURL: fs.Arg(0),
		})

		paths := runner.NewStudentPaths(cfg.OutputDir, name, time.Now())
		if err := runner.WriteEvaluation(paths, result); err != nil {
			fmt.Fprintf(stderr, "Failed to write outputs: %v\n", err)
			return ExitError
		}

		fmt.Fprintf(stdout, "%s: %.1f (%s)\n", result.Student, result.Grade, result.Status())
		if result.Failure != "" {
			fmt.Fprintf(stdout, "Detail: %s\n", result.Failure)
		}
		fmt.Fprintf(stdout, "Outputs: %s\n", paths.Dir)
		// A degraded evaluation still produced its outputs. Error exits
		// are reserved for configuration, setup, and write failures.
		return ExitOK
	}
}
