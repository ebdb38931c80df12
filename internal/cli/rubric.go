package cli

import (
	"flag"
	"fmt"
	"io"

	"rubrica/internal/rubric"
)

// runRubric builds the handler for the rubric command.
func runRubric(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		rubricPath := fs.String("rubric", "", "Path to a rubric overlay file")
		if err := fs.Parse(args); err != nil {
			return ExitUsage
		}

		r, err := rubric.Load(*rubricPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load rubric: %v\n", err)
			return ExitError
		}

		fmt.Fprintf(stdout, "%s\n", r.Name)
		if r.Description != "" {
			fmt.Fprintf(stdout, "%s\n", r.Description)
		}
		fmt.Fprintf(stdout, "Passing grade: %.1f\n\n", r.Passing())
		fmt.Fprintf(stdout, "%-16s %-38s %s\n", "ID", "CRITERION", "WEIGHT")
		for _, criterion := range r.Criteria {
			fmt.Fprintf(stdout, "%-16s %-38s %.0f%%\n", criterion.ID, criterion.Name, criterion.Weight*100)
		}
		return ExitOK
	}
}
