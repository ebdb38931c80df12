package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"rubrica/internal/config"
	"rubrica/internal/llm"
	"rubrica/internal/vcs"
)

// check is one validation probe. Optional checks report but never fail
// the command.
type check struct {
	Name     string
	Optional bool
	Probe    func() (string, error)
}

// runValidate builds the handler for the validate command.
func runValidate(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		if err := fs.Parse(args); err != nil {
			return ExitUsage
		}
		if fs.NArg() > 0 {
			fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(stderr, "Validation failed:\n%s\n", err.Error())
			return ExitError
		}

		failed := false
		for _, c := range validationChecks(cfg) {
			detail, err := c.Probe()
			switch {
			case err == nil:
				fmt.Fprintf(stdout, "ok    %-18s %s\n", c.Name, detail)
			case c.Optional:
				fmt.Fprintf(stdout, "skip  %-18s %v\n", c.Name, err)
			default:
				fmt.Fprintf(stdout, "fail  %-18s %v\n", c.Name, err)
				failed = true
			}
		}

		if failed {
			return ExitError
		}
		fmt.Fprintln(stdout, "Configuration OK")
		return ExitOK
	}
}

func validationChecks(cfg config.Config) []check {
	return []check{
		{Name: "git", Probe: func() (string, error) {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return vcs.NewClient(cfg.GithubToken).Version(ctx)
		}},
		{Name: "output directory", Probe: func() (string, error) {
			if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
				return "", err
			}
			probe := filepath.Join(cfg.OutputDir, ".rubrica-probe")
			if err := os.WriteFile(probe, []byte("probe"), 0o644); err != nil {
				return "", fmt.Errorf("not writable: %w", err)
			}
			_ = os.Remove(probe)
			return cfg.OutputDir, nil
		}},
		{Name: "narrative provider", Optional: true, Probe: func() (string, error) {
			if !cfg.NarrativeConfigured() {
				return "", fmt.Errorf("LLM_PROVIDER not set")
			}
			provider, err := llm.New(llm.Settings{
				Provider: cfg.LLMProvider,
				APIKey:   cfg.LLMAPIKey,
				BaseURL:  cfg.LLMBaseURL,
				Model:    cfg.LLMModel,
				Timeout:  cfg.Timeout,
			})
			if err != nil {
				return "", err
			}
			return provider.Name(), nil
		}},
	}
}
