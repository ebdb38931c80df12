// Package vcs checks out student repositories and reads their git metadata.
package vcs

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"os/exec"
	"path"
	"strings"
)

// Metadata captures checkout identity for the evaluation record.
type Metadata struct {
	Name   string
	Commit string
	Branch string
	Dirty  bool
}

// gitRunner executes git commands.
type gitRunner interface {
	Run(ctx context.Context, dir string, args ...string) (string, error)
}

// execGitRunner invokes git via the system binary.
type execGitRunner struct{}

// Run executes a git command and returns trimmed stdout.
func (execGitRunner) Run(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	if dir != "" {
		cmd.Dir = dir
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = "no stderr"
		}
		return "", fmt.Errorf("git %s: %w (%s)", strings.Join(args, " "), err, msg)
	}
	return strings.TrimSpace(stdout.String()), nil
}

// Client coordinates git operations and allows dependency injection.
type Client struct {
	runner gitRunner
	token  string
}

// NewClient constructs a git client. The token, when set, authenticates
// HTTPS clones of private repositories.
func NewClient(token string) Client {
	return Client{runner: execGitRunner{}, token: token}
}

// newClientWithRunner is the test seam for substituting the git binary.
func newClientWithRunner(runner gitRunner, token string) Client {
	return Client{runner: runner, token: token}
}

// Clone performs a shallow checkout of repoURL into dest. The caller's
// context bounds the whole network operation.
func (c Client) Clone(ctx context.Context, repoURL, dest string) error {
	cloneURL, err := c.authURL(repoURL)
	if err != nil {
		return err
	}
	if _, err := c.runner.Run(ctx, "", "clone", "--depth", "1", cloneURL, dest); err != nil {
		// Keep the token out of surfaced errors.
		return fmt.Errorf("clone %s: %w", Redact(repoURL), redactErr(err, cloneURL, repoURL))
	}
	return nil
}

// Metadata reads commit and branch information from a checkout.
func (c Client) Metadata(ctx context.Context, dir string) (Metadata, error) {
	commit, err := c.runner.Run(ctx, dir, "rev-parse", "HEAD")
	if err != nil {
		return Metadata{}, fmt.Errorf("resolve HEAD: %w", err)
	}
	branch, err := c.runner.Run(ctx, dir, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return Metadata{}, fmt.Errorf("resolve branch: %w", err)
	}
	status, err := c.runner.Run(ctx, dir, "status", "--porcelain")
	if err != nil {
		return Metadata{}, fmt.Errorf("read status: %w", err)
	}
	return Metadata{
		Name:   RepoName(dir),
		Commit: commit,
		Branch: branch,
		Dirty:  status != "",
	}, nil
}

// Version reports the installed git version, for connectivity checks.
func (c Client) Version(ctx context.Context) (string, error) {
	return c.runner.Run(ctx, "", "--version")
}

// authURL injects the access token into HTTPS URLs for private repos.
func (c Client) authURL(repoURL string) (string, error) {
	parsed, err := url.Parse(strings.TrimSpace(repoURL))
	if err != nil {
		return "", fmt.Errorf("parse repository URL: %w", err)
	}
	if parsed.Scheme != "https" && parsed.Scheme != "http" {
		return "", fmt.Errorf("unsupported repository URL scheme %q", parsed.Scheme)
	}
	if c.token != "" {
		parsed.User = url.UserPassword("x-access-token", c.token)
	}
	return parsed.String(), nil
}

// redactErr strips the credentialed URL from git's error text.
func redactErr(err error, cloneURL, repoURL string) error {
	msg := strings.ReplaceAll(err.Error(), cloneURL, Redact(repoURL))
	return fmt.Errorf("%s", msg)
}

// Redact normalizes a repository URL for logs and reports.
func Redact(repoURL string) string {
	parsed, err := url.Parse(strings.TrimSpace(repoURL))
	if err != nil {
		return repoURL
	}
	parsed.User = nil
	return parsed.String()
}

// RepoName derives a repository name from a URL or checkout path.
func RepoName(ref string) string {
	trimmed := strings.TrimSuffix(strings.TrimRight(ref, "/"), ".git")
	return path.Base(strings.ReplaceAll(trimmed, "\\", "/"))
}
