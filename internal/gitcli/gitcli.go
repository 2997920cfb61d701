// Package gitcli wraps the git CLI behind a narrow interface. Everything the
// suggestion pipeline needs from the repository — staged diff, stat summary,
// branch name, recent subjects — arrives through Querier, so the pipeline
// itself never shells out and tests can substitute a fake.
package gitcli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Querier abstracts git operations for testability.
type Querier interface {
	// IsRepo reports whether the working directory is inside a git repo.
	IsRepo(ctx context.Context) bool

	// StagedStat returns `git diff --cached --stat` output.
	StagedStat(ctx context.Context) (string, error)

	// StagedDiff returns `git diff --cached` output.
	StagedDiff(ctx context.Context) (string, error)

	// HasUnstaged reports whether the working tree has unstaged changes.
	HasUnstaged(ctx context.Context) (bool, error)

	// CurrentBranch returns the checked-out branch name.
	CurrentBranch(ctx context.Context) (string, error)

	// RecentSubjects returns up to n recent commit subjects, newest first.
	// A repo without commits yields an empty slice, not an error.
	RecentSubjects(ctx context.Context, n int) ([]string, error)

	// Commit creates a commit with the given message. When paths is
	// non-empty the commit is limited to those paths.
	Commit(ctx context.Context, msg string, paths []string) error

	// Push pushes the current branch to its upstream.
	Push(ctx context.Context) error
}

// CLI implements Querier using the git binary.
type CLI struct {
	// Dir is the working directory for git commands. Empty means cwd.
	Dir string
}

// run executes a git command and returns its trimmed stdout.
func (g *CLI) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = g.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git %s: %s: %w", strings.Join(args, " "), strings.TrimSpace(stderr.String()), err)
	}
	return strings.TrimSpace(stdout.String()), nil
}

// IsRepo reports whether the working directory is inside a git repo.
func (g *CLI) IsRepo(ctx context.Context) bool {
	if _, err := exec.LookPath("git"); err != nil {
		return false
	}
	_, err := g.run(ctx, "rev-parse", "--git-dir")
	return err == nil
}

// StagedStat returns the staged diff-stat summary.
func (g *CLI) StagedStat(ctx context.Context) (string, error) {
	// --stat-width keeps paths from being shortened with "...".
	out, err := g.run(ctx, "diff", "--cached", "--stat", "--stat-width=512")
	if err != nil {
		return "", fmt.Errorf("staged stat: %w", err)
	}
	return out, nil
}

// StagedDiff returns the raw staged diff.
func (g *CLI) StagedDiff(ctx context.Context) (string, error) {
	out, err := g.run(ctx, "diff", "--cached")
	if err != nil {
		return "", fmt.Errorf("staged diff: %w", err)
	}
	return out, nil
}

// HasUnstaged reports whether the working tree differs from the index.
// `git diff --quiet` exits 1 when differences exist.
func (g *CLI) HasUnstaged(ctx context.Context) (bool, error) {
	cmd := exec.CommandContext(ctx, "git", "diff", "--quiet")
	cmd.Dir = g.Dir
	err := cmd.Run()
	if err == nil {
		return false, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
		return true, nil
	}
	return false, fmt.Errorf("checking unstaged changes: %w", err)
}

// CurrentBranch returns the checked-out branch name.
func (g *CLI) CurrentBranch(ctx context.Context) (string, error) {
	out, err := g.run(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", fmt.Errorf("current branch: %w", err)
	}
	return out, nil
}

// RecentSubjects returns up to n recent commit subjects, newest first. An
// empty repository (no HEAD yet) yields an empty slice.
func (g *CLI) RecentSubjects(ctx context.Context, n int) ([]string, error) {
	out, err := g.run(ctx, "log", "-n", strconv.Itoa(n), "--format=%s")
	if err != nil {
		// No commits yet is not an error for profiling purposes.
		return nil, nil
	}
	if out == "" {
		return nil, nil
	}
	return strings.Split(out, "\n"), nil
}

// Commit creates a commit with the given message. When paths is non-empty,
// only those paths are committed.
func (g *CLI) Commit(ctx context.Context, msg string, paths []string) error {
	args := []string{"commit", "-m", msg}
	if len(paths) > 0 {
		args = append(args, "--")
		args = append(args, paths...)
	}
	if _, err := g.run(ctx, args...); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Push pushes the current branch.
func (g *CLI) Push(ctx context.Context) error {
	if _, err := g.run(ctx, "push"); err != nil {
		return fmt.Errorf("push: %w", err)
	}
	return nil
}

// GitDir returns the repository's .git directory path, used by the watch
// command to observe index changes.
func (g *CLI) GitDir(ctx context.Context) (string, error) {
	out, err := g.run(ctx, "rev-parse", "--absolute-git-dir")
	if err != nil {
		return "", fmt.Errorf("git dir: %w", err)
	}
	return out, nil
}
