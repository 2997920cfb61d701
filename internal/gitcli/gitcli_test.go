package gitcli

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// initRepo creates a throwaway git repository with one commit.
func initRepo(t *testing.T) *CLI {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	dir := t.TempDir()
	g := &CLI{Dir: dir}
	ctx := context.Background()

	mustRun(t, dir, "init", "-b", "main")
	mustRun(t, dir, "config", "user.email", "test@example.com")
	mustRun(t, dir, "config", "user.name", "test")

	writeFile(t, dir, "base.txt", "hello\n")
	mustRun(t, dir, "add", "base.txt")
	mustRun(t, dir, "commit", "-m", "chore: initial commit")

	if !g.IsRepo(ctx) {
		t.Fatal("IsRepo = false for a fresh repo")
	}
	return g
}

func mustRun(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git %v: %v\n%s", args, err, out)
	}
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestStagedStateRoundTrip(t *testing.T) {
	g := initRepo(t)
	ctx := context.Background()

	// Nothing staged yet.
	stat, err := g.StagedStat(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if stat != "" {
		t.Errorf("StagedStat = %q for clean index, want empty", stat)
	}

	writeFile(t, g.Dir, "feature.go", "package feature\n\nfunc New() {}\n")
	mustRun(t, g.Dir, "add", "feature.go")

	stat, err = g.StagedStat(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if stat == "" {
		t.Fatal("StagedStat empty after staging a file")
	}

	diff, err := g.StagedDiff(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if diff == "" {
		t.Fatal("StagedDiff empty after staging a file")
	}
}

func TestHasUnstaged(t *testing.T) {
	g := initRepo(t)
	ctx := context.Background()

	unstaged, err := g.HasUnstaged(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if unstaged {
		t.Error("clean tree reported unstaged changes")
	}

	writeFile(t, g.Dir, "base.txt", "changed\n")
	unstaged, err = g.HasUnstaged(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !unstaged {
		t.Error("dirty tree not reported")
	}
}

func TestCurrentBranch(t *testing.T) {
	g := initRepo(t)
	branch, err := g.CurrentBranch(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if branch != "main" {
		t.Errorf("branch = %q, want main", branch)
	}
}

func TestRecentSubjects(t *testing.T) {
	g := initRepo(t)
	ctx := context.Background()

	writeFile(t, g.Dir, "a.txt", "a\n")
	mustRun(t, g.Dir, "add", "a.txt")
	mustRun(t, g.Dir, "commit", "-m", "feat: add a")

	subjects, err := g.RecentSubjects(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(subjects) != 2 {
		t.Fatalf("len(subjects) = %d, want 2", len(subjects))
	}
	if subjects[0] != "feat: add a" {
		t.Errorf("subjects[0] = %q, want newest first", subjects[0])
	}

	// Bounded count.
	subjects, err = g.RecentSubjects(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(subjects) != 1 {
		t.Errorf("len(subjects) = %d with n=1, want 1", len(subjects))
	}
}

func TestCommit(t *testing.T) {
	g := initRepo(t)
	ctx := context.Background()

	writeFile(t, g.Dir, "b.txt", "b\n")
	mustRun(t, g.Dir, "add", "b.txt")

	if err := g.Commit(ctx, "feat(b): add b", nil); err != nil {
		t.Fatal(err)
	}

	subjects, err := g.RecentSubjects(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if subjects[0] != "feat(b): add b" {
		t.Errorf("head subject = %q", subjects[0])
	}
}

func TestCommitScopedToPaths(t *testing.T) {
	g := initRepo(t)
	ctx := context.Background()

	writeFile(t, g.Dir, "one.txt", "1\n")
	writeFile(t, g.Dir, "two.txt", "2\n")
	mustRun(t, g.Dir, "add", "one.txt", "two.txt")

	if err := g.Commit(ctx, "feat: just one", []string{"one.txt"}); err != nil {
		t.Fatal(err)
	}

	// two.txt must still be staged.
	stat, err := g.StagedStat(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if stat == "" {
		t.Error("path-scoped commit consumed the whole index")
	}
}
