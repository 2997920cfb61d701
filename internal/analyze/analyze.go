// Package analyze turns raw git output (staged diff, diff-stat summary) into
// a normalized snapshot of the changeset. It is a pure transformation over
// the provided strings: obtaining them from git belongs to the gitcli
// package, and malformed input degrades to zero counts and empty lists
// rather than an error.
package analyze

import (
	"regexp"
	"strings"
)

// Analysis is a normalized snapshot of a changeset.
type Analysis struct {
	// FilesChanged lists changed paths in the order the diff-stat reported
	// them.
	FilesChanged []string

	// Additions and Deletions count changed lines in the diff: lines
	// prefixed with a single + or -, excluding the +++/--- file headers.
	Additions int
	Deletions int

	// HasStaged is true when the diff-stat output is non-empty.
	HasStaged   bool
	HasUnstaged bool

	// Diff is the raw diff text, kept for prompting. Consumers may truncate
	// it; analysis itself accepts diffs of any length.
	Diff string
}

// statLineRe matches a diff-stat file line of the form
// " path/to/file.go | 12 +++++----". The path is everything before the
// first run of whitespace followed by a pipe.
var statLineRe = regexp.MustCompile(`^\s*(.+?)\s+\|`)

// Analyze parses the diff-stat and diff output into an Analysis. It never
// fails: lines that do not match the expected shapes are ignored, so empty
// or malformed input yields zero counts and an empty file list.
func Analyze(statOutput, diffOutput string, hasUnstaged bool) Analysis {
	a := Analysis{
		FilesChanged: parseStatFiles(statOutput),
		Diff:         diffOutput,
		HasStaged:    strings.TrimSpace(statOutput) != "",
		HasUnstaged:  hasUnstaged,
	}
	a.Additions, a.Deletions = countDiffLines(diffOutput)
	return a
}

// parseStatFiles extracts changed paths from diff-stat output. Summary lines
// ("3 files changed, ...") carry no pipe and are skipped.
func parseStatFiles(statOutput string) []string {
	var files []string
	for _, line := range strings.Split(statOutput, "\n") {
		m := statLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		path := strings.TrimSpace(m[1])
		if path == "" {
			continue
		}
		files = append(files, path)
	}
	return files
}

// countDiffLines counts added and deleted lines: a single leading + or -,
// not the ++/-- runs that open the +++/--- file header lines.
func countDiffLines(diff string) (additions, deletions int) {
	for _, line := range strings.Split(diff, "\n") {
		switch {
		case strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "++"):
			additions++
		case strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "--"):
			deletions++
		}
	}
	return additions, deletions
}
