// Package issue extracts an issue reference and a commit-type hint from the
// current branch name. Resolution is best-effort: a branch that carries no
// recognizable identifier yields a reference with TrackerNone, which the
// personalizer treats as "no issue augmentation".
package issue

import (
	"regexp"
	"strings"

	"github.com/papapumpkin/comet/internal/message"
)

// Tracker identifies the issue-tracking system a reference belongs to.
type Tracker string

const (
	TrackerJira   Tracker = "jira"
	TrackerGitHub Tracker = "github"
	TrackerLinear Tracker = "linear"
	TrackerGitLab Tracker = "gitlab"
	TrackerNone   Tracker = "none"
)

// Reference is an issue identifier resolved from a branch name.
type Reference struct {
	// ID is the identifier as it should appear in a commit body, e.g.
	// "PROJ-123" or "#123".
	ID      string
	Tracker Tracker
	// TypeHint is the commit type implied by the branch prefix, or empty.
	TypeHint message.Type
}

// None reports whether the reference carries no usable identifier.
func (r Reference) None() bool {
	return r.Tracker == TrackerNone || r.ID == ""
}

var (
	jiraRe   = regexp.MustCompile(`\b([A-Z][A-Z0-9]+-\d+)\b`)
	linearRe = regexp.MustCompile(`\b([a-z]{2,5}-\d+)\b`)
	gitlabRe = regexp.MustCompile(`\bgl-(\d+)\b`)
	githubRe = regexp.MustCompile(`(?:^|[/#_-])(\d+)(?:[-_/]|$)`)
)

// branchTypeHints maps branch prefixes (the segment before the first slash)
// to commit types.
var branchTypeHints = map[string]message.Type{
	"feature":  message.TypeFeat,
	"feat":     message.TypeFeat,
	"fix":      message.TypeFix,
	"bugfix":   message.TypeFix,
	"hotfix":   message.TypeFix,
	"docs":     message.TypeDocs,
	"doc":      message.TypeDocs,
	"chore":    message.TypeChore,
	"refactor": message.TypeRefactor,
	"test":     message.TypeTest,
	"ci":       message.TypeCI,
	"build":    message.TypeBuild,
	"release":  message.TypeChore,
	"perf":     message.TypePerf,
}

// Resolve extracts an issue reference from a branch name. Jira-style keys
// win over Linear-style lowercase keys, which win over bare numbers treated
// as GitHub issues. The type hint comes from the branch prefix regardless of
// whether an identifier was found.
func Resolve(branch string) Reference {
	ref := Reference{Tracker: TrackerNone}
	branch = strings.TrimSpace(branch)
	if branch == "" {
		return ref
	}

	if prefix, _, ok := strings.Cut(branch, "/"); ok {
		ref.TypeHint = branchTypeHints[strings.ToLower(prefix)]
	}

	switch {
	case jiraRe.MatchString(branch):
		ref.ID = jiraRe.FindStringSubmatch(branch)[1]
		ref.Tracker = TrackerJira
	case gitlabRe.MatchString(strings.ToLower(branch)):
		ref.ID = "#" + gitlabRe.FindStringSubmatch(strings.ToLower(branch))[1]
		ref.Tracker = TrackerGitLab
	case linearRe.MatchString(strings.ToLower(branch)):
		ref.ID = linearRe.FindStringSubmatch(strings.ToLower(branch))[1]
		ref.Tracker = TrackerLinear
	case githubRe.MatchString(branch):
		ref.ID = "#" + githubRe.FindStringSubmatch(branch)[1]
		ref.Tracker = TrackerGitHub
	}
	return ref
}
