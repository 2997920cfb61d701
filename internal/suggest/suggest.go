// Package suggest is the deterministic fallback for commit-message
// generation. It maps a changeset analysis to 1-5 conventional-commit
// candidates using an ordered chain of independent rules, so the tool still
// produces useful suggestions when no AI provider is configured or the
// provider call fails.
package suggest

import (
	"fmt"
	"path"
	"strings"

	"github.com/papapumpkin/comet/internal/analyze"
	"github.com/papapumpkin/comet/internal/message"
)

// maxCandidates bounds the suggestion list.
const maxCandidates = 5

// Rule is a single named predicate/builder pair in the suggestion chain.
// Rules are independent: every matching rule contributes one candidate.
type Rule struct {
	Name  string
	Match func(a analyze.Analysis) bool
	Build func(a analyze.Analysis) message.Message
}

// Rules returns the suggestion chain in evaluation order. Earlier rules
// produce higher-confidence candidates.
func Rules() []Rule {
	return []Rule{
		{
			Name: "large-addition",
			Match: func(a analyze.Analysis) bool {
				return a.Additions > 2*a.Deletions && a.Additions > 20
			},
			Build: func(a analyze.Analysis) message.Message {
				scope := DominantToken(a.FilesChanged)
				return message.Message{
					Type:    message.TypeFeat,
					Scope:   scope,
					Subject: fmt.Sprintf("add %s functionality", subjectTopic(scope)),
				}
			},
		},
		{
			Name: "large-removal",
			Match: func(a analyze.Analysis) bool {
				return a.Deletions > 2*a.Additions && a.Deletions > 20
			},
			Build: func(a analyze.Analysis) message.Message {
				scope := DominantToken(a.FilesChanged)
				return message.Message{
					Type:    message.TypeRefactor,
					Scope:   scope,
					Subject: fmt.Sprintf("remove unused %s code", subjectTopic(scope)),
				}
			},
		},
		{
			Name: "tests-touched",
			Match: func(a analyze.Analysis) bool {
				return anyPathContains(a.FilesChanged, testMarkers)
			},
			Build: func(a analyze.Analysis) message.Message {
				return message.Message{
					Type:    message.TypeTest,
					Scope:   DominantToken(a.FilesChanged),
					Subject: "update tests",
				}
			},
		},
		{
			Name: "docs-touched",
			Match: func(a analyze.Analysis) bool {
				return anyPathContains(a.FilesChanged, docMarkers)
			},
			Build: func(a analyze.Analysis) message.Message {
				return message.Message{
					Type:    message.TypeDocs,
					Subject: "update documentation",
				}
			},
		},
		{
			Name: "config-touched",
			Match: func(a analyze.Analysis) bool {
				return anyPathContains(a.FilesChanged, configMarkers)
			},
			Build: func(a analyze.Analysis) message.Message {
				return message.Message{
					Type:    message.TypeChore,
					Subject: "update configuration",
				}
			},
		},
	}
}

// Suggest maps an analysis to an ordered candidate list. Every matching rule
// contributes one candidate, in rule order, truncated to five. When no rule
// fires a generic feat candidate guarantees a non-empty result. The function
// is pure: identical analyses yield identical output.
func Suggest(a analyze.Analysis) []message.Message {
	var out []message.Message
	for _, r := range Rules() {
		if r.Match(a) {
			out = append(out, r.Build(a))
		}
	}
	if len(out) == 0 {
		out = append(out, message.Message{
			Type:    message.TypeFeat,
			Scope:   DominantToken(a.FilesChanged),
			Subject: "update implementation",
		})
	}
	if len(out) > maxCandidates {
		out = out[:maxCandidates]
	}
	return out
}

var (
	testMarkers   = []string{"test", "spec", "__tests__"}
	docMarkers    = []string{"readme", ".md"}
	configMarkers = []string{"config", ".json", "package.json"}
)

// genericSegments are path segments too common to distinguish a changeset.
var genericSegments = map[string]bool{
	"src": true, "lib": true, "app": true, "pkg": true, "internal": true,
}

func anyPathContains(files, markers []string) bool {
	for _, f := range files {
		lower := strings.ToLower(f)
		for _, m := range markers {
			if strings.Contains(lower, m) {
				return true
			}
		}
	}
	return false
}

// DominantToken picks the most frequent distinguishing token among the
// changed paths: directory segments first (skipping generic ones like src),
// falling back to file-type tokens when no directory distinguishes the set.
// Ties break toward first occurrence, keeping the result deterministic.
func DominantToken(files []string) string {
	if tok := mostFrequent(files, directoryTokens); tok != "" {
		return tok
	}
	return mostFrequent(files, fileTypeTokens)
}

// directoryTokens yields the non-generic directory segments of a path.
func directoryTokens(file string) []string {
	dir := path.Dir(strings.ReplaceAll(file, "\\", "/"))
	if dir == "." || dir == "/" {
		return nil
	}
	var toks []string
	for _, seg := range strings.Split(dir, "/") {
		if seg == "" || genericSegments[strings.ToLower(seg)] {
			continue
		}
		toks = append(toks, seg)
	}
	return toks
}

// fileTypeTokens yields the extension (without dot) or, for extension-less
// files, the base name.
func fileTypeTokens(file string) []string {
	base := path.Base(strings.ReplaceAll(file, "\\", "/"))
	if ext := path.Ext(base); ext != "" && ext != base {
		return []string{strings.TrimPrefix(ext, ".")}
	}
	if base == "." || base == "" {
		return nil
	}
	return []string{base}
}

// mostFrequent counts tokens across files and returns the most frequent one,
// breaking ties by first occurrence order.
func mostFrequent(files []string, tokens func(string) []string) string {
	counts := make(map[string]int)
	var order []string
	for _, f := range files {
		for _, tok := range tokens(f) {
			if counts[tok] == 0 {
				order = append(order, tok)
			}
			counts[tok]++
		}
	}
	best := ""
	for _, tok := range order {
		if best == "" || counts[tok] > counts[best] {
			best = tok
		}
	}
	return best
}

// subjectTopic renders a scope token as a subject phrase, defaulting when no
// scope could be inferred.
func subjectTopic(scope string) string {
	if scope == "" {
		return "new"
	}
	return scope
}
