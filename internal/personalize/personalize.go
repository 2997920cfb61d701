// Package personalize adjusts generated commit-message candidates to match
// the user's historical style and the issue implied by the current branch.
// It is a pure transform stage: it never adds or drops candidates, only
// reorders and restyles them.
package personalize

import (
	"sort"
	"strings"
	"unicode"

	"github.com/papapumpkin/comet/internal/history"
	"github.com/papapumpkin/comet/internal/issue"
	"github.com/papapumpkin/comet/internal/message"
)

// Personalize re-ranks candidates by the profile's type preferences, adapts
// subject capitalization and punctuation to the historical majority, and
// weaves in the branch-derived issue reference. The output always has the
// same length as the input; an empty profile and an absent issue reference
// make it a no-op reorder.
func Personalize(candidates []message.Message, profile history.StyleProfile, ref *issue.Reference) []message.Message {
	out := make([]message.Message, len(candidates))
	copy(out, candidates)

	// Stable sort: ties keep the generator's original ranking.
	if len(profile.PreferredTypes) > 0 {
		sort.SliceStable(out, func(i, j int) bool {
			return profile.PreferredTypes[out[i].Type] > profile.PreferredTypes[out[j].Type]
		})
	}

	if !profile.Empty() {
		for i := range out {
			out[i].Subject = applyCapitalization(out[i].Subject, profile.Capitalization)
			out[i].Subject = applyPunctuation(out[i].Subject, profile.Punctuation)
		}
	}

	if ref != nil && !ref.None() {
		if ref.TypeHint != "" && len(out) > 0 && out[0].Type != ref.TypeHint {
			// The branch prefix is a stronger signal than heuristics, but
			// only the top candidate is overridden so alternatives survive.
			out[0].Type = ref.TypeHint
		}
		for i := range out {
			out[i].Body = appendRef(out[i].Body, ref.ID)
		}
	}

	return out
}

func applyCapitalization(subject string, c history.Capitalization) string {
	r := []rune(subject)
	if len(r) == 0 {
		return subject
	}
	switch c {
	case history.CapLower:
		r[0] = unicode.ToLower(r[0])
	case history.CapCapitalized:
		r[0] = unicode.ToUpper(r[0])
	default:
		return subject
	}
	return string(r)
}

func applyPunctuation(subject string, p history.Punctuation) string {
	switch p {
	case history.PunctWithPeriod:
		if subject != "" && !strings.HasSuffix(subject, ".") {
			return subject + "."
		}
	case history.PunctWithoutPeriod:
		return strings.TrimRight(subject, ".")
	}
	return subject
}

// appendRef adds a "Refs: <id>" trailer to the body, creating the body when
// absent.
func appendRef(body, id string) string {
	trailer := "Refs: " + id
	if body == "" {
		return trailer
	}
	return body + "\n\n" + trailer
}
