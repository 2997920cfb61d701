// Package history mines recent commit subjects for a user's stylistic
// fingerprint: preferred commit types, subject length, capitalization,
// punctuation, and recurring phrases. The personalizer uses the resulting
// profile to re-rank and restyle generated candidates. An empty or
// unreadable history always yields a neutral profile, never an error.
package history

import (
	"sort"
	"strings"
	"unicode"

	"github.com/papapumpkin/comet/internal/message"
)

// SampleSize is the maximum number of recent commits considered.
const SampleSize = 50

// Capitalization classifies how historical subjects start.
type Capitalization string

const (
	CapLower       Capitalization = "lower"
	CapCapitalized Capitalization = "capitalized"
	CapMixed       Capitalization = "mixed"
)

// Punctuation classifies how historical subjects end.
type Punctuation string

const (
	PunctWithPeriod    Punctuation = "with-period"
	PunctWithoutPeriod Punctuation = "without-period"
	PunctMixed         Punctuation = "mixed"
)

// maxPhrases bounds the retained common-phrase list.
const maxPhrases = 10

// StyleProfile is a statistical fingerprint of a user's commit history.
type StyleProfile struct {
	// PreferredTypes maps each observed commit type to its relative
	// frequency among parseable subjects. Weights sum to 1, or the map is
	// empty when no subject carried a recognizable type.
	PreferredTypes map[message.Type]float64

	// AvgSubjectLength is the mean character length of sampled subjects
	// after stripping the type(scope): prefix.
	AvgSubjectLength float64

	Capitalization Capitalization
	Punctuation    Punctuation

	// CommonPhrases holds recurring multi-word phrases, most frequent first.
	CommonPhrases []string
}

// Empty reports whether the profile carries no history signal. The
// personalizer treats an empty profile as "no personalization available".
func (p StyleProfile) Empty() bool {
	return len(p.PreferredTypes) == 0 && p.AvgSubjectLength == 0 && len(p.CommonPhrases) == 0
}

// BuildProfile computes a StyleProfile from recent commit subjects, most
// recent first. At most SampleSize subjects are considered; fewer is fine,
// and an empty slice yields a neutral profile.
func BuildProfile(subjects []string) StyleProfile {
	if len(subjects) > SampleSize {
		subjects = subjects[:SampleSize]
	}

	p := StyleProfile{
		PreferredTypes: map[message.Type]float64{},
		Capitalization: CapMixed,
		Punctuation:    PunctMixed,
	}

	typeCounts := make(map[message.Type]int)
	parseable := 0
	var stripped []string

	for _, s := range subjects {
		typ, _, rest, ok := message.ParseHeader(s)
		if ok {
			typeCounts[typ]++
			parseable++
		}
		// Length/capitalization/punctuation stats include subjects without a
		// recognizable type prefix.
		stripped = append(stripped, strings.TrimSpace(rest))
	}

	if parseable > 0 {
		for typ, n := range typeCounts {
			p.PreferredTypes[typ] = float64(n) / float64(parseable)
		}
	}

	total := 0
	for _, s := range stripped {
		total += len(s)
	}
	if len(stripped) > 0 {
		p.AvgSubjectLength = float64(total) / float64(len(stripped))
	}

	p.Capitalization = voteCapitalization(stripped)
	p.Punctuation = votePunctuation(stripped)
	p.CommonPhrases = commonPhrases(stripped)
	return p
}

// voteCapitalization takes a majority vote over subject first letters.
// A tie, or no letter-initial subjects, counts as mixed.
func voteCapitalization(subjects []string) Capitalization {
	lower, upper := 0, 0
	for _, s := range subjects {
		r := firstLetter(s)
		switch {
		case unicode.IsLower(r):
			lower++
		case unicode.IsUpper(r):
			upper++
		}
	}
	switch {
	case lower > upper:
		return CapLower
	case upper > lower:
		return CapCapitalized
	default:
		return CapMixed
	}
}

// firstLetter returns the leading rune when it is a letter, 0 otherwise.
func firstLetter(s string) rune {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return r
		}
		break
	}
	return 0
}

// votePunctuation takes a majority vote over trailing periods.
func votePunctuation(subjects []string) Punctuation {
	with, without := 0, 0
	for _, s := range subjects {
		if s == "" {
			continue
		}
		if strings.HasSuffix(s, ".") {
			with++
		} else {
			without++
		}
	}
	switch {
	case with > without:
		return PunctWithPeriod
	case without > with:
		return PunctWithoutPeriod
	default:
		return PunctMixed
	}
}

// commonPhrases extracts word bigrams and trigrams that occur in at least
// two distinct subjects, compared case-insensitively. At most maxPhrases are
// kept, ranked by frequency and then by recency of first appearance
// (subjects arrive most recent first).
func commonPhrases(subjects []string) []string {
	type stat struct {
		count     int // distinct subjects containing the phrase
		firstSeen int // index of the most recent subject containing it
	}
	stats := make(map[string]*stat)

	for i, s := range subjects {
		words := strings.Fields(strings.ToLower(s))
		seen := make(map[string]bool)
		for n := 2; n <= 3; n++ {
			for j := 0; j+n <= len(words); j++ {
				phrase := strings.Join(words[j:j+n], " ")
				if seen[phrase] {
					continue
				}
				seen[phrase] = true
				if st, ok := stats[phrase]; ok {
					st.count++
				} else {
					stats[phrase] = &stat{count: 1, firstSeen: i}
				}
			}
		}
	}

	var phrases []string
	for phrase, st := range stats {
		if st.count >= 2 {
			phrases = append(phrases, phrase)
		}
	}
	sort.Slice(phrases, func(a, b int) bool {
		sa, sb := stats[phrases[a]], stats[phrases[b]]
		if sa.count != sb.count {
			return sa.count > sb.count
		}
		if sa.firstSeen != sb.firstSeen {
			return sa.firstSeen < sb.firstSeen
		}
		return phrases[a] < phrases[b]
	})
	if len(phrases) > maxPhrases {
		phrases = phrases[:maxPhrases]
	}
	return phrases
}
