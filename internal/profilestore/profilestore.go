// Package profilestore persists the last computed style profile as a TOML
// snapshot under .comet/. The snapshot warm-starts the in-process cache on
// the next run; the cache's TTL still decides whether it is fresh enough to
// reuse.
package profilestore

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/papapumpkin/comet/internal/history"
	"github.com/papapumpkin/comet/internal/message"
)

// DefaultPath is the conventional snapshot location.
const DefaultPath = ".comet/profile.toml"

// snapshot is the on-disk TOML shape.
type snapshot struct {
	BuiltAt          time.Time          `toml:"built_at"`
	PreferredTypes   map[string]float64 `toml:"preferred_types,omitempty"`
	AvgSubjectLength float64            `toml:"avg_subject_length,omitempty"`
	Capitalization   string             `toml:"capitalization,omitempty"`
	Punctuation      string             `toml:"punctuation,omitempty"`
	CommonPhrases    []string           `toml:"common_phrases,omitempty"`
}

// Load reads a profile snapshot from path. A missing file yields an empty
// profile and zero time with no error, so callers can proceed as if no
// history were available.
func Load(path string) (history.StyleProfile, time.Time, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return history.StyleProfile{}, time.Time{}, nil
		}
		return history.StyleProfile{}, time.Time{}, fmt.Errorf("reading profile snapshot: %w", err)
	}

	var s snapshot
	if err := toml.Unmarshal(data, &s); err != nil {
		return history.StyleProfile{}, time.Time{}, fmt.Errorf("parsing profile snapshot: %w", err)
	}

	p := history.StyleProfile{
		AvgSubjectLength: s.AvgSubjectLength,
		Capitalization:   history.Capitalization(s.Capitalization),
		Punctuation:      history.Punctuation(s.Punctuation),
		CommonPhrases:    s.CommonPhrases,
		PreferredTypes:   map[message.Type]float64{},
	}
	for typ, freq := range s.PreferredTypes {
		p.PreferredTypes[message.Type(typ)] = freq
	}
	return p, s.BuiltAt, nil
}

// Save writes a profile snapshot to path, creating parent directories as
// needed.
func Save(path string, p history.StyleProfile, builtAt time.Time) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	s := snapshot{
		BuiltAt:          builtAt,
		AvgSubjectLength: p.AvgSubjectLength,
		Capitalization:   string(p.Capitalization),
		Punctuation:      string(p.Punctuation),
		CommonPhrases:    p.CommonPhrases,
		PreferredTypes:   map[string]float64{},
	}
	for typ, freq := range p.PreferredTypes {
		s.PreferredTypes[string(typ)] = freq
	}

	data, err := toml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshaling profile snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing profile snapshot: %w", err)
	}
	return nil
}
