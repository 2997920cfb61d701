// Package partition groups changed files into concern buckets and decides
// whether a changeset is worth splitting into several atomic commits.
// Classification is a total, deterministic function: every file lands in
// exactly one bucket, so the groups always form a partition of the input.
package partition

import (
	"path"
	"sort"
	"strings"
)

// Concern names a bucket of related files.
type Concern string

const (
	ConcernTypes     Concern = "types"
	ConcernConfig    Concern = "config"
	ConcernFeature   Concern = "feature"
	ConcernComponent Concern = "component"
	ConcernAPI       Concern = "api"
	ConcernUtil      Concern = "util"
	ConcernStyle     Concern = "style"
	ConcernTest      Concern = "test"
	ConcernDocs      Concern = "docs"
	ConcernOther     Concern = "other"
)

// concernOrder ranks buckets for commit sequencing: foundations first
// (types, config), then implementation, then tests, docs, cosmetics.
var concernOrder = map[Concern]int{
	ConcernTypes:     0,
	ConcernConfig:    1,
	ConcernFeature:   2,
	ConcernComponent: 3,
	ConcernAPI:       4,
	ConcernUtil:      5,
	ConcernTest:      6,
	ConcernDocs:      7,
	ConcernStyle:     8,
	ConcernOther:     9,
}

// Group is one concern bucket of the partition.
type Group struct {
	Concern Concern
	Files   []string
	// SuggestedOrder sequences the resulting commits; lower commits earlier.
	SuggestedOrder int
}

// Result is the partitioner's decision for a changeset.
type Result struct {
	// ShouldSplit is true when the changeset is large and mixed enough that
	// separate atomic commits are worth proposing: at least four files
	// spanning at least two concerns.
	ShouldSplit bool
	// Groups holds the non-empty buckets ordered by SuggestedOrder. They are
	// always computed, even when ShouldSplit is false, so callers can show
	// the breakdown.
	Groups []Group
}

// splitMinFiles and splitMinConcerns are the thresholds for proposing a
// multi-commit split.
const (
	splitMinFiles    = 4
	splitMinConcerns = 2
)

// Partition classifies every file into exactly one concern bucket and
// decides whether to propose a split. Identical inputs always produce
// identical groupings.
func Partition(files []string) Result {
	buckets := make(map[Concern][]string)
	for _, f := range files {
		c := Classify(f)
		buckets[c] = append(buckets[c], f)
	}

	var groups []Group
	for concern, members := range buckets {
		groups = append(groups, Group{
			Concern:        concern,
			Files:          members,
			SuggestedOrder: concernOrder[concern],
		})
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].SuggestedOrder < groups[j].SuggestedOrder
	})

	return Result{
		ShouldSplit: len(files) >= splitMinFiles && len(groups) >= splitMinConcerns,
		Groups:      groups,
	}
}

// sourceExts are extensions classified as implementation code for the
// feature catch-all.
var sourceExts = map[string]bool{
	".go": true, ".ts": true, ".tsx": true, ".js": true, ".jsx": true,
	".py": true, ".rb": true, ".rs": true, ".java": true, ".kt": true,
	".c": true, ".cc": true, ".cpp": true, ".h": true, ".hpp": true,
	".cs": true, ".swift": true, ".php": true, ".vue": true, ".svelte": true,
}

var styleExts = map[string]bool{
	".css": true, ".scss": true, ".sass": true, ".less": true,
	".svg": true, ".png": true, ".gif": true, ".ico": true, ".woff": true,
}

var configExts = map[string]bool{
	".json": true, ".yaml": true, ".yml": true, ".toml": true, ".ini": true,
	".env": true,
}

// Classify assigns a single concern to a path. Checks run in priority
// order, so a types definition under __tests__ still counts as types and a
// test file under docs/ still counts as test.
func Classify(file string) Concern {
	p := strings.ToLower(strings.ReplaceAll(file, "\\", "/"))
	base := path.Base(p)
	ext := path.Ext(base)

	switch {
	case containsAny(p, "types", "interfaces") || strings.HasSuffix(base, ".d.ts"):
		return ConcernTypes
	case containsAny(p, "test", "spec", "__tests__"):
		return ConcernTest
	case strings.HasPrefix(base, "readme") || ext == ".md" || ext == ".rst" || hasSegment(p, "docs"):
		return ConcernDocs
	case strings.Contains(p, "config") || configExts[ext] || base == "package.json" || base == "makefile" || base == "dockerfile":
		return ConcernConfig
	case hasSegment(p, "api") || containsAny(p, "routes", "endpoint", "handler"):
		return ConcernAPI
	case styleExts[ext] || hasSegment(p, "styles") || hasSegment(p, "assets"):
		return ConcernStyle
	case hasSegment(p, "components") || hasSegment(p, "component"):
		return ConcernComponent
	case hasSegment(p, "utils") || hasSegment(p, "util") || hasSegment(p, "helpers"):
		return ConcernUtil
	case sourceExts[ext]:
		return ConcernFeature
	default:
		return ConcernOther
	}
}

func containsAny(p string, markers ...string) bool {
	for _, m := range markers {
		if strings.Contains(p, m) {
			return true
		}
	}
	return false
}

// hasSegment reports whether the path contains the given directory segment.
func hasSegment(p, seg string) bool {
	for _, s := range strings.Split(p, "/") {
		if s == seg {
			return true
		}
	}
	return false
}
