package suggest

import (
	"reflect"
	"testing"

	"github.com/papapumpkin/comet/internal/analyze"
	"github.com/papapumpkin/comet/internal/message"
)

func TestSuggestAlwaysNonEmpty(t *testing.T) {
	tests := []struct {
		name string
		a    analyze.Analysis
	}{
		{"zero analysis", analyze.Analysis{}},
		{"one file no churn", analyze.Analysis{FilesChanged: []string{"main.go"}}},
		{"everything fires", analyze.Analysis{
			FilesChanged: []string{"__tests__/a.test.ts", "README.md", "config.json", "src/big.ts"},
			Additions:    100,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Suggest(tt.a)
			if len(got) < 1 || len(got) > 5 {
				t.Fatalf("len(Suggest) = %d, want 1..5", len(got))
			}
			for _, m := range got {
				if !m.Valid() {
					t.Errorf("invalid candidate: %+v", m)
				}
			}
		})
	}
}

func TestSuggestDeterministic(t *testing.T) {
	a := analyze.Analysis{
		FilesChanged: []string{"src/components/Button.tsx", "src/components/Input.tsx", "docs/README.md"},
		Additions:    60,
		Deletions:    10,
	}
	first := Suggest(a)
	second := Suggest(a)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Suggest is not idempotent:\n%v\n%v", first, second)
	}
}

func TestSuggestFeatForDominantAdditions(t *testing.T) {
	a := analyze.Analysis{
		FilesChanged: []string{"src/components/Button.tsx"},
		Additions:    45,
		Deletions:    12,
	}
	got := Suggest(a)
	found := false
	for _, m := range got {
		if m.Type == message.TypeFeat && m.Scope == "components" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a feat candidate scoped to components, got %v", got)
	}
}

func TestSuggestRefactorForDominantDeletions(t *testing.T) {
	a := analyze.Analysis{
		FilesChanged: []string{"legacy/old.go"},
		Additions:    2,
		Deletions:    80,
	}
	got := Suggest(a)
	if got[0].Type != message.TypeRefactor {
		t.Errorf("first candidate = %v, want refactor", got[0])
	}
}

func TestSuggestMatchingRulesAccumulate(t *testing.T) {
	a := analyze.Analysis{
		FilesChanged: []string{"pkg/thing_test.go", "README.md", "config.yaml"},
	}
	got := Suggest(a)

	types := make(map[message.Type]bool)
	for _, m := range got {
		types[m.Type] = true
	}
	// config.yaml matches the "config" marker, thing_test.go the test marker,
	// README.md the docs marker.
	for _, want := range []message.Type{message.TypeTest, message.TypeDocs, message.TypeChore} {
		if !types[want] {
			t.Errorf("missing %s candidate in %v", want, got)
		}
	}
}

func TestSuggestFallback(t *testing.T) {
	got := Suggest(analyze.Analysis{FilesChanged: []string{"src/a.go"}})
	if len(got) != 1 || got[0].Type != message.TypeFeat {
		t.Errorf("fallback = %v, want single generic feat", got)
	}
}

func TestDominantToken(t *testing.T) {
	tests := []struct {
		name  string
		files []string
		want  string
	}{
		{"skips generic segments", []string{"src/components/Button.tsx"}, "components"},
		{"most frequent wins", []string{"api/a.go", "api/b.go", "db/c.go"}, "api"},
		{"tie broken by first occurrence", []string{"api/a.go", "db/b.go"}, "api"},
		{"extension fallback", []string{"a.go", "b.go", "c.md"}, "go"},
		{"empty input", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DominantToken(tt.files); got != tt.want {
				t.Errorf("DominantToken(%v) = %q, want %q", tt.files, got, tt.want)
			}
		})
	}
}
