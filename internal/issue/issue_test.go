package issue

import (
	"testing"

	"github.com/papapumpkin/comet/internal/message"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		branch      string
		wantID      string
		wantTracker Tracker
		wantHint    message.Type
	}{
		{"feature/PROJ-123-login", "PROJ-123", TrackerJira, message.TypeFeat},
		{"fix/123-null-check", "#123", TrackerGitHub, message.TypeFix},
		{"hotfix/ABC-9", "ABC-9", TrackerJira, message.TypeFix},
		{"feature/eng-142-add-auth", "eng-142", TrackerLinear, message.TypeFeat},
		{"chore/gl-55-cleanup", "#55", TrackerGitLab, message.TypeChore},
		{"docs/update-readme", "", TrackerNone, message.TypeDocs},
		{"main", "", TrackerNone, ""},
		{"", "", TrackerNone, ""},
	}

	for _, tt := range tests {
		t.Run(tt.branch, func(t *testing.T) {
			ref := Resolve(tt.branch)
			if ref.ID != tt.wantID || ref.Tracker != tt.wantTracker || ref.TypeHint != tt.wantHint {
				t.Errorf("Resolve(%q) = {%q %v %v}, want {%q %v %v}",
					tt.branch, ref.ID, ref.Tracker, ref.TypeHint,
					tt.wantID, tt.wantTracker, tt.wantHint)
			}
		})
	}
}

func TestNone(t *testing.T) {
	if !Resolve("main").None() {
		t.Error("main branch should resolve to a none reference")
	}
	if Resolve("feature/PROJ-1").None() {
		t.Error("jira branch should resolve to a usable reference")
	}
}
