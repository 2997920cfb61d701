package personalize

import (
	"testing"

	"github.com/papapumpkin/comet/internal/history"
	"github.com/papapumpkin/comet/internal/issue"
	"github.com/papapumpkin/comet/internal/message"
)

func candidates() []message.Message {
	return []message.Message{
		{Type: message.TypeFeat, Subject: "add widget"},
		{Type: message.TypeTest, Subject: "update tests"},
		{Type: message.TypeFix, Subject: "patch crash"},
	}
}

func TestLengthPreserved(t *testing.T) {
	profiles := []history.StyleProfile{
		{},
		{PreferredTypes: map[message.Type]float64{message.TypeFix: 1}},
	}
	refs := []*issue.Reference{
		nil,
		{Tracker: issue.TrackerNone},
		{ID: "#7", Tracker: issue.TrackerGitHub, TypeHint: message.TypeFix},
	}

	for _, p := range profiles {
		for _, r := range refs {
			for _, in := range [][]message.Message{nil, candidates()} {
				out := Personalize(in, p, r)
				if len(out) != len(in) {
					t.Errorf("output length %d != input length %d (profile=%+v ref=%+v)",
						len(out), len(in), p, r)
				}
			}
		}
	}
}

func TestReRankByPreferredTypes(t *testing.T) {
	profile := history.StyleProfile{
		PreferredTypes: map[message.Type]float64{
			message.TypeFix:  0.6,
			message.TypeFeat: 0.3,
			message.TypeTest: 0.1,
		},
		AvgSubjectLength: 20,
	}

	out := Personalize(candidates(), profile, nil)
	want := []message.Type{message.TypeFix, message.TypeFeat, message.TypeTest}
	for i, typ := range want {
		if out[i].Type != typ {
			t.Errorf("out[%d].Type = %v, want %v", i, out[i].Type, typ)
		}
	}
}

func TestStableOrderOnTies(t *testing.T) {
	in := []message.Message{
		{Type: message.TypeFeat, Subject: "first"},
		{Type: message.TypeFeat, Subject: "second"},
		{Type: message.TypeDocs, Subject: "third"},
	}
	profile := history.StyleProfile{
		PreferredTypes: map[message.Type]float64{message.TypeFeat: 1},
	}

	out := Personalize(in, profile, nil)
	if out[0].Subject != "first" || out[1].Subject != "second" {
		t.Errorf("tie order not preserved: %v", out)
	}
}

func TestStyleConformance(t *testing.T) {
	in := []message.Message{{Type: message.TypeFeat, Subject: "Add widget."}}
	profile := history.StyleProfile{
		PreferredTypes:   map[message.Type]float64{message.TypeFeat: 1},
		AvgSubjectLength: 15,
		Capitalization:   history.CapLower,
		Punctuation:      history.PunctWithoutPeriod,
	}

	out := Personalize(in, profile, nil)
	if out[0].Subject != "add widget" {
		t.Errorf("Subject = %q, want %q", out[0].Subject, "add widget")
	}
}

func TestEmptyProfileLeavesStyle(t *testing.T) {
	in := []message.Message{{Type: message.TypeFeat, Subject: "Add widget."}}
	out := Personalize(in, history.StyleProfile{}, nil)
	if out[0].Subject != "Add widget." {
		t.Errorf("empty profile should not restyle, got %q", out[0].Subject)
	}
}

func TestIssueAugmentation(t *testing.T) {
	ref := &issue.Reference{ID: "PROJ-9", Tracker: issue.TrackerJira, TypeHint: message.TypeFix}
	out := Personalize(candidates(), history.StyleProfile{}, ref)

	if out[0].Type != message.TypeFix {
		t.Errorf("top candidate type = %v, want hint fix", out[0].Type)
	}
	if out[1].Type != message.TypeTest {
		t.Errorf("hint must only override the top candidate, out[1] = %v", out[1].Type)
	}
	for i, m := range out {
		if m.Body != "Refs: PROJ-9" {
			t.Errorf("out[%d].Body = %q, want Refs trailer", i, m.Body)
		}
	}
}

func TestIssueAppendsToExistingBody(t *testing.T) {
	in := []message.Message{{Type: message.TypeFeat, Subject: "x", Body: "details"}}
	ref := &issue.Reference{ID: "#12", Tracker: issue.TrackerGitHub}
	out := Personalize(in, history.StyleProfile{}, ref)
	if out[0].Body != "details\n\nRefs: #12" {
		t.Errorf("Body = %q", out[0].Body)
	}
}

func TestInputNotMutated(t *testing.T) {
	in := candidates()
	ref := &issue.Reference{ID: "#1", Tracker: issue.TrackerGitHub, TypeHint: message.TypeFix}
	Personalize(in, history.StyleProfile{}, ref)
	if in[0].Type != message.TypeFeat || in[0].Body != "" {
		t.Errorf("input slice was mutated: %+v", in[0])
	}
}
