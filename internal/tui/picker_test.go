package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/papapumpkin/comet/internal/message"
)

func testCandidates() []message.Message {
	return []message.Message{
		{Type: message.TypeFeat, Subject: "add widget"},
		{Type: message.TypeFix, Subject: "patch crash"},
		{Type: message.TypeChore, Subject: "tidy config"},
	}
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func update(t *testing.T, p Picker, msgs ...tea.Msg) Picker {
	t.Helper()
	var model tea.Model = p
	for _, msg := range msgs {
		model, _ = model.Update(msg)
	}
	return model.(Picker)
}

func TestCursorMovement(t *testing.T) {
	p := NewPicker(testCandidates())

	p = update(t, p, tea.KeyMsg{Type: tea.KeyDown})
	if p.cursor != 1 {
		t.Errorf("cursor = %d after down, want 1", p.cursor)
	}

	p = update(t, p, keyRune('j'), keyRune('j'))
	if p.cursor != 2 {
		t.Errorf("cursor = %d, want clamp at last candidate", p.cursor)
	}

	p = update(t, p, keyRune('k'), tea.KeyMsg{Type: tea.KeyUp}, tea.KeyMsg{Type: tea.KeyUp})
	if p.cursor != 0 {
		t.Errorf("cursor = %d, want clamp at 0", p.cursor)
	}
}

func TestAcceptSelectsCursorCandidate(t *testing.T) {
	p := NewPicker(testCandidates())
	p = update(t, p, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter})

	m, ok := p.Selected()
	if !ok {
		t.Fatal("Selected() not ok after accept")
	}
	if m.Type != message.TypeFix {
		t.Errorf("selected %v, want the second candidate", m.Type)
	}
}

func TestAbort(t *testing.T) {
	p := NewPicker(testCandidates())
	p = update(t, p, keyRune('q'))
	if _, ok := p.Selected(); ok {
		t.Error("Selected() should not be ok after abort")
	}
}

func TestEditSubject(t *testing.T) {
	p := NewPicker(testCandidates())
	p = update(t, p, keyRune('e'))
	if !p.editing {
		t.Fatal("expected editing mode after e")
	}

	p = update(t, p, keyRune('!'), tea.KeyMsg{Type: tea.KeyEnter})
	if p.editing {
		t.Fatal("enter should leave editing mode")
	}
	if p.candidates[0].Subject != "add widget!" {
		t.Errorf("Subject = %q, want edited value", p.candidates[0].Subject)
	}

	// Accept the edited candidate.
	p = update(t, p, tea.KeyMsg{Type: tea.KeyEnter})
	m, ok := p.Selected()
	if !ok || m.Subject != "add widget!" {
		t.Errorf("Selected() = %+v %v, want edited subject", m, ok)
	}
}

func TestEditEscCancels(t *testing.T) {
	p := NewPicker(testCandidates())
	p = update(t, p, keyRune('e'), keyRune('x'), tea.KeyMsg{Type: tea.KeyEsc})
	if p.editing {
		t.Error("esc should leave editing mode")
	}
	if p.candidates[0].Subject != "add widget" {
		t.Errorf("esc should not save the edit, got %q", p.candidates[0].Subject)
	}
}

func TestViewShowsCandidates(t *testing.T) {
	p := NewPicker(testCandidates())
	view := p.View()
	for _, want := range []string{"feat: add widget", "fix: patch crash", "chore: tidy config"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}
