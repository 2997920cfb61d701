// Package tui implements the interactive candidate picker: a small
// bubbletea model that lets the user choose among ranked commit-message
// candidates, edit the subject inline, and confirm or abort.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/papapumpkin/comet/internal/message"
)

// keyMap defines the picker's key bindings.
type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Edit   key.Binding
	Accept key.Binding
	Quit   key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit subject"),
	),
	Accept: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "accept"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "abort"),
	),
}

// Picker is the bubbletea model for candidate selection.
type Picker struct {
	candidates []message.Message
	cursor     int
	editing    bool
	input      textinput.Model

	chosen  bool
	aborted bool
	width   int
}

// NewPicker builds a picker over the given ranked candidates.
func NewPicker(candidates []message.Message) Picker {
	ti := textinput.New()
	ti.CharLimit = 120
	return Picker{candidates: candidates, input: ti}
}

// Init implements tea.Model.
func (p Picker) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		return p, nil

	case tea.KeyMsg:
		if p.editing {
			return p.updateEditing(msg)
		}
		switch {
		case key.Matches(msg, keys.Up):
			if p.cursor > 0 {
				p.cursor--
			}
		case key.Matches(msg, keys.Down):
			if p.cursor < len(p.candidates)-1 {
				p.cursor++
			}
		case key.Matches(msg, keys.Edit):
			if len(p.candidates) == 0 {
				return p, nil
			}
			p.editing = true
			p.input.SetValue(p.candidates[p.cursor].Subject)
			p.input.Focus()
			return p, textinput.Blink
		case key.Matches(msg, keys.Accept):
			p.chosen = true
			return p, tea.Quit
		case key.Matches(msg, keys.Quit):
			p.aborted = true
			return p, tea.Quit
		}
	}
	return p, nil
}

// updateEditing handles key input while the subject editor is open.
func (p Picker) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		if v := strings.TrimSpace(p.input.Value()); v != "" {
			p.candidates[p.cursor].Subject = v
		}
		p.editing = false
		p.input.Blur()
		return p, nil
	case tea.KeyEsc:
		p.editing = false
		p.input.Blur()
		return p, nil
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

// View implements tea.Model.
func (p Picker) View() string {
	var b strings.Builder
	b.WriteString(styleTitle.Render("Pick a commit message"))
	b.WriteString("\n\n")

	for i, m := range p.candidates {
		line := fmt.Sprintf("%d. %s", i+1, m.Header())
		if i == p.cursor {
			b.WriteString(styleSelected.Render(selectionIndicator + line))
		} else {
			b.WriteString(styleNormal.Render("  " + line))
		}
		b.WriteString("\n")
	}

	if p.editing {
		b.WriteString("\n")
		b.WriteString(styleEditLabel.Render("subject: "))
		b.WriteString(p.input.View())
		b.WriteString("\n")
		b.WriteString(styleHelp.Render("enter save · esc cancel"))
	} else {
		b.WriteString("\n")
		b.WriteString(styleHelp.Render("↑/↓ move · e edit · enter accept · q abort"))
	}
	b.WriteString("\n")
	return b.String()
}

// Selected returns the chosen candidate. ok is false when the user aborted.
func (p Picker) Selected() (message.Message, bool) {
	if !p.chosen || p.aborted || len(p.candidates) == 0 {
		return message.Message{}, false
	}
	return p.candidates[p.cursor], true
}

// Pick runs the picker and returns the accepted candidate, or ok=false when
// the user aborted.
func Pick(candidates []message.Message) (message.Message, bool, error) {
	prog := tea.NewProgram(NewPicker(candidates))
	final, err := prog.Run()
	if err != nil {
		return message.Message{}, false, fmt.Errorf("running picker: %w", err)
	}
	m, ok := final.(Picker).Selected()
	return m, ok, nil
}
