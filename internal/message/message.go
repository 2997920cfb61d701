// Package message defines the conventional-commit candidate schema shared by
// the rule-based suggester, the AI provider, and the personalizer. Both
// sources produce the same Message shape, so downstream stages treat them
// identically.
package message

import (
	"regexp"
	"strings"
)

// Type is a conventional-commit type token.
type Type string

// The fixed set of recognized commit types.
const (
	TypeFeat     Type = "feat"
	TypeFix      Type = "fix"
	TypeDocs     Type = "docs"
	TypeStyle    Type = "style"
	TypeRefactor Type = "refactor"
	TypePerf     Type = "perf"
	TypeTest     Type = "test"
	TypeBuild    Type = "build"
	TypeCI       Type = "ci"
	TypeChore    Type = "chore"
	TypeRevert   Type = "revert"
)

// AllTypes lists every recognized commit type.
var AllTypes = []Type{
	TypeFeat, TypeFix, TypeDocs, TypeStyle, TypeRefactor, TypePerf,
	TypeTest, TypeBuild, TypeCI, TypeChore, TypeRevert,
}

// Known reports whether t is one of the recognized commit types.
func (t Type) Known() bool {
	for _, k := range AllTypes {
		if t == k {
			return true
		}
	}
	return false
}

// Message is a single conventional-commit candidate. Candidates from the AI
// provider and from the rule-based suggester share this schema.
type Message struct {
	Type     Type   `json:"type"`
	Scope    string `json:"scope,omitempty"`
	Subject  string `json:"subject"`
	Body     string `json:"body,omitempty"`
	Breaking bool   `json:"breaking,omitempty"`
}

// Valid reports whether the message has the minimum required content:
// a known type and a non-empty subject.
func (m Message) Valid() bool {
	return m.Type.Known() && strings.TrimSpace(m.Subject) != ""
}

// Render produces the full commit message text: the `type(scope): subject`
// header, the optional body, and a BREAKING CHANGE footer when flagged.
func (m Message) Render() string {
	var b strings.Builder
	b.WriteString(string(m.Type))
	if m.Scope != "" {
		b.WriteString("(")
		b.WriteString(m.Scope)
		b.WriteString(")")
	}
	if m.Breaking {
		b.WriteString("!")
	}
	b.WriteString(": ")
	b.WriteString(m.Subject)
	if m.Body != "" {
		b.WriteString("\n\n")
		b.WriteString(m.Body)
	}
	if m.Breaking {
		b.WriteString("\n\nBREAKING CHANGE: ")
		b.WriteString(m.Subject)
	}
	return b.String()
}

// Header returns just the `type(scope): subject` line.
func (m Message) Header() string {
	header := m.Render()
	if i := strings.IndexByte(header, '\n'); i >= 0 {
		return header[:i]
	}
	return header
}

// subjectRe matches a conventional-commit header: type, optional (scope),
// optional breaking marker, then the subject after ": ".
var subjectRe = regexp.MustCompile(`^([a-z]+)(\(([^)]*)\))?(!)?:\s*(.*)$`)

// ParseHeader splits a commit subject line into its conventional-commit
// parts. ok is false when the line does not carry a recognized type prefix;
// in that case rest is the whole line unchanged.
func ParseHeader(line string) (typ Type, scope, rest string, ok bool) {
	m := subjectRe.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return "", "", line, false
	}
	typ = Type(m[1])
	if !typ.Known() {
		return "", "", line, false
	}
	return typ, m[3], m[5], true
}
