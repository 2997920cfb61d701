// Package ui provides stderr-based output for comet: the candidate listing,
// the partition breakdown, and status lines. Candidate text itself goes to
// stdout so it can be piped; everything decorative stays on stderr.
package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/papapumpkin/comet/internal/message"
	"github.com/papapumpkin/comet/internal/partition"
)

// ANSI color codes.
const (
	reset   = "\033[0m"
	bold    = "\033[1m"
	dim     = "\033[2m"
	blue    = "\033[34m"
	yellow  = "\033[33m"
	green   = "\033[32m"
	red     = "\033[31m"
	cyan    = "\033[36m"
	magenta = "\033[35m"
)

type Printer struct{}

func New() *Printer {
	return &Printer{}
}

func (p *Printer) Banner() {
	fmt.Fprintln(os.Stderr, bold+cyan+"comet"+reset+dim+" — commit message assistant"+reset)
	fmt.Fprintln(os.Stderr)
}

// Analysis summarizes the staged changeset.
func (p *Printer) Analysis(files, additions, deletions int, source string) {
	fmt.Fprintf(os.Stderr, dim+"%d file(s) staged, "+reset+green+"+%d"+reset+" "+red+"-%d"+reset+dim+" · candidates via %s"+reset+"\n\n",
		files, additions, deletions, source)
}

// Candidates lists the ranked candidates, best first.
func (p *Printer) Candidates(msgs []message.Message) {
	for i, m := range msgs {
		marker := dim
		if i == 0 {
			marker = bold + blue
		}
		fmt.Fprintf(os.Stderr, marker+"%2d."+reset+" %s\n", i+1, m.Header())
		if m.Body != "" {
			for _, line := range strings.Split(m.Body, "\n") {
				fmt.Fprintf(os.Stderr, dim+"    %s"+reset+"\n", line)
			}
		}
	}
	fmt.Fprintln(os.Stderr)
}

// Groups lists a concern partition in commit order.
func (p *Printer) Groups(res partition.Result) {
	if res.ShouldSplit {
		fmt.Fprintln(os.Stderr, yellow+bold+"⚠ changeset spans multiple concerns"+reset+" — consider splitting:")
	} else {
		fmt.Fprintln(os.Stderr, dim+"concern breakdown (no split warranted):"+reset)
	}
	for i, g := range res.Groups {
		fmt.Fprintf(os.Stderr, magenta+"%2d. %s"+reset+dim+" (%d file(s))"+reset+"\n", i+1, g.Concern, len(g.Files))
		for _, f := range g.Files {
			fmt.Fprintf(os.Stderr, dim+"      %s"+reset+"\n", f)
		}
	}
	fmt.Fprintln(os.Stderr)
}

// Committed confirms a created commit.
func (p *Printer) Committed(header string) {
	fmt.Fprintf(os.Stderr, green+bold+"✓ committed"+reset+" %s\n", header)
}

// Pushed confirms a push.
func (p *Printer) Pushed() {
	fmt.Fprintln(os.Stderr, green+bold+"✓ pushed"+reset)
}

// Fallback notes that the AI provider was skipped or failed.
func (p *Printer) Fallback(reason string) {
	fmt.Fprintf(os.Stderr, yellow+"⚠ using rule-based suggestions"+reset+dim+" (%s)"+reset+"\n", reason)
}

// Info prints a dim status line.
func (p *Printer) Info(msg string) {
	fmt.Fprintln(os.Stderr, dim+msg+reset)
}

// Error prints an error line.
func (p *Printer) Error(msg string) {
	fmt.Fprintf(os.Stderr, red+bold+"error: "+reset+"%s\n", msg)
}
