package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/papapumpkin/comet/internal/analyze"
	"github.com/papapumpkin/comet/internal/message"
)

// DefaultMaxDiffBytes bounds how much diff text is sent to the model.
const DefaultMaxDiffBytes = 16 * 1024

// Claude generates commit messages by invoking the claude CLI in print mode
// with JSON output.
type Claude struct {
	// Path is the claude binary. Empty means "claude" on PATH.
	Path string
	// Model selects the model; empty uses the CLI default.
	Model string
	// MaxDiffBytes truncates the diff included in the prompt. Zero means
	// DefaultMaxDiffBytes.
	MaxDiffBytes int
	Verbose      bool
}

// cliResponse is the claude CLI's --output-format json envelope.
type cliResponse struct {
	Type         string  `json:"type"`
	IsError      bool    `json:"is_error"`
	DurationMs   int64   `json:"duration_ms"`
	Result       string  `json:"result"`
	SessionID    string  `json:"session_id"`
	TotalCostUSD float64 `json:"total_cost_usd"`
}

// Name identifies the provider.
func (c *Claude) Name() string { return "claude" }

// Validate checks that the claude binary is runnable.
func (c *Claude) Validate() error {
	cmd := exec.Command(c.path(), "--version")
	out, err := cmd.Output()
	if err != nil {
		return fmt.Errorf("claude CLI not found at %q: %w", c.path(), err)
	}
	if c.Verbose {
		fmt.Fprintf(os.Stderr, "[claude] version: %s", string(out))
	}
	return nil
}

func (c *Claude) path() string {
	if c.Path != "" {
		return c.Path
	}
	return "claude"
}

// Generate prompts the claude CLI with the analysis and parses the returned
// candidate array.
func (c *Claude) Generate(ctx context.Context, a analyze.Analysis, n int) ([]message.Message, error) {
	prompt := buildPrompt(a, n, c.maxDiffBytes())

	args := []string{"-p", prompt, "--output-format", "json"}
	if c.Model != "" {
		args = append(args, "--model", c.Model)
	}

	cmd := exec.CommandContext(ctx, c.path(), args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if c.Verbose {
		fmt.Fprintf(os.Stderr, "[claude] generating %d candidates for %d files\n", n, len(a.FilesChanged))
	}

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("claude invocation failed: %w\nstderr: %s", err, stderr.String())
	}

	var resp cliResponse
	if err := json.Unmarshal(stdout.Bytes(), &resp); err != nil {
		return nil, fmt.Errorf("parsing claude JSON output: %w", err)
	}
	if resp.IsError {
		return nil, fmt.Errorf("claude returned error: %s", resp.Result)
	}

	candidates, err := ParseCandidates(resp.Result)
	if err != nil {
		return nil, err
	}
	if len(candidates) > n {
		candidates = candidates[:n]
	}
	return candidates, nil
}

func (c *Claude) maxDiffBytes() int {
	if c.MaxDiffBytes > 0 {
		return c.MaxDiffBytes
	}
	return DefaultMaxDiffBytes
}

// buildPrompt assembles the generation prompt: instructions, the file list,
// churn counts, and the (possibly truncated) diff.
func buildPrompt(a analyze.Analysis, n, maxDiffBytes int) string {
	diff := a.Diff
	truncated := false
	if len(diff) > maxDiffBytes {
		diff = diff[:maxDiffBytes]
		truncated = true
	}

	var b strings.Builder
	fmt.Fprintf(&b, `Draft %d conventional-commit messages for the staged changes below.
Respond with only a JSON array; each element has keys "type", "scope",
"subject", "body", "breaking". type must be one of feat, fix, docs, style,
refactor, perf, test, build, ci, chore, revert. subject is a short imperative
phrase. Order candidates best first.

`, n)
	fmt.Fprintf(&b, "Files changed (%d): %s\n", len(a.FilesChanged), strings.Join(a.FilesChanged, ", "))
	fmt.Fprintf(&b, "Lines: +%d -%d\n\nDiff:\n%s", a.Additions, a.Deletions, diff)
	if truncated {
		b.WriteString("\n[diff truncated]")
	}
	return b.String()
}

// ParseCandidates extracts a candidate array from model output. The model is
// asked for a bare JSON array but may wrap it in prose or a code fence, so
// the parser locates the outermost brackets first. Invalid candidates are
// dropped; an output with no valid candidate is an error so the caller falls
// back to the rule-based suggester.
func ParseCandidates(result string) ([]message.Message, error) {
	start := strings.IndexByte(result, '[')
	end := strings.LastIndexByte(result, ']')
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON array in model output")
	}

	var raw []message.Message
	if err := json.Unmarshal([]byte(result[start:end+1]), &raw); err != nil {
		return nil, fmt.Errorf("parsing candidate array: %w", err)
	}

	var out []message.Message
	for _, m := range raw {
		m.Subject = strings.TrimSpace(m.Subject)
		if m.Valid() {
			out = append(out, m)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("model output contained no valid candidates")
	}
	return out, nil
}
