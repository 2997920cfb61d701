package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/papapumpkin/comet/internal/analyze"
	"github.com/papapumpkin/comet/internal/config"
	"github.com/papapumpkin/comet/internal/gitcli"
	"github.com/papapumpkin/comet/internal/history"
	"github.com/papapumpkin/comet/internal/issue"
	"github.com/papapumpkin/comet/internal/message"
	"github.com/papapumpkin/comet/internal/personalize"
	"github.com/papapumpkin/comet/internal/profilestore"
	"github.com/papapumpkin/comet/internal/provider"
	"github.com/papapumpkin/comet/internal/suggest"
	"github.com/papapumpkin/comet/internal/ui"
)

// sourceRules marks candidates produced by the deterministic fallback.
const sourceRules = "rules"

// gatherAnalysis reads the staged state through the git wrapper and
// normalizes it.
func gatherAnalysis(ctx context.Context, q gitcli.Querier) (analyze.Analysis, error) {
	stat, err := q.StagedStat(ctx)
	if err != nil {
		return analyze.Analysis{}, err
	}
	diff, err := q.StagedDiff(ctx)
	if err != nil {
		return analyze.Analysis{}, err
	}
	unstaged, err := q.HasUnstaged(ctx)
	if err != nil {
		// Unstaged detection is advisory; a probe failure should not block
		// suggestion.
		unstaged = false
	}
	return analyze.Analyze(stat, diff, unstaged), nil
}

// generateCandidates asks the provider for drafts and substitutes the
// rule-based suggester when the provider is absent or fails. It returns the
// candidates and the source name for display and telemetry.
func generateCandidates(ctx context.Context, cfg config.Config, prov provider.Provider, a analyze.Analysis, printer *ui.Printer) ([]message.Message, string) {
	if prov != nil {
		msgs, err := prov.Generate(ctx, a, maxCandidates(cfg))
		if err == nil && len(msgs) > 0 {
			return msgs, prov.Name()
		}
		if err != nil && printer != nil {
			printer.Fallback(err.Error())
		}
	}
	msgs := suggest.Suggest(a)
	if len(msgs) > maxCandidates(cfg) {
		msgs = msgs[:maxCandidates(cfg)]
	}
	return msgs, sourceRules
}

func maxCandidates(cfg config.Config) int {
	if cfg.MaxCandidates > 0 {
		return cfg.MaxCandidates
	}
	return 3
}

// loadProfile returns the user's style profile, honoring the snapshot TTL:
// a fresh .comet/profile.toml is reused as-is, otherwise the profile is
// rebuilt from recent subjects and the snapshot refreshed. Any failure along
// the way degrades to an empty profile.
func loadProfile(ctx context.Context, cfg config.Config, q gitcli.Querier) history.StyleProfile {
	ttl := cacheTTL(cfg)

	snap, builtAt, err := profilestore.Load(cfg.ProfilePath)
	if err == nil && !builtAt.IsZero() && time.Since(builtAt) < ttl {
		return snap
	}

	subjects, _ := q.RecentSubjects(ctx, historyDepth(cfg))
	p := history.BuildProfile(subjects)
	_ = profilestore.Save(cfg.ProfilePath, p, time.Now())
	return p
}

func cacheTTL(cfg config.Config) time.Duration {
	if cfg.CacheTTLMinutes > 0 {
		return time.Duration(cfg.CacheTTLMinutes) * time.Minute
	}
	return history.DefaultTTL
}

func historyDepth(cfg config.Config) int {
	if cfg.HistoryDepth > 0 {
		return cfg.HistoryDepth
	}
	return history.SampleSize
}

// resolveIssue extracts an issue reference from the current branch, or nil
// when the branch is unreadable or issue tracking is disabled.
func resolveIssue(ctx context.Context, cfg config.Config, q gitcli.Querier) *issue.Reference {
	if !cfg.IssueRefs {
		return nil
	}
	branch, err := q.CurrentBranch(ctx)
	if err != nil {
		return nil
	}
	ref := issue.Resolve(branch)
	if ref.None() && ref.TypeHint == "" {
		return nil
	}
	return &ref
}

// finalize applies the personalization stage according to the feature
// toggles.
func finalize(ctx context.Context, cfg config.Config, q gitcli.Querier, candidates []message.Message) []message.Message {
	profile := history.StyleProfile{}
	if cfg.History {
		profile = loadProfile(ctx, cfg, q)
	}
	return personalizeWith(ctx, cfg, q, candidates, profile)
}

// personalizeWith runs the personalizer against an already-loaded profile,
// resolving the issue reference from the current branch.
func personalizeWith(ctx context.Context, cfg config.Config, q gitcli.Querier, candidates []message.Message, profile history.StyleProfile) []message.Message {
	return personalize.Personalize(candidates, profile, resolveIssue(ctx, cfg, q))
}

// newProvider builds the configured AI provider, or nil when noAI is set.
func newProvider(cfg config.Config, noAI bool) provider.Provider {
	if noAI {
		return nil
	}
	return &provider.Claude{
		Path:         cfg.ClaudePath,
		Model:        cfg.Model,
		MaxDiffBytes: cfg.MaxDiffBytes,
		Verbose:      cfg.Verbose,
	}
}

// requireStaged verifies there is something to suggest for.
func requireStaged(a analyze.Analysis) error {
	if !a.HasStaged {
		return fmt.Errorf("no staged changes — stage files with `git add` first")
	}
	return nil
}
