package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/comet/internal/config"
	"github.com/papapumpkin/comet/internal/gitcli"
	"github.com/papapumpkin/comet/internal/history"
	"github.com/papapumpkin/comet/internal/ui"
	"github.com/papapumpkin/comet/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-suggest whenever the staged set changes",
	Long: `Watch observes the repository index and reprints ranked candidates
every time you stage or unstage files. Ctrl-C to stop.`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().Bool("no-ai", false, "skip the AI provider, use rule-based suggestions")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	noAI, _ := cmd.Flags().GetBool("no-ai")

	ctx := cmd.Context()
	q := &gitcli.CLI{}
	printer := ui.New()

	if !q.IsRepo(ctx) {
		return fmt.Errorf("not a git repository")
	}

	gitDir, err := q.GitDir(ctx)
	if err != nil {
		return err
	}
	w, err := watch.New(gitDir)
	if err != nil {
		return fmt.Errorf("watching %s: %w", gitDir, err)
	}
	defer w.Stop()

	// Within one watch session the profile lives in the in-process cache;
	// the TTL keeps it from going stale over a long session.
	cache := &history.Cache{TTL: cacheTTL(cfg)}
	fetch := func() []string {
		subjects, _ := q.RecentSubjects(ctx, historyDepth(cfg))
		return subjects
	}

	prov := newProvider(cfg, noAI)
	printer.Banner()
	refresh := func() {
		a, err := gatherAnalysis(ctx, q)
		if err != nil {
			printer.Error(err.Error())
			return
		}
		if !a.HasStaged {
			printer.Info("nothing staged")
			return
		}
		candidates, source := generateCandidates(ctx, cfg, prov, a, printer)

		profile := history.StyleProfile{}
		if cfg.History {
			profile = cache.Profile(fetch)
		}
		candidates = personalizeWith(ctx, cfg, q, candidates, profile)

		printer.Analysis(len(a.FilesChanged), a.Additions, a.Deletions, source)
		printer.Candidates(candidates)
	}

	refresh()
	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-w.Changes:
			if !ok {
				return nil
			}
			refresh()
		}
	}
}
