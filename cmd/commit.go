package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/comet/internal/config"
	"github.com/papapumpkin/comet/internal/gitcli"
	"github.com/papapumpkin/comet/internal/message"
	"github.com/papapumpkin/comet/internal/telemetry"
	"github.com/papapumpkin/comet/internal/tui"
	"github.com/papapumpkin/comet/internal/ui"
)

var commitCmd = &cobra.Command{
	Use:   "commit",
	Short: "Suggest, pick, and create the commit",
	RunE:  runCommit,
}

func init() {
	commitCmd.Flags().Bool("no-ai", false, "skip the AI provider, use rule-based suggestions")
	commitCmd.Flags().Bool("push", false, "push after committing")
	commitCmd.Flags().BoolP("yes", "y", false, "accept the top candidate without the picker")
	rootCmd.AddCommand(commitCmd)
}

func runCommit(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	noAI, _ := cmd.Flags().GetBool("no-ai")
	push, _ := cmd.Flags().GetBool("push")
	yes, _ := cmd.Flags().GetBool("yes")
	if !push {
		push = cfg.Push
	}

	ctx := cmd.Context()
	q := &gitcli.CLI{}
	printer := ui.New()

	if !q.IsRepo(ctx) {
		return fmt.Errorf("not a git repository")
	}

	a, err := gatherAnalysis(ctx, q)
	if err != nil {
		return err
	}
	if err := requireStaged(a); err != nil {
		return err
	}

	candidates, source := generateCandidates(ctx, cfg, newProvider(cfg, noAI), a, printer)
	candidates = finalize(ctx, cfg, q, candidates)

	var chosen message.Message
	if yes {
		chosen = candidates[0]
	} else {
		picked, ok, err := tui.Pick(candidates)
		if err != nil {
			return err
		}
		if !ok {
			printer.Info("aborted")
			return nil
		}
		chosen = picked
	}

	if err := q.Commit(ctx, chosen.Render(), nil); err != nil {
		return err
	}
	printer.Committed(chosen.Header())

	recordAcceptance(ctx, cfg, telemetry.Suggestion{
		Source:     source,
		Type:       string(chosen.Type),
		Scope:      chosen.Scope,
		SubjectLen: len(chosen.Subject),
		Files:      len(a.FilesChanged),
	})

	if push {
		if err := q.Push(ctx); err != nil {
			return err
		}
		printer.Pushed()
	}
	return nil
}

// recordAcceptance appends to the telemetry ledger. Ledger failures never
// block a commit.
func recordAcceptance(ctx context.Context, cfg config.Config, rec telemetry.Suggestion) {
	if cfg.TelemetryDB == "" {
		return
	}
	store, err := telemetry.Open(ctx, cfg.TelemetryDB)
	if err != nil {
		return
	}
	defer store.Close()
	_ = store.Record(ctx, rec)
}
