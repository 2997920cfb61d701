package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/comet/internal/config"
	"github.com/papapumpkin/comet/internal/gitcli"
	"github.com/papapumpkin/comet/internal/partition"
	"github.com/papapumpkin/comet/internal/tui"
	"github.com/papapumpkin/comet/internal/ui"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Print ranked commit-message candidates for the staged changes",
	RunE:  runSuggest,
}

func init() {
	suggestCmd.Flags().Bool("no-ai", false, "skip the AI provider, use rule-based suggestions")
	suggestCmd.Flags().Bool("pick", false, "open the interactive picker")
	suggestCmd.Flags().Int("max", 0, "maximum candidates (overrides config)")
	rootCmd.AddCommand(suggestCmd)
}

func runSuggest(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	if n, _ := cmd.Flags().GetInt("max"); n > 0 {
		cfg.MaxCandidates = n
	}
	noAI, _ := cmd.Flags().GetBool("no-ai")
	pick, _ := cmd.Flags().GetBool("pick")

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

	printer.Analysis(len(a.FilesChanged), a.Additions, a.Deletions, source)
	printer.Candidates(candidates)

	if cfg.MultiCommit {
		if res := partition.Partition(a.FilesChanged); res.ShouldSplit {
			printer.Groups(res)
			printer.Info("run `comet split` to commit each concern separately")
		}
	}

	if pick {
		chosen, ok, err := tui.Pick(candidates)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		// The picked message goes to stdout so it can be piped into
		// `git commit -F -` or similar.
		fmt.Println(chosen.Render())
		return nil
	}

	// Non-interactive: print the top candidate for piping.
	if len(candidates) > 0 {
		fmt.Println(candidates[0].Render())
	}
	return nil
}
