package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/comet/internal/analyze"
	"github.com/papapumpkin/comet/internal/config"
	"github.com/papapumpkin/comet/internal/gitcli"
	"github.com/papapumpkin/comet/internal/partition"
	"github.com/papapumpkin/comet/internal/suggest"
	"github.com/papapumpkin/comet/internal/telemetry"
	"github.com/papapumpkin/comet/internal/ui"
)

var splitCmd = &cobra.Command{
	Use:   "split",
	Short: "Partition the staged changes into atomic commits by concern",
	Long: `Split groups the staged files into concern buckets (types, config,
feature, tests, docs, ...) and shows the proposed commit sequence. With
--commit it creates one commit per group, in dependency-friendly order,
each with a rule-based message scoped to that group.`,
	RunE: runSplit,
}

func init() {
	splitCmd.Flags().Bool("commit", false, "create one commit per concern group")
	rootCmd.AddCommand(splitCmd)
}

func runSplit(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	doCommit, _ := cmd.Flags().GetBool("commit")

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

	res := partition.Partition(a.FilesChanged)
	printer.Groups(res)

	if !doCommit {
		return nil
	}
	if !res.ShouldSplit {
		printer.Info("changeset too small or uniform to split; use `comet commit` instead")
		return nil
	}

	for _, g := range res.Groups {
		// Per-group messages come from the rule chain over the group's files
		// alone; finalize applies history style and issue references.
		groupAnalysis := analyze.Analysis{FilesChanged: g.Files, HasStaged: true}
		candidates := finalize(ctx, cfg, q, suggest.Suggest(groupAnalysis))

		msg := candidates[0]
		if err := q.Commit(ctx, msg.Render(), g.Files); err != nil {
			return fmt.Errorf("committing %s group: %w", g.Concern, err)
		}
		printer.Committed(fmt.Sprintf("%s (%d file(s))", msg.Header(), len(g.Files)))

		recordAcceptance(ctx, cfg, telemetry.Suggestion{
			Source:     sourceRules,
			Type:       string(msg.Type),
			Scope:      msg.Scope,
			SubjectLen: len(msg.Subject),
			Files:      len(g.Files),
			Split:      true,
		})
	}
	return nil
}
