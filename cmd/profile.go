package cmd

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/comet/internal/config"
	"github.com/papapumpkin/comet/internal/gitcli"
	"github.com/papapumpkin/comet/internal/history"
	"github.com/papapumpkin/comet/internal/profilestore"
	"github.com/papapumpkin/comet/internal/ui"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show the commit style learned from your history",
	RunE:  runProfile,
}

func init() {
	profileCmd.Flags().Bool("refresh", false, "rebuild the profile, ignoring the cached snapshot")
	rootCmd.AddCommand(profileCmd)
}

func runProfile(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	refresh, _ := cmd.Flags().GetBool("refresh")

	ctx := cmd.Context()
	q := &gitcli.CLI{}
	printer := ui.New()

	if !q.IsRepo(ctx) {
		return fmt.Errorf("not a git repository")
	}

	var p history.StyleProfile
	if refresh {
		subjects, _ := q.RecentSubjects(ctx, historyDepth(cfg))
		p = history.BuildProfile(subjects)
		_ = profilestore.Save(cfg.ProfilePath, p, time.Now())
	} else {
		p = loadProfile(ctx, cfg, q)
	}

	if p.Empty() {
		printer.Info("no commit history to learn from yet")
		return nil
	}

	fmt.Fprintf(os.Stderr, "preferred types:\n")
	type freq struct {
		typ string
		f   float64
	}
	var freqs []freq
	for typ, f := range p.PreferredTypes {
		freqs = append(freqs, freq{string(typ), f})
	}
	sort.Slice(freqs, func(i, j int) bool {
		if freqs[i].f != freqs[j].f {
			return freqs[i].f > freqs[j].f
		}
		return freqs[i].typ < freqs[j].typ
	})
	for _, fr := range freqs {
		fmt.Fprintf(os.Stderr, "  %-10s %5.1f%%\n", fr.typ, fr.f*100)
	}

	fmt.Fprintf(os.Stderr, "avg subject length: %.1f chars\n", p.AvgSubjectLength)
	fmt.Fprintf(os.Stderr, "capitalization: %s\n", p.Capitalization)
	fmt.Fprintf(os.Stderr, "punctuation: %s\n", p.Punctuation)
	if len(p.CommonPhrases) > 0 {
		fmt.Fprintf(os.Stderr, "common phrases:\n")
		for _, phrase := range p.CommonPhrases {
			fmt.Fprintf(os.Stderr, "  %q\n", phrase)
		}
	}
	return nil
}
