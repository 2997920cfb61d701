package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/comet/internal/config"
	"github.com/papapumpkin/comet/internal/telemetry"
	"github.com/papapumpkin/comet/internal/ui"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize accepted suggestions from the local ledger",
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	printer := ui.New()

	store, err := telemetry.Open(cmd.Context(), cfg.TelemetryDB)
	if err != nil {
		return fmt.Errorf("opening telemetry ledger: %w", err)
	}
	defer store.Close()

	sum, err := store.Summarize(cmd.Context())
	if err != nil {
		return err
	}
	if sum.Total == 0 {
		printer.Info("no accepted suggestions recorded yet")
		return nil
	}

	fmt.Fprintf(os.Stderr, "accepted suggestions: %d (splits: %d)\n", sum.Total, sum.Splits)
	fmt.Fprintln(os.Stderr, "by source:")
	for _, k := range sortedKeys(sum.BySource) {
		fmt.Fprintf(os.Stderr, "  %-8s %d\n", k, sum.BySource[k])
	}
	fmt.Fprintln(os.Stderr, "by type:")
	for _, k := range sortedKeys(sum.ByType) {
		fmt.Fprintf(os.Stderr, "  %-10s %d\n", k, sum.ByType[k])
	}
	return nil
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
