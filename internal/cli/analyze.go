package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pablasso/agentsim/internal/analysis"
)

func newAnalyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <events.jsonl>",
		Short: "Summarize a progress log written by run --json",
		Long: `Read JSONL progress events from one or more runs and report per-owner
outcomes along with owners or subtasks that keep failing.`,
		Example: `  agentsim run --json --scenario flaky Build a website >> events.jsonl
  agentsim run --events events.jsonl --scenario flaky Plan a team meeting
  agentsim analyze events.jsonl`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			events, err := analysis.LoadEvents(args[0])
			if err != nil {
				return err
			}
			if len(events) == 0 {
				return fmt.Errorf("no progress events in %s", args[0])
			}
			fmt.Fprint(cmd.OutOrStdout(), analysis.FormatReport(analysis.Analyze(events)))
			return nil
		},
	}
}
