package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/pablasso/agentsim/internal/plan"
)

// Output formats for the plan command.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

func newPlanCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "plan <goal>",
		Short: "Print the plan for a goal without running it",
		Long: `Break a goal into subtasks and print them. Uses the configured model
when available and falls back to keyword rules.`,
		Example: `  agentsim plan "Organize a robotics workshop"
  agentsim plan --format yaml Build a website`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			goal := strings.Join(args, " ")
			if _, err := plan.ValidateGoal(goal); err != nil {
				return err
			}

			p := newPlanner(a.cfg, a.logger).Plan(cmd.Context(), goal)
			return writePlan(cmd.OutOrStdout(), p, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatText, "output format: text|json|yaml")
	return cmd
}

// writePlan renders p to w in the requested format.
func writePlan(w io.Writer, p *plan.Plan, format string) error {
	switch strings.ToLower(format) {
	case formatText:
		fmt.Fprintf(w, "Goal: %s\n", p.Goal)
		fmt.Fprintf(w, "Source: %s\n\n", p.Source)
		for _, st := range p.Subtasks {
			fmt.Fprintf(w, "%d. %s (%s)\n", st.ID, st.Title, st.Owner)
		}
		return nil

	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(p)

	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(p); err != nil {
			return fmt.Errorf("failed to encode plan: %w", err)
		}
		return enc.Close()

	default:
		return fmt.Errorf("invalid format %q (valid: text, json, yaml)", format)
	}
}
