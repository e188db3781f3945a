package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/pablasso/agentsim/internal/display"
	"github.com/pablasso/agentsim/internal/executor"
	"github.com/pablasso/agentsim/internal/plan"
	"github.com/pablasso/agentsim/internal/session"
)

type runOptions struct {
	sim    simulationFlags
	json   bool
	report string
	events string
}

func newRunCmd(a *app) *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run <goal>",
		Short: "Plan a goal and simulate its subtasks",
		Long: `Plan a goal, then simulate each subtask in order with progress logs.
Ctrl+C stops the run.`,
		Example: `  agentsim run "Organize a robotics workshop"
  agentsim run --preset quick --scenario flaky --seed 7 Build a website
  agentsim run --json --speed 0 Plan a team meeting > events.jsonl
  agentsim run --events run.jsonl --report report.json Build a website`,
		Args: cobra.MinimumNArgs(1),
		PreRun: func(cmd *cobra.Command, args []string) {
			opts.sim.speedSet = cmd.Flags().Changed("speed")
			opts.sim.rateSet = cmd.Flags().Changed("fail-rate")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()
			return a.run(ctx, cmd.OutOrStdout(), strings.Join(args, " "), opts)
		},
	}

	f := cmd.Flags()
	f.Float64Var(&opts.sim.speed, "speed", 0, "seconds per simulated step (0 disables pacing, max 1.5)")
	f.StringVar(&opts.sim.preset, "preset", "", "speed preset: quick|medium|slow")
	f.Float64Var(&opts.sim.failRate, "fail-rate", 0, "per-subtask failure probability (0-1)")
	f.Uint64Var(&opts.sim.seed, "seed", 0, "seed for failure injection (0 picks one)")
	f.StringVar(&opts.sim.scenario, "scenario", "", "outcome scenario: success|flaky|fail")
	f.BoolVar(&opts.json, "json", false, "emit JSONL progress events instead of text")
	f.StringVar(&opts.report, "report", "", "write the final plan and summary as JSON to this file")
	f.StringVar(&opts.events, "events", "", "also append JSONL progress events to this file")
	cmd.MarkFlagsMutuallyExclusive("speed", "preset")

	return cmd
}

// run plans goal and simulates it through a session, printing progress to w.
func (a *app) run(ctx context.Context, w io.Writer, goal string, opts runOptions) error {
	sim, err := newSimulator(a.cfg.Simulation, opts.sim)
	if err != nil {
		return err
	}

	var (
		events executor.MultiEvents
		disp   *display.Display
	)
	if opts.json {
		events = append(events, executor.NewProgressEvents(plan.NewProgressLogger(w)))
	} else {
		disp = display.New(w).WithLiveStatus(isTerminal(w))
		events = append(events, disp)
	}
	if opts.events != "" {
		f, err := os.OpenFile(opts.events, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open events file: %w", err)
		}
		defer f.Close()
		events = append(events, executor.NewProgressEvents(plan.NewProgressLogger(f)))
	}

	sess := session.New(newPlanner(a.cfg, a.logger), a.cfg.History.Size).WithLogger(a.logger)

	r, err := sess.Submit(ctx, goal)
	if err != nil {
		return err
	}

	ex := executor.New(sim).
		WithEvents(events).
		WithLogger(a.logger.WithRun(r.ID))

	summary, err := sess.Execute(r, ex)
	if err != nil {
		if disp != nil {
			disp.Stop()
		}
		return fmt.Errorf("run interrupted: %w", err)
	}

	if opts.report != "" {
		if err := plan.WriteReport(opts.report, r.Plan, summary); err != nil {
			return err
		}
		a.logger.Info("report written", "path", opts.report)
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}
