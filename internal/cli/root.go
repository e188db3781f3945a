// Package cli wires configuration, planning and simulation into the
// agentsim commands.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pablasso/agentsim/internal/config"
	"github.com/pablasso/agentsim/internal/logging"
	"github.com/pablasso/agentsim/internal/session"
	"github.com/pablasso/agentsim/internal/tui"
	"github.com/pablasso/agentsim/internal/version"
)

// app carries state shared by every command for one invocation.
type app struct {
	v       *viper.Viper
	cfgFile string
	noModel bool

	cfg    *config.Config
	logger *logging.Logger
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "agentsim",
		Short: "Plan a goal into agent subtasks and watch them run",
		Long: `agentsim breaks a free-text goal into a handful of subtasks, each owned
by a named agent, then simulates their execution with progress logs.

Plans come from a hosted model when an API key is configured and from
built-in keyword rules otherwise. Without a subcommand it starts the
interactive UI.`,
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Close()
			}
		},
		RunE: a.runTUI,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&a.cfgFile, "config", "c", "", "config file (default is "+config.ConfigFile()+")")
	flags.String("log-level", "", "log level: debug|info|warn|error")
	flags.String("log-file", "", "write JSON logs to this file")
	flags.String("model", "", "model name for plan generation")
	flags.BoolVar(&a.noModel, "no-model", false, "plan with keyword rules only")

	_ = a.v.BindPFlag("logging.level", flags.Lookup("log-level"))
	_ = a.v.BindPFlag("logging.file", flags.Lookup("log-file"))
	_ = a.v.BindPFlag("model.name", flags.Lookup("model"))

	rootCmd.AddCommand(
		newPlanCmd(a),
		newRunCmd(a),
		newAnalyzeCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// load reads configuration and opens the logger. The TUI owns the terminal,
// so without a log file it logs nowhere.
func (a *app) load(cmd *cobra.Command) error {
	if err := config.Init(a.v, a.cfgFile); err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	if a.noModel {
		cfg.Model.Enabled = false
	}
	a.cfg = cfg

	if cmd.Root() == cmd && cfg.Logging.File == "" {
		a.logger = logging.NopLogger()
		return nil
	}

	logger, err := logging.NewLogger(cfg.Logging.File, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("failed to open log: %w", err)
	}
	a.logger = logger
	return nil
}

func (a *app) runTUI(cmd *cobra.Command, args []string) error {
	sim, err := newSimulator(a.cfg.Simulation, simulationFlags{})
	if err != nil {
		return err
	}

	sess := session.New(newPlanner(a.cfg, a.logger), a.cfg.History.Size).
		WithLogger(a.logger)

	return tui.Run(tui.Options{
		Session:   sess,
		Simulator: sim,
		Logger:    a.logger,
	})
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "agentsim "+version.String())
		},
	}
}
