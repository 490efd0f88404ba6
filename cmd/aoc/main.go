package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gateway3b/aoc2023/internal/config"
	"github.com/gateway3b/aoc2023/internal/logging"
)

// app holds the state shared by the subcommands once the root command has set it up.
type app struct {
	out io.Writer

	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd(out io.Writer) *cobra.Command {
	a := &app{out: out}

	root := &cobra.Command{
		Use:   "aoc",
		Short: "Advent of Code 2023 solvers",
		Long: `Runs the Advent of Code 2023 solvers against puzzle inputs.

Inputs are read from <inputs_dir>/day<N>.txt unless --input is given, and every
answered part is recorded in the configured results store.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.SetOut(out)
	root.PersistentFlags().StringVar(&a.configPath, "config", "aoc.yaml", "Path to the YAML config file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Log at debug level")

	root.AddCommand(a.solveCmd(), a.historyCmd(), a.daysCmd())
	return root
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.verbose {
		cfg.Logging.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", a.configPath, err)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	logger.Debug("loaded config",
		zap.String("path", a.configPath),
		zap.String("inputs_dir", cfg.InputsDir),
		zap.String("results_backend", cfg.Results.Backend))
	return nil
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}
