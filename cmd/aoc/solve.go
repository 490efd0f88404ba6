package main

import (
	"context"
	"fmt"
	"os"
	"runtime/pprof"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/gateway3b/aoc2023/internal/days"
	"github.com/gateway3b/aoc2023/internal/results"
)

type solveOptions struct {
	input string
	mode  string

	timeout time.Duration

	profile           bool
	profileFile       string
	memoryProfileFile string
}

func (a *app) solveCmd() *cobra.Command {
	var opts solveOptions
	cmd := &cobra.Command{
		Use:   "solve [day...]",
		Short: "Solve the given days, or every registered day",
		Example: `  aoc solve
  aoc solve 10 --mode debug2
  aoc solve 10 --input testdata/larger.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSolve(cmd.Context(), args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.input, "input", "", "Read the input from this file instead of the inputs directory (one day only)")
	cmd.Flags().StringVar(&opts.mode, "mode", "result", "result, debug1 (part one with its working) or debug2 (part two with its working)")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 1*time.Minute, "The timeout for all days together")
	cmd.Flags().BoolVar(&opts.profile, "profile", false, "Profile the solvers")
	cmd.Flags().StringVar(&opts.profileFile, "profile-file", "cpu.pprof", "The file to write the CPU profile to")
	cmd.Flags().StringVar(&opts.memoryProfileFile, "memory-profile-file", "mem.pprof", "The file to write the memory profile to")
	return cmd
}

type dayOutcome struct {
	day     int
	input   string
	answers []days.Answer
	err     error
}

func (a *app) runSolve(ctx context.Context, args []string, opts solveOptions) error {
	mode, err := days.ParseRunMode(opts.mode)
	if err != nil {
		return err
	}
	registry := days.Default(a.logger, a.cfg.Workers)
	selected, err := selectDays(registry, args)
	if err != nil {
		return err
	}
	if opts.input != "" && len(selected) != 1 {
		return fmt.Errorf("--input needs exactly one day, got %d", len(selected))
	}

	if opts.profile {
		stop, err := startProfile(opts.profileFile, opts.memoryProfileFile)
		if err != nil {
			return err
		}
		defer stop()
	}

	recorder, err := results.Open(ctx, a.cfg.Results)
	if err != nil {
		return fmt.Errorf("failed to open results store: %w", err)
	}
	defer recorder.Close()

	ctx, cancel := context.WithTimeout(ctx, opts.timeout)
	defer cancel()

	outcomes := make([]dayOutcome, len(selected))
	var g errgroup.Group
	for i, day := range selected {
		g.Go(func() error {
			outcomes[i] = a.solveDay(ctx, registry, day, opts.input, mode)
			return nil
		})
	}
	_ = g.Wait()

	runID := results.NewRunID()
	now := time.Now()
	for _, o := range outcomes {
		fmt.Fprintf(a.out, "Day %d:\n", o.day)
		if o.err != nil {
			fmt.Fprintf(a.out, "Input Error - %v\n", o.err)
			continue
		}
		for _, answer := range o.answers {
			if answer.Err != nil {
				fmt.Fprintf(a.out, "Part %d Error - %v\n", answer.Part, answer.Err)
				continue
			}
			fmt.Fprintf(a.out, "\tPart %d - %d\n", answer.Part, answer.Value)
		}

		if err := recorder.Record(ctx, results.FromAnswers(runID, o.day, o.input, o.answers, now)...); err != nil {
			a.logger.Error("failed to record answers", zap.Int("day", o.day), zap.Error(err))
		}
	}

	if err := ctx.Err(); err != nil {
		fmt.Fprintln(a.out, "Context error:", err)
	}
	return nil
}

func (a *app) solveDay(ctx context.Context, registry *days.Registry, day int, inputPath string, mode days.RunMode) dayOutcome {
	solver, _ := registry.Get(day)

	var input string
	var err error
	if inputPath != "" {
		input, err = days.ReadInput(inputPath)
	} else {
		input, err = days.LoadInput(a.cfg.InputsDir, day)
	}
	if err != nil {
		return dayOutcome{day: day, err: err}
	}

	started := time.Now()
	answers := days.Run(ctx, solver, input, mode)
	a.logger.Debug("solved day", zap.Int("day", day), zap.Duration("elapsed", time.Since(started)))
	return dayOutcome{day: day, input: input, answers: answers}
}

func selectDays(registry *days.Registry, args []string) ([]int, error) {
	if len(args) == 0 {
		return registry.Days(), nil
	}

	selected := make([]int, 0, len(args))
	for _, arg := range args {
		day, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid day %q", arg)
		}
		if _, ok := registry.Get(day); !ok {
			return nil, fmt.Errorf("day %d is not registered (available: %v)", day, registry.Days())
		}
		selected = append(selected, day)
	}
	return selected, nil
}

// startProfile starts a CPU profile. The returned func stops it and writes a heap profile.
func startProfile(profileFile, memoryProfileFile string) (func(), error) {
	f, err := os.Create(profileFile)
	if err != nil {
		return nil, fmt.Errorf("error creating profile file: %w", err)
	}
	mf, err := os.Create(memoryProfileFile)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("error creating memory profile file: %w", err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		mf.Close()
		return nil, fmt.Errorf("error starting CPU profile: %w", err)
	}

	return func() {
		pprof.StopCPUProfile()
		f.Close()
		pprof.WriteHeapProfile(mf)
		mf.Close()
	}, nil
}
