package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/gateway3b/aoc2023/internal/days"
	"github.com/gateway3b/aoc2023/internal/results"
)

func (a *app) historyCmd() *cobra.Command {
	var day, limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded answers, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			recorder, err := results.Open(cmd.Context(), a.cfg.Results)
			if err != nil {
				return fmt.Errorf("failed to open results store: %w", err)
			}
			defer recorder.Close()

			records, err := recorder.History(cmd.Context(), day, limit)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Fprintln(a.out, "No answers recorded.")
				return nil
			}

			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "RUN\tDAY\tPART\tANSWER\tELAPSED\tSOLVED AT")
			for _, r := range records {
				answer := strconv.FormatInt(r.Answer, 10)
				if !r.OK() {
					answer = "error: " + r.Error
				}
				fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%v\t%s\n",
					r.RunID.String()[:8], r.Day, r.Part, answer,
					r.Elapsed.Round(time.Microsecond), r.SolvedAt.Format(time.RFC3339))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVar(&day, "day", 0, "Only show this day (0 for every day)")
	cmd.Flags().IntVar(&limit, "limit", 20, "The maximum number of answers to show")
	return cmd
}

func (a *app) daysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "days",
		Short: "List the days that have a solver",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, day := range days.Default(a.logger, a.cfg.Workers).Days() {
				fmt.Fprintf(a.out, "Day %d (input: %s)\n", day, days.InputPath(a.cfg.InputsDir, day))
			}
			return nil
		},
	}
}
