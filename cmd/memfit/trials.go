package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/viant/memfit/model"
	"github.com/viant/memfit/progress"
)

var (
	trialsCount   int
	trialsWorkers int
	trialsStore   string
	trialsDetails bool
)

func init() {
	cmd := newTrialsCmd()
	addWorkloadFlags(cmd)
	cmd.Flags().IntVar(&trialsCount, "trials", 0, "Number of trials (default from config: 50)")
	cmd.Flags().IntVar(&trialsWorkers, "workers", 0, "Trials run in parallel (default from config: 1)")
	cmd.Flags().StringVar(&trialsStore, "store", "", "Directory or afs URL the report is archived in")
	cmd.Flags().BoolVar(&trialsDetails, "details", false, "Keep per-trial workload summaries on the report")
	rootCmd.AddCommand(cmd)
}

func newTrialsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trials",
		Short: "Repeat generate-then-fit trials and rank the policies",
		Long: `The trials command generates a fresh workload per trial, fits it with every
selected policy and reports each policy's mean success rate.

Example:
  memfit trials
  memfit trials --trials 500 --workers 8 --seed 42
  memfit trials --exclusive --store ./reports --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrials(cmd.Context())
		},
	}
	return cmd
}

func runTrials(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	if trialsCount > 0 {
		cfg.Trials.Count = trialsCount
	}
	if trialsWorkers > 0 {
		cfg.Trials.Workers = trialsWorkers
	}
	if trialsStore != "" {
		cfg.Store.URL = trialsStore
	}
	if trialsDetails {
		cfg.Trials.Details = true
	}
	srv, err := newService(cfg)
	if err != nil {
		return err
	}

	ctx, _ = progress.WithNewTracker(ctx, "", func(p progress.Progress) {
		printVerbose("\rtrials %d/%d", p.CompletedTrials, p.TotalTrials)
	})
	report, err := srv.RunTrials(ctx)
	printVerbose("\n")
	if err != nil {
		return fmt.Errorf("failed to run trials: %w", err)
	}
	if jsonOut {
		return printJSON(report)
	}
	printReport(report)
	return nil
}

func printReport(r *model.Report) {
	mode := "shared"
	if !r.AllowSharing {
		mode = "exclusive"
	}
	printInfo("\nReport %s\n", r.ID)
	printInfo("  %d trials, seed %d, pool %d, runs %d-%d, %s regions\n",
		r.Trials, r.Seed, r.TotalSize, r.BlockMin, r.BlockMax, mode)
	for _, series := range r.Ranking() {
		printInfo("  %-10s mean %7s  stddev %6.3f  min %7s  max %7s\n",
			series.Policy, percent(series.Mean), series.StdDev, percent(series.Min), percent(series.Max))
	}
}
