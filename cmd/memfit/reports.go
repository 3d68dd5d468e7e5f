package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/viant/memfit/service/dao"
)

var (
	reportsStore  string
	reportsPolicy string
	reportsSeed   string
)

func init() {
	cmd := newReportsCmd()
	cmd.Flags().StringVar(&reportsStore, "store", "", "Directory or afs URL reports were archived in")
	cmd.Flags().StringVar(&reportsPolicy, "policy", "", "Only reports that compared this policy")
	cmd.Flags().StringVar(&reportsSeed, "seed", "", "Only reports run with this seed")
	rootCmd.AddCommand(cmd)
}

func newReportsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reports [id]",
		Short: "List archived trial reports or show one",
		Long: `The reports command lists the trial reports archived in a store, oldest
first, or shows the report with the given id.

Example:
  memfit reports --store ./reports
  memfit reports --store ./reports --policy best-fit --seed 42
  memfit reports --store ./reports 6f1c... --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReports(cmd.Context(), args)
		},
	}
	return cmd
}

func runReports(ctx context.Context, args []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	if reportsStore != "" {
		cfg.Store.URL = reportsStore
	}
	if cfg.Store.URL == "" {
		return fmt.Errorf("a report store is required, use --store or store.url in the config")
	}
	srv, err := newService(cfg)
	if err != nil {
		return err
	}
	if len(args) == 1 {
		report, err := srv.Report(ctx, args[0])
		if err != nil {
			return err
		}
		if jsonOut {
			return printJSON(report)
		}
		printReport(report)
		return nil
	}

	var parameters []*dao.Parameter
	if reportsPolicy != "" {
		parameters = append(parameters, dao.NewParameter(dao.ParameterPolicy, reportsPolicy))
	}
	if reportsSeed != "" {
		parameters = append(parameters, dao.NewParameter(dao.ParameterSeed, reportsSeed))
	}
	reports, err := srv.Reports(ctx, parameters...)
	if err != nil {
		return err
	}
	if jsonOut {
		return printJSON(reports)
	}
	for _, report := range reports {
		best := report.Ranking()
		leader := "-"
		if len(best) > 0 {
			leader = fmt.Sprintf("%s %s", best[0].Policy, percent(best[0].Mean))
		}
		printInfo("%s  %s  trials %d  seed %d  best %s\n",
			report.ID, report.StartedAt.Format("2006-01-02 15:04:05"), report.Trials, report.Seed, leader)
	}
	printVerbose("%d report(s)\n", len(reports))
	return nil
}
