package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/viant/memfit/model"
)

var generateScenario bool

func init() {
	cmd := newGenerateCmd()
	addWorkloadFlags(cmd)
	cmd.Flags().BoolVar(&generateScenario, "scenario", false, "Draw a small hand-sized scenario without a pool")
	rootCmd.AddCommand(cmd)
}

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a random pool and request list",
		Long: `The generate command partitions a pool into alternating used and free runs
and draws requests sized against the free regions.

Example:
  memfit generate
  memfit generate --total 500 --min 20 --max 80 --seed 7 --json
  memfit generate --scenario`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd.Context())
		},
	}
	return cmd
}

func runGenerate(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	srv, err := newService(cfg)
	if err != nil {
		return err
	}
	var workload *model.Workload
	if generateScenario {
		workload = srv.Scenario()
	} else if workload, err = srv.Generate(ctx); err != nil {
		return fmt.Errorf("failed to generate workload: %w", err)
	}
	if jsonOut {
		return printJSON(workload)
	}
	printWorkload(workload)
	return nil
}

func printWorkload(w *model.Workload) {
	if w.Memory != nil {
		printInfo("\nPool: %d units, %d used, %d free\n", w.Memory.TotalSize, w.Memory.UsedSize(), w.Memory.FreeSize())
		for _, region := range w.Memory.Regions() {
			printVerbose("  %s\n", region)
		}
	}
	printInfo("Free regions: %s\n", formatSizes(w.Capacities))
	printInfo("Requests:     %s (demand %d)\n", formatSizes(w.Requests), w.Demand())
}
