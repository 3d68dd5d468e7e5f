package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var simulatePolicy string

func init() {
	cmd := newSimulateCmd()
	addWorkloadFlags(cmd)
	cmd.Flags().StringVar(&simulatePolicy, "policy", "", "first-fit, best-fit or worst-fit (default: all)")
	rootCmd.AddCommand(cmd)
}

func newSimulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Generate one workload and compare the policies on it",
		Long: `The simulate command generates one pool and request list and fits it with
every selected policy.

Example:
  memfit simulate --seed 7
  memfit simulate --exclusive --policy worst-fit -v
  memfit simulate --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate(cmd.Context())
		},
	}
	return cmd
}

func runSimulate(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	if err = selectPolicy(cfg, simulatePolicy); err != nil {
		return err
	}
	srv, err := newService(cfg)
	if err != nil {
		return err
	}
	simulation, err := srv.Simulate(ctx)
	if err != nil {
		return fmt.Errorf("failed to simulate: %w", err)
	}
	if jsonOut {
		return printJSON(simulation)
	}
	printWorkload(simulation.Workload)
	for _, result := range simulation.Results {
		printPlacement(result.Placement)
	}
	return nil
}
