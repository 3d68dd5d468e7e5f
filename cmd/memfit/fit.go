package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/viant/memfit/model"
)

var (
	fitCapacities []int
	fitRequests   []int
	fitPolicy     string
	fitExclusive  bool
)

func init() {
	cmd := newFitCmd()
	cmd.Flags().IntSliceVar(&fitCapacities, "capacities", nil, "Free region capacities, in region order")
	cmd.Flags().IntSliceVar(&fitRequests, "requests", nil, "Request sizes, in submission order")
	cmd.Flags().StringVar(&fitPolicy, "policy", "", "first-fit, best-fit or worst-fit (default: all)")
	cmd.Flags().BoolVar(&fitExclusive, "exclusive", false, "Allow at most one request per free region")
	rootCmd.AddCommand(cmd)
}

func newFitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fit",
		Short: "Place the given requests into the given free regions",
		Long: `The fit command places requests, in order, into free regions of the given
capacities and prints every placement decision.

Example:
  memfit fit --capacities 10,20,15 --requests 12,8,5
  memfit fit --capacities 10,20,15 --requests 12,8,5 --policy best-fit --json
  memfit fit --capacities 10,20 --requests 3,3,3 --exclusive`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFit(cmd.Context())
		},
	}
	return cmd
}

func runFit(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	if fitExclusive {
		cfg.Fitting.AllowSharing = false
	}
	if err = selectPolicy(cfg, fitPolicy); err != nil {
		return err
	}
	srv, err := newService(cfg)
	if err != nil {
		return err
	}
	simulation, err := srv.Compare(ctx, &model.Workload{Capacities: fitCapacities, Requests: fitRequests})
	if err != nil {
		return fmt.Errorf("failed to fit requests: %w", err)
	}
	if jsonOut {
		return printJSON(simulation)
	}
	for _, result := range simulation.Results {
		printPlacement(result.Placement)
	}
	return nil
}

func printPlacement(p *model.Placement) {
	mode := "shared"
	if !p.AllowSharing {
		mode = "exclusive"
	}
	printInfo("\n%s (%s regions):\n", p.Policy, mode)
	for _, step := range p.Steps {
		printVerbose("  %s\n", step)
	}
	for _, usage := range p.Usage() {
		printInfo("  region %d  capacity %4d  used %4d  free %4d  %s\n",
			usage.Index+1, usage.Capacity, usage.Used, usage.Free, formatSizes(usage.Requests))
	}
	if rejected := p.Rejected(); len(rejected) > 0 {
		printInfo("  rejected: %s\n", formatSizes(rejected))
	}
	capacity, used := p.Totals()
	printInfo("  placed %d of %d requests (%s), %d of %d units used\n",
		p.Accepted, p.Submitted, percent(p.Success), used, capacity)
}

func formatSizes(sizes []int) string {
	parts := make([]string, len(sizes))
	for i, size := range sizes {
		parts[i] = fmt.Sprint(size)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
