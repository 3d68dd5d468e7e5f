package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-kit/log"
	"github.com/spf13/cobra"

	"github.com/viant/memfit"
	"github.com/viant/memfit/internal/logging"
	"github.com/viant/memfit/policy"
)

var (
	// Global flags
	verbose   bool
	quiet     bool
	jsonOut   bool
	configURL string
	logLevel  string
)

// workload overrides shared by generate, simulate and trials
var (
	totalSize int
	blockMin  int
	blockMax  int
	seed      int64
	exclusive bool
)

var rootCmd = &cobra.Command{
	Use:   "memfit",
	Short: "Compare first-fit, best-fit and worst-fit memory placement",
	Long: `memfit simulates placing allocation requests into the free regions of a
memory pool under the first-fit, best-fit and worst-fit policies, and measures
how many requests each policy manages to place.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringVar(&configURL, "config", "", "YAML configuration file or afs URL")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		printError("%v\n", err)
		os.Exit(1)
	}
}

func addWorkloadFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&totalSize, "total", 0, "Pool size (default from config: 1000)")
	cmd.Flags().IntVar(&blockMin, "min", 0, "Minimum run length (default from config: 50)")
	cmd.Flags().IntVar(&blockMax, "max", 0, "Maximum run length (default from config: 200)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Random seed, 0 derives one from the clock")
	cmd.Flags().BoolVar(&exclusive, "exclusive", false, "Allow at most one request per free region")
}

// loadConfig reads --config, or the defaults, and applies flag overrides.
func loadConfig(ctx context.Context) (*memfit.Config, error) {
	cfg := memfit.DefaultConfig()
	if configURL != "" {
		printVerbose("Loading config: %s\n", configURL)
		var err error
		if cfg, err = memfit.LoadConfig(ctx, configURL); err != nil {
			return nil, err
		}
	}
	if totalSize > 0 {
		cfg.Workload.TotalSize = totalSize
	}
	if blockMin > 0 {
		cfg.Workload.BlockMin = blockMin
	}
	if blockMax > 0 {
		cfg.Workload.BlockMax = blockMax
	}
	if seed != 0 {
		cfg.Trials.Seed = seed
	}
	if exclusive {
		cfg.Fitting.AllowSharing = false
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	return cfg, nil
}

// selectPolicy restricts cfg to the policy named on the command line.
func selectPolicy(cfg *memfit.Config, name string) error {
	if name == "" {
		return nil
	}
	p, err := policy.Parse(name)
	if err != nil {
		return err
	}
	cfg.Policies = &policy.Config{AllowList: []string{p.String()}}
	return nil
}

func newLogger(cfg *memfit.Config) (log.Logger, error) {
	lvl := cfg.Logging.Level
	switch {
	case quiet:
		lvl = logging.LevelError
	case verbose:
		lvl = logging.LevelDebug
	}
	return logging.New(os.Stderr, lvl)
}

func newService(cfg *memfit.Config, options ...memfit.Option) (*memfit.Service, error) {
	logger, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}
	options = append([]memfit.Option{memfit.WithConfig(cfg), memfit.WithLogger(logger)}, options...)
	if seed != 0 {
		options = append(options, memfit.WithSeed(seed))
	}
	return memfit.New(options...)
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func percent(fraction float64) string {
	return fmt.Sprintf("%.1f%%", fraction*100)
}
