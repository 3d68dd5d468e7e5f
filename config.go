package memfit

import (
	"context"
	"fmt"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"
	"gopkg.in/yaml.v3"

	"github.com/viant/memfit/internal/logging"
	"github.com/viant/memfit/model"
	"github.com/viant/memfit/policy"
	"github.com/viant/memfit/service/fitter"
	"github.com/viant/memfit/service/generator"
	"github.com/viant/memfit/service/harness"
)

// Config is a serialisable representation of the simulator configuration.
// Sections left out of a YAML document keep their defaults.
type Config struct {
	Workload generator.Config `json:"workload" yaml:"workload"`
	Trials   TrialsConfig     `json:"trials" yaml:"trials"`
	Fitting  fitter.Config    `json:"fitting" yaml:"fitting"`
	Policies *policy.Config   `json:"policies,omitempty" yaml:"policies,omitempty"`
	Store    StoreConfig      `json:"store" yaml:"store"`
	Logging  LoggingConfig    `json:"logging" yaml:"logging"`
}

type TrialsConfig struct {
	Count   int `json:"count" yaml:"count"`
	Workers int `json:"workers" yaml:"workers"`
	// Seed 0 derives a seed from the clock.
	Seed    int64 `json:"seed,omitempty" yaml:"seed,omitempty"`
	Details bool  `json:"details,omitempty" yaml:"details,omitempty"`
}

// StoreConfig selects where trial reports are archived.  An empty URL keeps
// them in memory.
type StoreConfig struct {
	URL string `json:"url,omitempty" yaml:"url,omitempty"`
}

type LoggingConfig struct {
	Level string `json:"level" yaml:"level"`
}

// DefaultConfig returns the default simulator settings: a 1000 unit pool
// cut into runs of 50 to 200, 50 trials on one worker, shared regions and
// every policy.
func DefaultConfig() *Config {
	h := harness.DefaultConfig()
	return &Config{
		Workload: h.Workload(),
		Trials: TrialsConfig{
			Count:   h.Trials,
			Workers: h.Workers,
		},
		Fitting: fitter.DefaultConfig(),
		Logging: LoggingConfig{Level: logging.LevelInfo},
	}
}

// Validate returns the first invalid setting or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	if err := c.Workload.Validate(); err != nil {
		return fmt.Errorf("workload: %w", err)
	}
	if c.Trials.Count <= 0 {
		return fmt.Errorf("trials.count: %w", model.InvalidConfigurationf("%d must be positive", c.Trials.Count))
	}
	if c.Trials.Workers <= 0 {
		return fmt.Errorf("trials.workers: %w", model.InvalidConfigurationf("%d must be positive", c.Trials.Workers))
	}
	policies, err := c.SelectedPolicies()
	if err != nil {
		return fmt.Errorf("policies: %w: %w", model.ErrInvalidConfiguration, err)
	}
	if len(policies) == 0 {
		return fmt.Errorf("policies: %w", model.InvalidConfigurationf("every policy is blocked"))
	}
	switch c.Logging.Level {
	case "", logging.LevelDebug, logging.LevelInfo, logging.LevelWarn, logging.LevelError:
	default:
		return fmt.Errorf("logging.level: %w", model.InvalidConfigurationf("unknown level %q", c.Logging.Level))
	}
	return nil
}

// SelectedPolicies resolves the allow/block lists into the policies to run.
func (c *Config) SelectedPolicies() ([]policy.Policy, error) {
	return policy.FromConfig(c.Policies)
}

// HarnessConfig returns the trial run described by c.
func (c *Config) HarnessConfig() (harness.Config, error) {
	policies, err := c.SelectedPolicies()
	if err != nil {
		return harness.Config{}, err
	}
	return harness.Config{
		Trials:       c.Trials.Count,
		TotalSize:    c.Workload.TotalSize,
		BlockMin:     c.Workload.BlockMin,
		BlockMax:     c.Workload.BlockMax,
		AllowSharing: c.Fitting.AllowSharing,
		Policies:     policies,
		Seed:         c.Trials.Seed,
		Workers:      c.Trials.Workers,
		Details:      c.Trials.Details,
	}, nil
}

// LoadConfig reads a YAML document from any afs location (a plain path is
// read from the local file system) on top of DefaultConfig and validates it.
// Storage options are passed to afs, for example an embed.FS.
func LoadConfig(ctx context.Context, URL string, options ...storage.Option) (*Config, error) {
	location := url.Normalize(URL, file.Scheme)
	data, err := afs.New().DownloadWithURL(ctx, location, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", URL, err)
	}
	ret := DefaultConfig()
	if err = yaml.Unmarshal(data, ret); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", URL, err)
	}
	if err = ret.Validate(); err != nil {
		return nil, err
	}
	return ret, nil
}
