package harness

import (
	"github.com/viant/memfit/model"
	"github.com/viant/memfit/policy"
	"github.com/viant/memfit/service/generator"
)

// Config describes one trial run.
type Config struct {
	Trials    int `json:"trials" yaml:"trials"`
	TotalSize int `json:"totalSize" yaml:"totalSize"`
	BlockMin  int `json:"blockMin" yaml:"blockMin"`
	BlockMax  int `json:"blockMax" yaml:"blockMax"`

	AllowSharing bool `json:"allowSharing" yaml:"allowSharing"`
	// Policies lists the policies compared on every trial.  When empty the
	// selection carried by the context applies, falling back to all policies.
	Policies []policy.Policy `json:"policies,omitempty" yaml:"policies,omitempty"`

	// Seed 0 derives the base seed from the clock; the seed used is recorded
	// on the report.
	Seed    int64 `json:"seed,omitempty" yaml:"seed,omitempty"`
	Workers int   `json:"workers" yaml:"workers"`
	// Details keeps per-trial workload summaries on the report.
	Details bool `json:"details,omitempty" yaml:"details,omitempty"`
}

// DefaultConfig returns the default trial run configuration
func DefaultConfig() Config {
	workload := generator.DefaultConfig()
	return Config{
		Trials:       50,
		TotalSize:    workload.TotalSize,
		BlockMin:     workload.BlockMin,
		BlockMax:     workload.BlockMax,
		AllowSharing: true,
		Policies:     policy.All(),
		Workers:      1,
	}
}

// Workload returns the generator parameters of each trial.
func (c Config) Workload() generator.Config {
	return generator.Config{TotalSize: c.TotalSize, BlockMin: c.BlockMin, BlockMax: c.BlockMax}
}

// Validate returns ErrInvalidConfiguration when the run cannot be carried out.
func (c Config) Validate() error {
	if c.Trials <= 0 {
		return model.InvalidConfigurationf("trials %d must be positive", c.Trials)
	}
	if c.Workers <= 0 {
		return model.InvalidConfigurationf("workers %d must be positive", c.Workers)
	}
	if err := c.Workload().Validate(); err != nil {
		return err
	}
	for _, p := range c.Policies {
		if !p.IsValid() {
			return model.InvalidConfigurationf("unsupported placement policy %v", p)
		}
	}
	return nil
}
