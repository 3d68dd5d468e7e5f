package fitter

import (
	"github.com/viant/memfit/model"
	"github.com/viant/memfit/policy"
)

// Config represents fitting engine configuration
type Config struct {
	// AllowSharing lets several requests share a free region while their
	// cumulative size fits.  When false a region accepts at most one request
	// and is retired once used, whatever slack remains.
	AllowSharing bool `json:"allowSharing" yaml:"allowSharing"`
}

// DefaultConfig returns the default fitting configuration
func DefaultConfig() Config {
	return Config{AllowSharing: true}
}

// Service applies placement policies to workloads.  It holds no state besides
// its configuration and is safe for concurrent use.
type Service struct {
	config Config
}

// New creates a fitting service
func New(options ...Option) *Service {
	s := &Service{config: DefaultConfig()}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// Config returns the service configuration
func (s *Service) Config() Config {
	return s.config
}

// Fit places requests, in order, into the free regions described by
// capacities using policy p.  Rejected requests are recorded and skipped; a
// rejection never aborts the run.  An empty capacity or request list yields an
// empty placement with a success fraction of 0.
func (s *Service) Fit(capacities, requests []int, p policy.Policy) (*model.Placement, error) {
	if err := validate(capacities, requests, p); err != nil {
		return nil, err
	}
	selectFn := selectors[p]
	b := newBoard(capacities, s.config.AllowSharing)
	ret := &model.Placement{
		Policy:       p,
		AllowSharing: s.config.AllowSharing,
		Capacities:   append([]int{}, capacities...),
		Requests:     append([]int{}, requests...),
		Regions:      make([][]int, len(capacities)),
		Steps:        make([]model.Step, 0, len(requests)),
		Submitted:    len(requests),
	}
	for i := range ret.Regions {
		ret.Regions[i] = []int{}
	}
	for i, size := range requests {
		step := model.Step{Index: i, Size: size, Region: -1}
		if idx := selectFn(b, size); idx >= 0 {
			step.Region = idx
			step.Capacity = capacities[idx]
			step.Slack = b.slack(idx, size)
			b.place(idx, size)
			ret.Regions[idx] = append(ret.Regions[idx], size)
			ret.Accepted++
		}
		ret.Steps = append(ret.Steps, step)
	}
	ret.Success = model.SuccessFraction(ret.Accepted, ret.Submitted)
	return ret, nil
}

// Fit is a convenience wrapper around New(options...).Fit.
func Fit(capacities, requests []int, p policy.Policy, options ...Option) (*model.Placement, error) {
	return New(options...).Fit(capacities, requests, p)
}

func validate(capacities, requests []int, p policy.Policy) error {
	if !p.IsValid() {
		return model.InvalidConfigurationf("unsupported placement policy %v", p)
	}
	for i, capacity := range capacities {
		if capacity < 0 {
			return model.InvalidConfigurationf("free region %d has negative capacity %d", i, capacity)
		}
	}
	for i, size := range requests {
		if size <= 0 {
			return model.InvalidConfigurationf("request %d has non-positive size %d", i, size)
		}
	}
	return nil
}
