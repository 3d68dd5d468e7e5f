package memfit

import (
	"context"
	"fmt"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/viant/memfit/metrics"
	"github.com/viant/memfit/model"
	"github.com/viant/memfit/policy"
	"github.com/viant/memfit/service/dao"
	"github.com/viant/memfit/service/dao/report/fs"
	"github.com/viant/memfit/service/dao/report/memory"
	"github.com/viant/memfit/service/fitter"
	"github.com/viant/memfit/service/generator"
	"github.com/viant/memfit/service/harness"
	"github.com/viant/memfit/tracing"
)

// Service is the entry point every front-end goes through.  It is safe for
// concurrent use.
type Service struct {
	config     *Config
	logger     log.Logger
	registerer prometheus.Registerer
	reports    dao.Service[string, model.Report]
	seed       int64

	policies  []policy.Policy
	fitter    *fitter.Service
	generator *generator.Service
	harness   *harness.Service
}

// New creates a service.  The configuration is validated and, unless a
// report store was supplied, the one named by Config.Store is opened.
func New(options ...Option) (*Service, error) {
	s := &Service{config: DefaultConfig(), logger: log.NewNopLogger()}
	for _, opt := range options {
		opt(s)
	}
	if err := s.init(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Service) init() (err error) {
	if err = s.config.Validate(); err != nil {
		return err
	}
	if s.policies, err = s.config.SelectedPolicies(); err != nil {
		return err
	}
	if s.reports == nil {
		if s.config.Store.URL == "" {
			s.reports = memory.New()
		} else if s.reports, err = fs.New(context.Background(), s.config.Store.URL, fs.WithLogger(s.logger)); err != nil {
			return err
		}
	}
	var generatorOptions []generator.Option
	if s.seed != 0 {
		generatorOptions = append(generatorOptions, generator.WithSeed(s.seed))
	}
	s.generator = generator.New(generatorOptions...)
	s.fitter = fitter.New(fitter.WithConfig(s.config.Fitting))
	harnessOptions := []harness.Option{harness.WithLogger(s.logger)}
	if s.registerer != nil {
		harnessOptions = append(harnessOptions, harness.WithMetrics(metrics.NewMetrics(s.registerer)))
	}
	s.harness = harness.New(harnessOptions...)
	return nil
}

// Config returns the service configuration
func (s *Service) Config() *Config {
	return s.config
}

// Policies returns the policies the service compares.
func (s *Service) Policies() []policy.Policy {
	return append([]policy.Policy(nil), s.policies...)
}

// Fit places requests into capacities with policy p using the configured
// sharing mode.
func (s *Service) Fit(ctx context.Context, capacities, requests []int, p policy.Policy) (ret *model.Placement, err error) {
	_, span := tracing.StartSpan(ctx, "memfit.fit")
	defer func() { tracing.EndSpan(span, err) }()
	span.WithAttributes(map[string]string{"memfit.policy": p.String()}).
		WithInt("memfit.regions", len(capacities)).
		WithInt("memfit.requests", len(requests))

	if ret, err = s.fitter.Fit(capacities, requests, p); err != nil {
		return nil, err
	}
	span.WithFloat("memfit.success", ret.Success)
	level.Debug(s.logger).Log("msg", "fitted requests", "policy", p, "accepted", ret.Accepted, "submitted", ret.Submitted)
	return ret, nil
}

// Generate draws a pool and a request list from the configured workload.
func (s *Service) Generate(ctx context.Context) (*model.Workload, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.generator.Workload(s.config.Workload)
}

// Scenario draws a small hand-sized workload without a backing pool.
func (s *Service) Scenario() *model.Workload {
	return s.generator.Scenario()
}

// Compare fits every selected policy against w.  When w carries a pool,
// each result also carries the pool with its fitted regions.
func (s *Service) Compare(ctx context.Context, w *model.Workload) (*model.Simulation, error) {
	if w == nil {
		return nil, model.InvalidConfigurationf("workload is nil")
	}
	ret := &model.Simulation{Workload: w}
	for _, p := range s.policies {
		placement, err := s.Fit(ctx, w.Capacities, w.Requests, p)
		if err != nil {
			return nil, err
		}
		result := &model.PolicyResult{Policy: p, Placement: placement}
		if w.Memory != nil {
			if result.Memory, err = w.Memory.WithPlacement(placement); err != nil {
				return nil, fmt.Errorf("%v: %w", p, err)
			}
		}
		ret.Results = append(ret.Results, result)
	}
	return ret, nil
}

// Simulate generates one workload and compares every selected policy on it.
func (s *Service) Simulate(ctx context.Context) (*model.Simulation, error) {
	w, err := s.Generate(ctx)
	if err != nil {
		return nil, err
	}
	return s.Compare(ctx, w)
}

// RunTrials runs the configured trials and archives the report.
func (s *Service) RunTrials(ctx context.Context) (*model.Report, error) {
	cfg, err := s.config.HarnessConfig()
	if err != nil {
		return nil, err
	}
	report, err := s.harness.Run(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err = s.reports.Save(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to archive report %s: %w", report.ID, err)
	}
	level.Info(s.logger).Log("msg", "trials archived", "id", report.ID, "elapsed", report.Elapsed)
	return report, nil
}

// Report loads an archived report.
func (s *Service) Report(ctx context.Context, id string) (*model.Report, error) {
	return s.reports.Load(ctx, id)
}

// Reports lists archived reports, optionally filtered by dao parameters.
func (s *Service) Reports(ctx context.Context, parameters ...*dao.Parameter) ([]*model.Report, error) {
	return s.reports.List(ctx, parameters...)
}
