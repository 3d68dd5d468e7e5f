package harness

import (
	"context"
	"fmt"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"golang.org/x/sync/errgroup"

	"github.com/viant/memfit/internal/clock"
	"github.com/viant/memfit/internal/idgen"
	"github.com/viant/memfit/metrics"
	"github.com/viant/memfit/model"
	"github.com/viant/memfit/policy"
	"github.com/viant/memfit/progress"
	"github.com/viant/memfit/service/fitter"
	"github.com/viant/memfit/service/generator"
	"github.com/viant/memfit/tracing"
)

// Service runs trials
type Service struct {
	logger  log.Logger
	metrics *metrics.Metrics
}

// New creates a harness
func New(options ...Option) *Service {
	s := &Service{logger: log.NewNopLogger()}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// Run executes cfg.Trials trials, up to cfg.Workers at a time, and returns
// the aggregated report.  Cancelling ctx stops scheduling further trials and
// Run returns the context error without a report.
func (s *Service) Run(ctx context.Context, cfg Config) (ret *model.Report, err error) {
	if err = cfg.Validate(); err != nil {
		return nil, err
	}
	policies := cfg.Policies
	if len(policies) == 0 {
		policies = policy.FromContext(ctx)
	}
	if len(policies) == 0 {
		policies = policy.All()
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = clock.Now().UnixNano()
	}

	ctx, span := tracing.StartSpan(ctx, "memfit.trials")
	defer func() { tracing.EndSpan(span, err) }()
	span.WithInt("memfit.trials", cfg.Trials).WithAttributes(map[string]string{
		"memfit.seed": fmt.Sprint(seed),
	})

	startedAt := clock.Now()
	report := &model.Report{
		ID:           idgen.New(),
		Seed:         seed,
		Trials:       cfg.Trials,
		TotalSize:    cfg.TotalSize,
		BlockMin:     cfg.BlockMin,
		BlockMax:     cfg.BlockMax,
		AllowSharing: cfg.AllowSharing,
		Policies:     append([]policy.Policy(nil), policies...),
		StartedAt:    startedAt,
	}
	level.Info(s.logger).Log("msg", "starting trials", "id", report.ID, "trials", cfg.Trials, "workers", cfg.Workers, "seed", seed)
	progress.UpdateCtx(ctx, progress.Delta{Total: cfg.Trials})

	engine := fitter.New(fitter.WithSharing(cfg.AllowSharing))
	trials := make([]*model.Trial, cfg.Trials)
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(cfg.Workers)
	for i := range cfg.Trials {
		if groupCtx.Err() != nil {
			break
		}
		group.Go(func() error {
			trial, err := s.runTrial(groupCtx, engine, cfg.Workload(), policies, i, TrialSeed(seed, i))
			if err != nil {
				return err
			}
			trials[i] = trial
			return nil
		})
	}
	if err = group.Wait(); err == nil {
		err = ctx.Err()
	}
	if err != nil {
		level.Warn(s.logger).Log("msg", "trials aborted", "id", report.ID, "err", err)
		return nil, err
	}

	report.Series = make(map[string]*model.TrialSeries, len(policies))
	for _, p := range policies {
		values := make([]float64, len(trials))
		for i, trial := range trials {
			values[i] = trial.Success[p.String()]
		}
		report.Series[p.String()] = model.NewTrialSeries(p, values)
	}
	if cfg.Details {
		report.Details = trials
	}
	report.Elapsed = clock.Since(startedAt)

	for _, series := range report.Ranking() {
		level.Info(s.logger).Log("msg", "policy summary", "id", report.ID, "policy", series.Policy, "mean", series.Mean, "stddev", series.StdDev)
	}
	return report, nil
}

func (s *Service) runTrial(ctx context.Context, engine *fitter.Service, workload generator.Config, policies []policy.Policy, index int, seed int64) (ret *model.Trial, err error) {
	if err = ctx.Err(); err != nil {
		return nil, err
	}
	ctx, span := tracing.StartSpan(ctx, "memfit.trial")
	span.WithAttributes(tracing.TrialAttributes(index, seed))
	defer func() {
		if err != nil {
			s.metrics.TrialFailed()
			progress.UpdateCtx(ctx, progress.Delta{Failed: 1})
		}
		tracing.EndSpan(span, err)
	}()

	w, err := generator.New(generator.WithSeed(seed)).Workload(workload)
	if err != nil {
		return nil, fmt.Errorf("trial %d: %w", index, err)
	}
	ret = &model.Trial{
		Index:       index,
		Seed:        seed,
		FreeRegions: len(w.Capacities),
		FreeSize:    w.Memory.FreeSize(),
		Requests:    len(w.Requests),
		Demand:      w.Demand(),
		Success:     make(map[string]float64, len(policies)),
	}
	delta := progress.Delta{Completed: 1}
	for _, p := range policies {
		placement, err := engine.Fit(w.Capacities, w.Requests, p)
		if err != nil {
			return nil, fmt.Errorf("trial %d: %w", index, err)
		}
		ret.Success[p.String()] = placement.Success
		delta.Accepted += placement.Accepted
		delta.Rejected += placement.Submitted - placement.Accepted
		s.metrics.ObservePlacement(placement)
	}
	span.WithInt("memfit.requests", ret.Requests).WithInt("memfit.free_regions", ret.FreeRegions)
	progress.UpdateCtx(ctx, delta)
	s.metrics.TrialCompleted()
	level.Debug(s.logger).Log("msg", "trial completed", "trial", index, "seed", seed, "regions", ret.FreeRegions, "requests", ret.Requests)
	return ret, nil
}

// TrialSeed derives the seed of trial index from the run's base seed with a
// splitmix64 step, so neighbouring trials get unrelated streams.
func TrialSeed(base int64, index int) int64 {
	z := uint64(base) + uint64(index+1)*0x9E3779B97F4A7C15
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return int64(z ^ (z >> 31))
}
