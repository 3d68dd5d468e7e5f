package harness

import (
	"bytes"
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/memfit/internal/logging"
	"github.com/viant/memfit/metrics"
	"github.com/viant/memfit/model"
	"github.com/viant/memfit/policy"
	"github.com/viant/memfit/progress"
	"github.com/viant/memfit/service/fitter"
	"github.com/viant/memfit/service/generator"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Trials = 12
	cfg.Seed = 42
	cfg.Details = true
	return cfg
}

func TestService_Run(t *testing.T) {
	report, err := New().Run(context.Background(), testConfig())
	require.NoError(t, err)

	assert.NotEmpty(t, report.ID)
	assert.Equal(t, int64(42), report.Seed)
	assert.Equal(t, 12, report.Trials)
	assert.Equal(t, policy.All(), report.Policies)
	require.Len(t, report.Series, 3)
	require.Len(t, report.Details, 12)

	for _, p := range policy.All() {
		series := report.SeriesFor(p)
		require.NotNil(t, series, p.String())
		require.Len(t, series.Success, 12)
		for i, value := range series.Success {
			assert.GreaterOrEqual(t, value, 0.0)
			assert.LessOrEqual(t, value, 1.0)
			assert.Equal(t, report.Details[i].Success[p.String()], value)
		}
		assert.GreaterOrEqual(t, series.Mean, series.Min)
		assert.LessOrEqual(t, series.Mean, series.Max)
	}
}

// TestService_RunSharesWorkload replays every trial from its recorded seed and
// checks that all policies were scored against that one workload.
func TestService_RunSharesWorkload(t *testing.T) {
	cfg := testConfig()
	report, err := New().Run(context.Background(), cfg)
	require.NoError(t, err)

	for i, trial := range report.Details {
		assert.Equal(t, i, trial.Index)
		assert.Equal(t, TrialSeed(cfg.Seed, i), trial.Seed)

		workload, err := generator.New(generator.WithSeed(trial.Seed)).Workload(cfg.Workload())
		require.NoError(t, err)
		assert.Equal(t, len(workload.Capacities), trial.FreeRegions)
		assert.Equal(t, workload.Demand(), trial.Demand)
		for _, p := range cfg.Policies {
			placement, err := fitter.Fit(workload.Capacities, workload.Requests, p)
			require.NoError(t, err)
			assert.Equal(t, placement.Success, trial.Success[p.String()], "trial %d %v", i, p)
		}
	}
}

func TestService_RunDeterministic(t *testing.T) {
	cfg := testConfig()
	first, err := New().Run(context.Background(), cfg)
	require.NoError(t, err)
	second, err := New().Run(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, first.Series, second.Series)
	assert.Equal(t, first.Details, second.Details)

	cfg.Workers = 4
	parallel, err := New().Run(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, first.Series, parallel.Series, "results must not depend on worker count")

	cfg.Seed = 43
	other, err := New().Run(context.Background(), cfg)
	require.NoError(t, err)
	assert.NotEqual(t, first.Details, other.Details)
}

func TestService_RunExclusive(t *testing.T) {
	cfg := testConfig()
	cfg.AllowSharing = false
	report, err := New().Run(context.Background(), cfg)
	require.NoError(t, err)
	assert.False(t, report.AllowSharing)
	for _, trial := range report.Details {
		for _, p := range policy.All() {
			accepted := trial.Success[p.String()] * float64(trial.Requests)
			assert.LessOrEqual(t, accepted, float64(trial.FreeRegions)+1e-9, "trial %d %v: a region took two requests", trial.Index, p)
		}
	}
}

func TestService_RunPolicySelection(t *testing.T) {
	cfg := testConfig()
	cfg.Policies = nil
	ctx := policy.WithPolicies(context.Background(), policy.WorstFit)
	report, err := New().Run(ctx, cfg)
	require.NoError(t, err)
	assert.Equal(t, []policy.Policy{policy.WorstFit}, report.Policies)
	assert.Len(t, report.Series, 1)

	report, err = New().Run(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, policy.All(), report.Policies)
}

func TestService_RunClockSeed(t *testing.T) {
	cfg := testConfig()
	cfg.Seed = 0
	cfg.Trials = 2
	report, err := New().Run(context.Background(), cfg)
	require.NoError(t, err)
	assert.NotZero(t, report.Seed)
}

func TestService_RunInvalid(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(c *Config)
	}{
		{name: "zero trials", mutate: func(c *Config) { c.Trials = 0 }},
		{name: "zero workers", mutate: func(c *Config) { c.Workers = 0 }},
		{name: "inverted blocks", mutate: func(c *Config) { c.BlockMin, c.BlockMax = 300, 200 }},
		{name: "zero total", mutate: func(c *Config) { c.TotalSize = 0 }},
		{name: "unknown policy", mutate: func(c *Config) { c.Policies = []policy.Policy{policy.Policy(9)} }},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testConfig()
			tc.mutate(&cfg)
			report, err := New().Run(context.Background(), cfg)
			assert.ErrorIs(t, err, model.ErrInvalidConfiguration)
			assert.Nil(t, report)
		})
	}
}

func TestService_RunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	report, err := New().Run(ctx, testConfig())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, report)
}

func TestService_RunObservability(t *testing.T) {
	reg := prometheus.NewRegistry()
	buf := &bytes.Buffer{}
	logger, err := logging.New(buf, "info")
	require.NoError(t, err)

	ctx, tracker := progress.WithNewTracker(context.Background(), "run", nil)
	srv := New(WithMetrics(metrics.NewMetrics(reg)), WithLogger(logger))
	cfg := testConfig()
	cfg.Workers = 3
	report, err := srv.Run(ctx, cfg)
	require.NoError(t, err)

	snapshot := tracker.Snapshot()
	assert.Equal(t, cfg.Trials, snapshot.TotalTrials)
	assert.Equal(t, cfg.Trials, snapshot.CompletedTrials)
	assert.Equal(t, 0, snapshot.FailedTrials)

	submitted := 0
	for _, trial := range report.Details {
		submitted += trial.Requests * len(cfg.Policies)
	}
	assert.Equal(t, submitted, snapshot.AcceptedRequests+snapshot.RejectedRequests)

	count, err := testutil.GatherAndCount(reg, "memfit_trials_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Contains(t, buf.String(), `msg="starting trials"`)
	assert.Contains(t, buf.String(), `msg="policy summary"`)
}

func TestTrialSeed(t *testing.T) {
	seen := map[int64]bool{}
	for i := range 1000 {
		seed := TrialSeed(7, i)
		assert.False(t, seen[seed], "duplicate seed at %d", i)
		seen[seed] = true
	}
	assert.Equal(t, TrialSeed(7, 3), TrialSeed(7, 3))
	assert.NotEqual(t, TrialSeed(7, 3), TrialSeed(8, 3))
}
