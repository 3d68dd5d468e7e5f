package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/memfit/policy"
)

func TestSuccessFraction(t *testing.T) {
	assert.Equal(t, 0.0, SuccessFraction(0, 0))
	assert.Equal(t, 0.5, SuccessFraction(2, 4))
	assert.Equal(t, 1.0, SuccessFraction(3, 3))
}

func TestStep_String(t *testing.T) {
	assert.Equal(t, "request 12 assigned to region 2 (20)", Step{Size: 12, Region: 1, Capacity: 20}.String())
	assert.Equal(t, "request 12 could not be allocated", Step{Size: 12, Region: -1}.String())
}

func TestPlacement_Usage(t *testing.T) {
	p := &Placement{
		Policy:     policy.FirstFit,
		Capacities: []int{10, 20, 15},
		Regions:    [][]int{{8}, {12}, {}},
		Steps: []Step{
			{Index: 0, Size: 12, Region: 1, Capacity: 20, Slack: 8},
			{Index: 1, Size: 8, Region: 0, Capacity: 10, Slack: 2},
			{Index: 2, Size: 30, Region: -1},
		},
	}
	usage := p.Usage()
	assert.Equal(t, []RegionUsage{
		{Index: 0, Capacity: 10, Requests: []int{8}, Used: 8, Free: 2, Busy: true},
		{Index: 1, Capacity: 20, Requests: []int{12}, Used: 12, Free: 8, Busy: true},
		{Index: 2, Capacity: 15, Requests: nil, Used: 0, Free: 15, Busy: false},
	}, usage)

	capacity, used := p.Totals()
	assert.Equal(t, 45, capacity)
	assert.Equal(t, 20, used)
	assert.Equal(t, []int{30}, p.Rejected())
}

func TestNewTrialSeries(t *testing.T) {
	empty := NewTrialSeries(policy.BestFit, nil)
	assert.Equal(t, 0.0, empty.Mean)
	assert.Equal(t, 0.0, empty.StdDev)

	single := NewTrialSeries(policy.BestFit, []float64{0.75})
	assert.Equal(t, 0.75, single.Mean)
	assert.Equal(t, 0.0, single.StdDev)
	assert.False(t, math.IsNaN(single.StdDev))

	series := NewTrialSeries(policy.WorstFit, []float64{0.5, 1, 0.75, 0.75})
	assert.InDelta(t, 0.75, series.Mean, 1e-9)
	assert.InDelta(t, math.Sqrt(1.0/24.0), series.StdDev, 1e-9)
	assert.Equal(t, 0.5, series.Min)
	assert.Equal(t, 1.0, series.Max)
}

func TestReport_Ranking(t *testing.T) {
	report := &Report{
		Policies: policy.All(),
		Series: map[string]*TrialSeries{
			"first-fit": NewTrialSeries(policy.FirstFit, []float64{0.8}),
			"best-fit":  NewTrialSeries(policy.BestFit, []float64{0.9}),
			"worst-fit": NewTrialSeries(policy.WorstFit, []float64{0.8}),
		},
	}
	ranking := report.Ranking()
	assert.Equal(t, policy.BestFit, ranking[0].Policy)
	assert.Equal(t, policy.FirstFit, ranking[1].Policy)
	assert.Equal(t, policy.WorstFit, ranking[2].Policy)
	assert.Nil(t, (&Report{}).SeriesFor(policy.FirstFit))
}
