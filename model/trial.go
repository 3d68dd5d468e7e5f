package model

import (
	"sort"
	"time"

	"github.com/viant/memfit/policy"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// TrialSeries holds one policy's success fraction per trial, in trial order,
// with summary statistics.
type TrialSeries struct {
	Policy  policy.Policy `json:"policy" yaml:"policy"`
	Success []float64     `json:"success" yaml:"success"`
	Mean    float64       `json:"mean" yaml:"mean"`
	StdDev  float64       `json:"stdDev" yaml:"stdDev"`
	Min     float64       `json:"min" yaml:"min"`
	Max     float64       `json:"max" yaml:"max"`
}

// NewTrialSeries computes the summary of values.  An empty series has all
// statistics set to 0; a single trial has a zero standard deviation.
func NewTrialSeries(p policy.Policy, values []float64) *TrialSeries {
	ret := &TrialSeries{Policy: p, Success: append([]float64(nil), values...)}
	if len(values) == 0 {
		return ret
	}
	ret.Mean = stat.Mean(values, nil)
	if len(values) > 1 {
		ret.StdDev = stat.StdDev(values, nil)
	}
	ret.Min = floats.Min(values)
	ret.Max = floats.Max(values)
	return ret
}

// Trial describes the workload of one repetition and the success fraction
// each policy reached on it.
type Trial struct {
	Index       int                `json:"index" yaml:"index"`
	Seed        int64              `json:"seed" yaml:"seed"`
	FreeRegions int                `json:"freeRegions" yaml:"freeRegions"`
	FreeSize    int                `json:"freeSize" yaml:"freeSize"`
	Requests    int                `json:"requests" yaml:"requests"`
	Demand      int                `json:"demand" yaml:"demand"`
	Success     map[string]float64 `json:"success" yaml:"success"`
}

// Report is the outcome of a trial run.  Series maps a policy name onto its
// trial series.
type Report struct {
	ID           string                  `json:"id" yaml:"id"`
	Seed         int64                   `json:"seed" yaml:"seed"`
	Trials       int                     `json:"trials" yaml:"trials"`
	TotalSize    int                     `json:"totalSize" yaml:"totalSize"`
	BlockMin     int                     `json:"blockMin" yaml:"blockMin"`
	BlockMax     int                     `json:"blockMax" yaml:"blockMax"`
	AllowSharing bool                    `json:"allowSharing" yaml:"allowSharing"`
	Policies     []policy.Policy         `json:"policies" yaml:"policies"`
	StartedAt    time.Time               `json:"startedAt" yaml:"startedAt"`
	Elapsed      time.Duration           `json:"elapsed" yaml:"elapsed"`
	Series       map[string]*TrialSeries `json:"series" yaml:"series"`
	Details      []*Trial                `json:"details,omitempty" yaml:"details,omitempty"`
}

// SeriesFor returns the series of p or nil.
func (r *Report) SeriesFor(p policy.Policy) *TrialSeries {
	if r == nil || r.Series == nil {
		return nil
	}
	return r.Series[p.String()]
}

// Ranking returns the report's series ordered by descending mean; ties keep
// the run's policy order.
func (r *Report) Ranking() []*TrialSeries {
	var ret []*TrialSeries
	for _, p := range r.Policies {
		if series := r.SeriesFor(p); series != nil {
			ret = append(ret, series)
		}
	}
	sort.SliceStable(ret, func(i, j int) bool { return ret[i].Mean > ret[j].Mean })
	return ret
}
