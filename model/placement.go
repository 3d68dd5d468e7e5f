package model

import (
	"fmt"

	"github.com/viant/memfit/policy"
)

// Step records the decision taken for one request, in submission order.
// Region is -1 when the request was rejected.
type Step struct {
	Index    int `json:"index" yaml:"index"`
	Size     int `json:"size" yaml:"size"`
	Region   int `json:"region" yaml:"region"`
	Capacity int `json:"capacity,omitempty" yaml:"capacity,omitempty"`
	Slack    int `json:"slack,omitempty" yaml:"slack,omitempty"`
}

// Accepted reports whether the request was placed.
func (s Step) Accepted() bool {
	return s.Region >= 0
}

func (s Step) String() string {
	if !s.Accepted() {
		return fmt.Sprintf("request %d could not be allocated", s.Size)
	}
	return fmt.Sprintf("request %d assigned to region %d (%d)", s.Size, s.Region+1, s.Capacity)
}

// Placement is the outcome of one fitting call.
//
// Regions[i] lists, in acceptance order, the request sizes placed into the
// i-th free region.  Success is Accepted/Submitted and is 0 when no request
// was submitted.
type Placement struct {
	Policy       policy.Policy `json:"policy" yaml:"policy"`
	AllowSharing bool          `json:"allowSharing" yaml:"allowSharing"`
	Capacities   []int         `json:"capacities" yaml:"capacities"`
	Requests     []int         `json:"requests" yaml:"requests"`
	Regions      [][]int       `json:"regions" yaml:"regions"`
	Steps        []Step        `json:"steps" yaml:"steps"`
	Accepted     int           `json:"accepted" yaml:"accepted"`
	Submitted    int           `json:"submitted" yaml:"submitted"`
	Success      float64       `json:"success" yaml:"success"`
}

// SuccessFraction returns accepted/submitted, or 0 for an empty submission.
func SuccessFraction(accepted, submitted int) float64 {
	if submitted == 0 {
		return 0
	}
	return float64(accepted) / float64(submitted)
}

// Rejected returns the sizes of rejected requests in submission order.
func (p *Placement) Rejected() []int {
	var ret []int
	for _, step := range p.Steps {
		if !step.Accepted() {
			ret = append(ret, step.Size)
		}
	}
	return ret
}

// RegionUsage summarises one free region after fitting.  Free is the internal
// fragmentation left in the region.
type RegionUsage struct {
	Index    int   `json:"index" yaml:"index"`
	Capacity int   `json:"capacity" yaml:"capacity"`
	Requests []int `json:"requests,omitempty" yaml:"requests,omitempty"`
	Used     int   `json:"used" yaml:"used"`
	Free     int   `json:"free" yaml:"free"`
	Busy     bool  `json:"busy" yaml:"busy"`
}

// Usage returns one row per free region.
func (p *Placement) Usage() []RegionUsage {
	ret := make([]RegionUsage, len(p.Capacities))
	for i, capacity := range p.Capacities {
		used := 0
		var sizes []int
		if i < len(p.Regions) {
			sizes = p.Regions[i]
		}
		for _, size := range sizes {
			used += size
		}
		ret[i] = RegionUsage{
			Index:    i,
			Capacity: capacity,
			Requests: append([]int(nil), sizes...),
			Used:     used,
			Free:     capacity - used,
			Busy:     len(sizes) > 0,
		}
	}
	return ret
}

// Totals returns the total free capacity and the total size placed.
func (p *Placement) Totals() (capacity, used int) {
	for _, row := range p.Usage() {
		capacity += row.Capacity
		used += row.Used
	}
	return capacity, used
}
