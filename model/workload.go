package model

import "github.com/viant/memfit/policy"

// Workload is the input of one fitting round: free capacities and the
// ordered request sizes.  Memory is set when the capacities were derived
// from a generated pool and is nil for directly supplied scenarios.
type Workload struct {
	Memory     *MemoryState `json:"memory,omitempty" yaml:"memory,omitempty"`
	Capacities []int        `json:"capacities" yaml:"capacities"`
	Requests   []int        `json:"requests" yaml:"requests"`
}

// Demand returns the sum of request sizes.
func (w *Workload) Demand() int {
	total := 0
	for _, r := range w.Requests {
		total += r
	}
	return total
}

// Simulation compares every selected policy on a single workload.
type Simulation struct {
	Workload *Workload       `json:"workload" yaml:"workload"`
	Results  []*PolicyResult `json:"results" yaml:"results"`
}

// PolicyResult holds one policy's placement and, when the workload carries a
// pool, the pool with the placement's fitted regions.
type PolicyResult struct {
	Policy    policy.Policy `json:"policy" yaml:"policy"`
	Placement *Placement    `json:"placement" yaml:"placement"`
	Memory    *MemoryState  `json:"memory,omitempty" yaml:"memory,omitempty"`
}

// Result returns the entry for p or nil.
func (s *Simulation) Result(p policy.Policy) *PolicyResult {
	for _, r := range s.Results {
		if r.Policy == p {
			return r
		}
	}
	return nil
}
