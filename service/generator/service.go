package generator

import (
	"math/rand"
	"sync"

	"github.com/viant/memfit/internal/clock"
	"github.com/viant/memfit/model"
)

const (
	// demandRatio keeps roughly a fifth of the free capacity unrequested.
	demandRatio = 0.8

	scenarioMinItems   = 3
	scenarioMaxItems   = 6
	scenarioMinRequest = 5
	scenarioMaxRequest = 50
	scenarioMinRegion  = 5
	scenarioMaxRegion  = 100
)

// Config represents workload generator configuration
type Config struct {
	TotalSize int `json:"totalSize" yaml:"totalSize"`
	BlockMin  int `json:"blockMin" yaml:"blockMin"`
	BlockMax  int `json:"blockMax" yaml:"blockMax"`
}

// DefaultConfig returns the default generator configuration
func DefaultConfig() Config {
	return Config{
		TotalSize: 1000,
		BlockMin:  50,
		BlockMax:  200,
	}
}

// Validate returns ErrInvalidConfiguration for impossible pool parameters.
func (c Config) Validate() error {
	if c.TotalSize <= 0 {
		return model.InvalidConfigurationf("total size %d must be positive", c.TotalSize)
	}
	if c.BlockMin <= 0 || c.BlockMax <= 0 {
		return model.InvalidConfigurationf("block bounds [%d, %d] must be positive", c.BlockMin, c.BlockMax)
	}
	if c.BlockMin > c.BlockMax {
		return model.InvalidConfigurationf("block min %d exceeds block max %d", c.BlockMin, c.BlockMax)
	}
	return nil
}

// Service draws random pools and request lists.  A Service owns its random
// source; calls are serialised so one instance can be shared, but trials
// that need reproducible, independent streams should each use their own.
type Service struct {
	seed int64
	rng  *rand.Rand
	mu   sync.Mutex
}

// New creates a generator.  Without WithSeed the seed is derived from the clock.
func New(options ...Option) *Service {
	s := &Service{seed: clock.Now().UnixNano()}
	for _, opt := range options {
		opt(s)
	}
	s.rng = rand.New(rand.NewSource(s.seed))
	return s
}

// Seed returns the seed the random source was created with
func (s *Service) Seed() int64 {
	return s.seed
}

// MemoryState partitions [0, totalSize) into runs of alternating role,
// starting with used.  Each run length is drawn uniformly from
// [blockMin, min(blockMax, remaining)]; when less than blockMin remains the
// last run takes exactly the remainder.
func (s *Service) MemoryState(totalSize, blockMin, blockMax int) (*model.MemoryState, error) {
	cfg := Config{TotalSize: totalSize, BlockMin: blockMin, BlockMax: blockMax}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	bounds := []int{0}
	total := 0
	for total < totalSize {
		remaining := totalSize - total
		run := remaining
		if remaining >= blockMin {
			upper := min(blockMax, remaining)
			run = blockMin + s.rng.Intn(upper-blockMin+1)
		}
		total += run
		bounds = append(bounds, total)
	}
	s.mu.Unlock()

	var used, free []model.Region
	for i := 0; i+1 < len(bounds); i++ {
		role := model.RoleUsed
		if i%2 == 1 {
			role = model.RoleFree
		}
		region, err := model.NewRegion(bounds[i], bounds[i+1], role)
		if err != nil {
			return nil, err
		}
		if role == model.RoleUsed {
			used = append(used, region)
		} else {
			free = append(free, region)
		}
	}
	return model.NewMemoryState(totalSize, used, free)
}

// Requests draws request sizes uniformly from
// [max(1, min(capacities)/3), max(capacities)] until their sum reaches 80% of
// the total capacity.  The last request may overshoot the target.  An empty
// or all-zero capacity list yields no requests.
func (s *Service) Requests(capacities []int) ([]int, error) {
	sum := 0
	for i, capacity := range capacities {
		if capacity < 0 {
			return nil, model.InvalidConfigurationf("free region %d has negative capacity %d", i, capacity)
		}
		sum += capacity
	}
	if sum == 0 {
		return []int{}, nil
	}
	lower := max(1, minOf(capacities)/3)
	upper := maxOf(capacities)
	target := demandRatio * float64(sum)

	s.mu.Lock()
	defer s.mu.Unlock()
	var requests []int
	for demand := 0; float64(demand) < target; {
		size := lower + s.rng.Intn(upper-lower+1)
		requests = append(requests, size)
		demand += size
	}
	return requests, nil
}

// Workload generates a pool and a request list sized against its free regions.
func (s *Service) Workload(config Config) (*model.Workload, error) {
	memory, err := s.MemoryState(config.TotalSize, config.BlockMin, config.BlockMax)
	if err != nil {
		return nil, err
	}
	capacities := memory.FreeCapacities()
	requests, err := s.Requests(capacities)
	if err != nil {
		return nil, err
	}
	return &model.Workload{Memory: memory, Capacities: capacities, Requests: requests}, nil
}

// Scenario draws a small hand-sized workload without a backing pool:
// 3 to 6 requests of 5 to 50 and 3 to 6 regions of 5 to 100.
func (s *Service) Scenario() *model.Workload {
	s.mu.Lock()
	defer s.mu.Unlock()
	requests := s.draw(scenarioMinItems, scenarioMaxItems, scenarioMinRequest, scenarioMaxRequest)
	capacities := s.draw(scenarioMinItems, scenarioMaxItems, scenarioMinRegion, scenarioMaxRegion)
	return &model.Workload{Capacities: capacities, Requests: requests}
}

func (s *Service) draw(minCount, maxCount, minValue, maxValue int) []int {
	ret := make([]int, minCount+s.rng.Intn(maxCount-minCount+1))
	for i := range ret {
		ret[i] = minValue + s.rng.Intn(maxValue-minValue+1)
	}
	return ret
}

func minOf(values []int) int {
	ret := values[0]
	for _, v := range values[1:] {
		ret = min(ret, v)
	}
	return ret
}

func maxOf(values []int) int {
	ret := values[0]
	for _, v := range values[1:] {
		ret = max(ret, v)
	}
	return ret
}
