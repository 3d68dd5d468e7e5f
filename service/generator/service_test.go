package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/memfit/model"
)

func TestService_MemoryState(t *testing.T) {
	testCases := []struct {
		name      string
		totalSize int
		blockMin  int
		blockMax  int
	}{
		{name: "default pool", totalSize: 1000, blockMin: 50, blockMax: 200},
		{name: "fixed run length", totalSize: 300, blockMin: 100, blockMax: 100},
		{name: "uneven remainder", totalSize: 1013, blockMin: 50, blockMax: 60},
		{name: "pool smaller than a run", totalSize: 10, blockMin: 50, blockMax: 200},
		{name: "unit runs", totalSize: 17, blockMin: 1, blockMax: 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			for seed := int64(1); seed <= 25; seed++ {
				srv := New(WithSeed(seed))
				memory, err := srv.MemoryState(tc.totalSize, tc.blockMin, tc.blockMax)
				require.NoError(t, err)
				require.NoError(t, memory.Validate())
				assert.Equal(t, tc.totalSize, memory.FreeSize()+memory.UsedSize())

				regions := memory.Regions()
				require.NotEmpty(t, regions)
				assert.Equal(t, model.RoleUsed, regions[0].Role)
				for i, region := range regions {
					if i > 0 {
						assert.NotEqual(t, regions[i-1].Role, region.Role, "seed %d: runs must alternate", seed)
					}
					assert.LessOrEqual(t, region.Size(), tc.blockMax, "seed %d: run %v too long", seed, region)
					if i < len(regions)-1 {
						assert.GreaterOrEqual(t, region.Size(), tc.blockMin, "seed %d: run %v too short", seed, region)
					}
				}
			}
		})
	}
}

func TestService_MemoryStateTruncatesLastRun(t *testing.T) {
	srv := New(WithSeed(7))
	memory, err := srv.MemoryState(250, 100, 100)
	require.NoError(t, err)
	assert.Equal(t, []model.Region{
		{Start: 0, End: 100, Role: model.RoleUsed},
		{Start: 200, End: 250, Role: model.RoleUsed},
	}, memory.Used)
	assert.Equal(t, []model.Region{
		{Start: 100, End: 200, Role: model.RoleFree},
	}, memory.Free)
}

func TestService_MemoryStateInvalid(t *testing.T) {
	testCases := []struct {
		name      string
		totalSize int
		blockMin  int
		blockMax  int
	}{
		{name: "zero total", totalSize: 0, blockMin: 1, blockMax: 2},
		{name: "negative total", totalSize: -5, blockMin: 1, blockMax: 2},
		{name: "zero block min", totalSize: 100, blockMin: 0, blockMax: 2},
		{name: "zero block max", totalSize: 100, blockMin: 1, blockMax: 0},
		{name: "inverted bounds", totalSize: 100, blockMin: 20, blockMax: 10},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			memory, err := New(WithSeed(1)).MemoryState(tc.totalSize, tc.blockMin, tc.blockMax)
			assert.ErrorIs(t, err, model.ErrInvalidConfiguration)
			assert.Nil(t, memory)
		})
	}
}

func TestService_Requests(t *testing.T) {
	testCases := []struct {
		name       string
		capacities []int
		lower      int
		upper      int
	}{
		{name: "mixed capacities", capacities: []int{60, 150, 90}, lower: 20, upper: 150},
		{name: "single region", capacities: []int{100}, lower: 33, upper: 100},
		{name: "tiny region lifts lower bound to one", capacities: []int{2, 40}, lower: 1, upper: 40},
		{name: "zero capacity allowed", capacities: []int{0, 30}, lower: 1, upper: 30},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sum := 0
			for _, c := range tc.capacities {
				sum += c
			}
			target := 0.8 * float64(sum)
			for seed := int64(1); seed <= 25; seed++ {
				requests, err := New(WithSeed(seed)).Requests(tc.capacities)
				require.NoError(t, err)
				require.NotEmpty(t, requests)
				demand := 0
				for i, size := range requests {
					assert.GreaterOrEqual(t, size, tc.lower)
					assert.LessOrEqual(t, size, tc.upper)
					if i < len(requests)-1 {
						assert.Less(t, float64(demand+size), target, "seed %d: drew past the target", seed)
					}
					demand += size
				}
				assert.GreaterOrEqual(t, float64(demand), target)
			}
		})
	}
}

func TestService_RequestsEmpty(t *testing.T) {
	srv := New(WithSeed(3))
	for _, capacities := range [][]int{nil, {}, {0, 0}} {
		requests, err := srv.Requests(capacities)
		require.NoError(t, err)
		assert.Empty(t, requests)
	}
	_, err := srv.Requests([]int{10, -1})
	assert.ErrorIs(t, err, model.ErrInvalidConfiguration)
}

func TestService_Workload(t *testing.T) {
	srv := New(WithSeed(11))
	workload, err := srv.Workload(DefaultConfig())
	require.NoError(t, err)
	require.NotNil(t, workload.Memory)
	assert.Equal(t, workload.Memory.FreeCapacities(), workload.Capacities)
	assert.GreaterOrEqual(t, float64(workload.Demand()), 0.8*float64(workload.Memory.FreeSize()))

	_, err = srv.Workload(Config{TotalSize: 100, BlockMin: 10, BlockMax: 5})
	assert.ErrorIs(t, err, model.ErrInvalidConfiguration)
}

func TestService_Deterministic(t *testing.T) {
	first, err := New(WithSeed(99)).Workload(DefaultConfig())
	require.NoError(t, err)
	second, err := New(WithSeed(99)).Workload(DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, int64(99), New(WithSeed(99)).Seed())
}

func TestService_Scenario(t *testing.T) {
	srv := New(WithSeed(5))
	for range 50 {
		workload := srv.Scenario()
		assert.Nil(t, workload.Memory)
		assert.GreaterOrEqual(t, len(workload.Requests), 3)
		assert.LessOrEqual(t, len(workload.Requests), 6)
		assert.GreaterOrEqual(t, len(workload.Capacities), 3)
		assert.LessOrEqual(t, len(workload.Capacities), 6)
		for _, size := range workload.Requests {
			assert.GreaterOrEqual(t, size, 5)
			assert.LessOrEqual(t, size, 50)
		}
		for _, capacity := range workload.Capacities {
			assert.GreaterOrEqual(t, capacity, 5)
			assert.LessOrEqual(t, capacity, 100)
		}
	}
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
	assert.ErrorIs(t, Config{TotalSize: 10, BlockMin: 3, BlockMax: 2}.Validate(), model.ErrInvalidConfiguration)
}
