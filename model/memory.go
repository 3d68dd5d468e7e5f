package model

import (
	"sort"
)

// MemoryState is one snapshot of a pool: used and free regions that together
// tile [0, TotalSize), plus the fitted regions derived from a placement.
type MemoryState struct {
	TotalSize int      `json:"totalSize" yaml:"totalSize"`
	Used      []Region `json:"used" yaml:"used"`
	Free      []Region `json:"free" yaml:"free"`
	Fitted    []Region `json:"fitted,omitempty" yaml:"fitted,omitempty"`
}

// NewMemoryState copies and orders the supplied regions and validates that
// they tile the pool exactly.
func NewMemoryState(totalSize int, used, free []Region) (*MemoryState, error) {
	ret := &MemoryState{
		TotalSize: totalSize,
		Used:      sortedCopy(used),
		Free:      sortedCopy(free),
	}
	if err := ret.Validate(); err != nil {
		return nil, err
	}
	return ret, nil
}

// Validate checks roles, ordering and that used+free spans tile
// [0, TotalSize) without gaps or overlaps.
func (m *MemoryState) Validate() error {
	if m == nil {
		return InvalidConfigurationf("memory state is nil")
	}
	if m.TotalSize <= 0 {
		return InvalidConfigurationf("total size %d must be positive", m.TotalSize)
	}
	for _, r := range m.Used {
		if r.Role != RoleUsed {
			return InvalidConfigurationf("region %v listed as used", r)
		}
	}
	for _, r := range m.Free {
		if r.Role != RoleFree {
			return InvalidConfigurationf("region %v listed as free", r)
		}
	}
	offset := 0
	for _, r := range m.Regions() {
		if r.Size() <= 0 {
			return InvalidConfigurationf("region %v is empty", r)
		}
		if r.Start != offset {
			if r.Start > offset {
				return InvalidConfigurationf("gap [%d, %d) before region %v", offset, r.Start, r)
			}
			return InvalidConfigurationf("region %v overlaps offset %d", r, offset)
		}
		offset = r.End
	}
	if offset != m.TotalSize {
		return InvalidConfigurationf("regions cover [0, %d) but total size is %d", offset, m.TotalSize)
	}
	return nil
}

// Regions returns used and free regions merged in ascending start order.
func (m *MemoryState) Regions() []Region {
	merged := make([]Region, 0, len(m.Used)+len(m.Free))
	merged = append(merged, m.Used...)
	merged = append(merged, m.Free...)
	sort.SliceStable(merged, func(i, j int) bool { return merged[i].Start < merged[j].Start })
	return merged
}

// FreeCapacities returns free region sizes in region order.  Index i of the
// result identifies the i-th free region for the fitting engine.
func (m *MemoryState) FreeCapacities() []int {
	capacities := make([]int, len(m.Free))
	for i, r := range m.Free {
		capacities[i] = r.Size()
	}
	return capacities
}

// FreeSize returns the sum of free region sizes.
func (m *MemoryState) FreeSize() int {
	total := 0
	for _, r := range m.Free {
		total += r.Size()
	}
	return total
}

// UsedSize returns the sum of used region sizes.
func (m *MemoryState) UsedSize() int {
	total := 0
	for _, r := range m.Used {
		total += r.Size()
	}
	return total
}

// Clone returns a deep copy.
func (m *MemoryState) Clone() *MemoryState {
	if m == nil {
		return nil
	}
	return &MemoryState{
		TotalSize: m.TotalSize,
		Used:      append([]Region(nil), m.Used...),
		Free:      append([]Region(nil), m.Free...),
		Fitted:    append([]Region(nil), m.Fitted...),
	}
}

// WithPlacement returns a copy of the state whose Fitted regions lay out each
// free region's accepted requests contiguously from the region start.
func (m *MemoryState) WithPlacement(p *Placement) (*MemoryState, error) {
	if p == nil {
		return nil, InvalidConfigurationf("placement is nil")
	}
	if len(p.Regions) != len(m.Free) {
		return nil, InvalidConfigurationf("placement covers %d regions, memory has %d free regions", len(p.Regions), len(m.Free))
	}
	ret := m.Clone()
	ret.Fitted = nil
	for i, sizes := range p.Regions {
		free := m.Free[i]
		offset := free.Start
		for _, size := range sizes {
			if offset+size > free.End {
				return nil, InvalidConfigurationf("requests placed in %v exceed its capacity", free)
			}
			fitted, err := NewRegion(offset, offset+size, RoleFitted)
			if err != nil {
				return nil, err
			}
			ret.Fitted = append(ret.Fitted, fitted)
			offset += size
		}
	}
	return ret, nil
}

func sortedCopy(regions []Region) []Region {
	ret := append([]Region(nil), regions...)
	sort.SliceStable(ret, func(i, j int) bool { return ret[i].Start < ret[j].Start })
	return ret
}
