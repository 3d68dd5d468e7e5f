package model

import (
	"fmt"
	"strings"
)

// Role tags a region of the pool.
type Role int

const (
	RoleUsed   Role = iota // occupied before any request is placed
	RoleFree               // available to the fitting engine
	RoleFitted             // a request placed inside a free region
)

var roleNames = map[Role]string{
	RoleUsed:   "used",
	RoleFree:   "free",
	RoleFitted: "fitted",
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return fmt.Sprintf("role(%d)", int(r))
}

// MarshalText implements encoding.TextMarshaler.
func (r Role) MarshalText() ([]byte, error) {
	if _, ok := roleNames[r]; !ok {
		return nil, fmt.Errorf("unknown region role %d", int(r))
	}
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Role) UnmarshalText(text []byte) error {
	name := strings.ToLower(string(text))
	for role, candidate := range roleNames {
		if candidate == name {
			*r = role
			return nil
		}
	}
	return fmt.Errorf("unknown region role %q", string(text))
}

// Region is a half-open span [Start, End) of the pool.
type Region struct {
	Start int  `json:"start" yaml:"start"`
	End   int  `json:"end" yaml:"end"`
	Role  Role `json:"role" yaml:"role"`
}

// NewRegion returns a region or ErrInvalidConfiguration when the span is
// empty, inverted or starts before zero.
func NewRegion(start, end int, role Role) (Region, error) {
	if start < 0 {
		return Region{}, InvalidConfigurationf("region start %d is negative", start)
	}
	if end <= start {
		return Region{}, InvalidConfigurationf("region [%d, %d) is empty", start, end)
	}
	if _, ok := roleNames[role]; !ok {
		return Region{}, InvalidConfigurationf("unknown region role %d", int(role))
	}
	return Region{Start: start, End: end, Role: role}, nil
}

// Size returns End - Start.
func (r Region) Size() int {
	return r.End - r.Start
}

func (r Region) String() string {
	return fmt.Sprintf("%s[%d:%d]", r.Role, r.Start, r.End)
}
