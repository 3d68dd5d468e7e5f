// Package policy defines the placement policies the fitting engine can apply
// when choosing a free region for a request.  A Policy is a small value type
// that marshals to and from its canonical name so that it can be used in
// YAML/JSON configuration and CLI flags alike.

package policy

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Policy selects the free region a request is placed into.
type Policy int

// Placement policies recognised by the engine.
const (
	FirstFit Policy = iota + 1 // lowest-index region with enough room
	BestFit                    // region left with the smallest slack
	WorstFit                   // region left with the largest slack
)

// Canonical policy names.
const (
	NameFirstFit = "first-fit"
	NameBestFit  = "best-fit"
	NameWorstFit = "worst-fit"
)

// ErrUnknown is returned when a name does not map to any policy.
var ErrUnknown = errors.New("policy: unknown placement policy")

var names = map[Policy]string{
	FirstFit: NameFirstFit,
	BestFit:  NameBestFit,
	WorstFit: NameWorstFit,
}

// All returns every policy in canonical order.
func All() []Policy {
	return []Policy{FirstFit, BestFit, WorstFit}
}

// String returns the canonical name.
func (p Policy) String() string {
	if name, ok := names[p]; ok {
		return name
	}
	return fmt.Sprintf("policy(%d)", int(p))
}

// IsValid reports whether p is one of the known policies.
func (p Policy) IsValid() bool {
	_, ok := names[p]
	return ok
}

// Parse maps a name onto a Policy.  Matching is case-insensitive and accepts
// the canonical name as well as the "firstfit"/"first_fit"/"first" spellings.
func Parse(name string) (Policy, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	normalized = strings.NewReplacer("_", "", "-", "", " ", "").Replace(normalized)
	switch normalized {
	case "firstfit", "first":
		return FirstFit, nil
	case "bestfit", "best":
		return BestFit, nil
	case "worstfit", "worst":
		return WorstFit, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknown, name)
}

// MarshalText implements encoding.TextMarshaler.
func (p Policy) MarshalText() ([]byte, error) {
	if !p.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknown, int(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Policy) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ---------------------------------------------------------------------------
// Config <-> Policy converters
// ---------------------------------------------------------------------------

// Config is the declarative selection of policies a trial run compares.
// An empty AllowList selects every policy; BlockList entries are removed
// afterwards.
type Config struct {
	AllowList []string `json:"allow,omitempty" yaml:"allow,omitempty"`
	BlockList []string `json:"block,omitempty" yaml:"block,omitempty"`
}

// FromConfig resolves the selection into policies, preserving canonical order.
func FromConfig(c *Config) ([]Policy, error) {
	if c == nil {
		return All(), nil
	}
	allowed := map[Policy]bool{}
	if len(c.AllowList) == 0 {
		for _, p := range All() {
			allowed[p] = true
		}
	}
	for _, name := range c.AllowList {
		p, err := Parse(name)
		if err != nil {
			return nil, err
		}
		allowed[p] = true
	}
	// BlockList has priority.
	for _, name := range c.BlockList {
		p, err := Parse(name)
		if err != nil {
			return nil, err
		}
		delete(allowed, p)
	}
	var result []Policy
	for _, p := range All() {
		if allowed[p] {
			result = append(result, p)
		}
	}
	return result, nil
}

// ToConfig converts a policy list back into its declarative form.
func ToConfig(policies []Policy) *Config {
	if policies == nil {
		return nil
	}
	cfg := &Config{AllowList: make([]string, 0, len(policies))}
	for _, p := range policies {
		cfg.AllowList = append(cfg.AllowList, p.String())
	}
	return cfg
}

// ---------------------------------------------------------------------------
// Context helpers
// ---------------------------------------------------------------------------

type ctxKeyT struct{}

var ctxKey ctxKeyT

// WithPolicies embeds the policy selection in ctx.
func WithPolicies(ctx context.Context, policies ...Policy) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxKey, append([]Policy(nil), policies...))
}

// FromContext returns the policy selection stored in ctx, or nil.
func FromContext(ctx context.Context) []Policy {
	if ctx == nil {
		return nil
	}
	if v, ok := ctx.Value(ctxKey).([]Policy); ok {
		return v
	}
	return nil
}
