// Package idgen issues identifiers for trial reports.  NewFunc may be
// replaced in tests to obtain stable identifiers.
package idgen

import "github.com/google/uuid"

// NewFunc returns a fresh random identifier.
var NewFunc = func() string { return uuid.New().String() }

// New returns a new identifier.
func New() string { return NewFunc() }

// IsValid reports whether id looks like an identifier issued by New.
func IsValid(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
