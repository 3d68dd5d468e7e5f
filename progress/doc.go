// Package progress reports how far a trial run has got.  A tracker travels
// in the context so the harness can update it without a global registry and
// callers can observe it through an onChange callback.
package progress
