// Package policy provides the first-fit, best-fit and worst-fit placement
// policies together with helpers to select a subset of them declaratively or
// through a context value.
package policy
