// Package model contains the plain-data representation of a memory pool and of
// the results produced by the fitting engine and the trial harness.
//
// Every type in this package is an immutable value from the caller's point of
// view: operations that derive new state (for example laying a placement out
// over a memory snapshot) return fresh values and leave their receiver
// untouched.  All types serialise to JSON and YAML without reference to any
// rendering primitive so that front-ends can format them freely.
package model
