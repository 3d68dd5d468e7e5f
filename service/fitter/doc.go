// Package fitter implements the placement engine: first-fit, best-fit and
// worst-fit over a list of free region capacities, processing requests
// strictly in submission order without backtracking.
//
// Fit is a pure function of its inputs.  The same capacities, requests,
// policy and sharing mode always produce the same placement.
package fitter
