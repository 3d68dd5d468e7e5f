// Package harness repeats generate-then-fit trials and aggregates every
// policy's success fraction into per-policy series.
//
// Each trial draws its workload from a random source seeded with
// TrialSeed(base, index), so a run is reproducible from its base seed alone
// and does not depend on how many workers execute it.  All policies of one
// trial are fitted against the same workload.
package harness
