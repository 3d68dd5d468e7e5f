package fitter

import "github.com/viant/memfit/policy"

// board tracks the fill level of every free region during one Fit call.
type board struct {
	capacities   []int
	filled       []int
	retired      []bool
	allowSharing bool
}

func newBoard(capacities []int, allowSharing bool) *board {
	return &board{
		capacities:   capacities,
		filled:       make([]int, len(capacities)),
		retired:      make([]bool, len(capacities)),
		allowSharing: allowSharing,
	}
}

func (b *board) eligible(i, size int) bool {
	if b.retired[i] {
		return false
	}
	return b.filled[i]+size <= b.capacities[i]
}

func (b *board) slack(i, size int) int {
	return b.capacities[i] - (b.filled[i] + size)
}

func (b *board) place(i, size int) {
	b.filled[i] += size
	if !b.allowSharing {
		b.retired[i] = true
	}
}

// selector returns the index of the region a request goes to, or -1.
type selector func(b *board, size int) int

var selectors = map[policy.Policy]selector{
	policy.FirstFit: firstFit,
	policy.BestFit:  bestFit,
	policy.WorstFit: worstFit,
}

func firstFit(b *board, size int) int {
	for i := range b.capacities {
		if b.eligible(i, size) {
			return i
		}
	}
	return -1
}

// bestFit keeps the first region seen on equal slack, so ties go to the lowest index.
func bestFit(b *board, size int) int {
	best := -1
	for i := range b.capacities {
		if !b.eligible(i, size) {
			continue
		}
		if best == -1 || b.slack(i, size) < b.slack(best, size) {
			best = i
		}
	}
	return best
}

func worstFit(b *board, size int) int {
	worst := -1
	for i := range b.capacities {
		if !b.eligible(i, size) {
			continue
		}
		if worst == -1 || b.slack(i, size) > b.slack(worst, size) {
			worst = i
		}
	}
	return worst
}
