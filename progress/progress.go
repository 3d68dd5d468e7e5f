package progress

import (
	"context"
	"sync"
	"time"

	"github.com/viant/memfit/internal/clock"
)

// Delta represents an incremental counter change emitted by the harness.
// Fields are signed so a delta may also roll a counter back.
type Delta struct {
	Total     int
	Completed int
	Failed    int
	Accepted  int
	Rejected  int
}

// Progress keeps aggregated counters for one trial run.  It is safe for
// concurrent use.
type Progress struct {
	RunID     string
	StartedAt time.Time

	TotalTrials     int
	CompletedTrials int
	FailedTrials    int
	// AcceptedRequests and RejectedRequests sum over every policy of every
	// completed trial.
	AcceptedRequests int
	RejectedRequests int

	sync.Mutex
	onChange func(Progress)
}

// Update applies the supplied delta.  The onChange callback, if any, runs
// outside the critical section with a copy of the updated counters.
func (p *Progress) Update(d Delta) {
	if p == nil {
		return
	}
	p.Lock()
	p.TotalTrials += d.Total
	p.CompletedTrials += d.Completed
	p.FailedTrials += d.Failed
	p.AcceptedRequests += d.Accepted
	p.RejectedRequests += d.Rejected
	snapshot := p.copyLocked()
	cb := p.onChange
	p.Unlock()

	if cb != nil {
		cb(snapshot)
	}
}

// Snapshot returns a copy of the tracker suitable for read-only inspection.
func (p *Progress) Snapshot() Progress {
	if p == nil {
		return Progress{}
	}
	p.Lock()
	defer p.Unlock()
	return p.copyLocked()
}

// Fraction returns completed/total trials, or 0 before any trial is scheduled.
func (p Progress) Fraction() float64 {
	if p.TotalTrials == 0 {
		return 0
	}
	return float64(p.CompletedTrials) / float64(p.TotalTrials)
}

// OnChange registers a callback invoked after every Update.  Passing nil
// disables it; a later call replaces the earlier callback.
func (p *Progress) OnChange(cb func(Progress)) {
	if p == nil {
		return
	}
	p.Lock()
	p.onChange = cb
	p.Unlock()
}

func (p *Progress) copyLocked() Progress {
	return Progress{
		RunID:            p.RunID,
		StartedAt:        p.StartedAt,
		TotalTrials:      p.TotalTrials,
		CompletedTrials:  p.CompletedTrials,
		FailedTrials:     p.FailedTrials,
		AcceptedRequests: p.AcceptedRequests,
		RejectedRequests: p.RejectedRequests,
	}
}

// ----------------------------------------------------------------------------
// Context helpers
// ----------------------------------------------------------------------------

type trackerKeyT struct{}

var trackerKey trackerKeyT

// WithNewTracker creates a tracker, embeds it in a derived context and
// returns both.
func WithNewTracker(ctx context.Context, runID string, onChange func(Progress)) (context.Context, *Progress) {
	if ctx == nil {
		ctx = context.Background()
	}
	tr := &Progress{
		RunID:     runID,
		StartedAt: clock.Now(),
		onChange:  onChange,
	}
	return context.WithValue(ctx, trackerKey, tr), tr
}

// FromContext extracts the tracker from ctx.
func FromContext(ctx context.Context) (*Progress, bool) {
	if ctx == nil {
		return nil, false
	}
	tr, ok := ctx.Value(trackerKey).(*Progress)
	return tr, ok
}

// GetSnapshot combines FromContext and Snapshot.
func GetSnapshot(ctx context.Context) (Progress, bool) {
	if tr, ok := FromContext(ctx); ok {
		return tr.Snapshot(), true
	}
	return Progress{}, false
}

// UpdateCtx applies d to the tracker carried by ctx, if any.
func UpdateCtx(ctx context.Context, d Delta) {
	if tr, ok := FromContext(ctx); ok {
		tr.Update(d)
	}
}
