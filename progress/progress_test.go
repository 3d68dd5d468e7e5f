package progress

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/memfit/internal/clock"
)

func TestProgress_Update(t *testing.T) {
	fixed := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	clock.NowFunc = func() time.Time { return fixed }
	defer func() { clock.NowFunc = time.Now }()

	var seen []Progress
	ctx, tr := WithNewTracker(context.Background(), "run-1", func(p Progress) {
		seen = append(seen, p)
	})
	assert.Equal(t, fixed, tr.StartedAt)

	UpdateCtx(ctx, Delta{Total: 4})
	UpdateCtx(ctx, Delta{Completed: 1, Accepted: 5, Rejected: 1})
	UpdateCtx(ctx, Delta{Completed: 1, Accepted: 3, Rejected: 3})

	snapshot, ok := GetSnapshot(ctx)
	require.True(t, ok)
	assert.Equal(t, "run-1", snapshot.RunID)
	assert.Equal(t, 4, snapshot.TotalTrials)
	assert.Equal(t, 2, snapshot.CompletedTrials)
	assert.Equal(t, 8, snapshot.AcceptedRequests)
	assert.Equal(t, 4, snapshot.RejectedRequests)
	assert.Equal(t, 0.5, snapshot.Fraction())

	require.Len(t, seen, 3)
	assert.Equal(t, 0, seen[0].CompletedTrials)
	assert.Equal(t, 2, seen[2].CompletedTrials)
}

func TestProgress_Concurrent(t *testing.T) {
	ctx, tr := WithNewTracker(context.Background(), "run-2", nil)
	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			UpdateCtx(ctx, Delta{Completed: 1})
		}()
	}
	wg.Wait()
	assert.Equal(t, 20, tr.Snapshot().CompletedTrials)
}

func TestProgress_NoTracker(t *testing.T) {
	UpdateCtx(context.Background(), Delta{Total: 1})
	_, ok := GetSnapshot(context.Background())
	assert.False(t, ok)

	var tr *Progress
	tr.Update(Delta{Total: 1})
	tr.OnChange(nil)
	assert.Equal(t, Progress{}, tr.Snapshot())
	assert.Equal(t, 0.0, Progress{}.Fraction())
}
