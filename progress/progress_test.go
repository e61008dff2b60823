package progress

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgress_Update(t *testing.T) {
	var seen []Progress
	ctx, tracker := WithNewTracker(context.Background(), "run-1", func(p Progress) {
		seen = append(seen, p)
	})

	UpdateCtx(ctx, Delta{Loop: "main", Running: 1})
	UpdateCtx(ctx, Delta{Loop: "main", Emitted: 1})
	UpdateCtx(ctx, Delta{Loop: "main", Emitted: 1})
	UpdateCtx(ctx, Delta{Loop: "main", Running: -1, Completed: 1})

	snapshot := tracker.Snapshot()
	assert.Equal(t, "run-1", snapshot.RunID)
	assert.Equal(t, 2, snapshot.Emitted["main"])
	assert.Equal(t, 0, snapshot.Running)
	assert.Equal(t, 1, snapshot.Completed)
	require.Len(t, seen, 4)
	assert.Equal(t, 1, seen[1].Emitted["main"])
}

func TestProgress_NoTracker(t *testing.T) {
	// no-op without a tracker in the context
	UpdateCtx(context.Background(), Delta{Loop: "main", Emitted: 1})
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	var p *Progress
	p.Update(Delta{Emitted: 1})
	assert.Equal(t, 0, p.EmittedBy("main"))
}

func TestProgress_Concurrent(t *testing.T) {
	ctx, tracker := WithNewTracker(context.Background(), "run-2", nil)
	var wg sync.WaitGroup
	for _, name := range []string{"spawned", "main"} {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				UpdateCtx(ctx, Delta{Loop: name, Emitted: 1})
			}
		}(name)
	}
	wg.Wait()
	assert.Equal(t, 50, tracker.EmittedBy("spawned"))
	assert.Equal(t, 50, tracker.EmittedBy("main"))
}

func TestProgress_OnChange(t *testing.T) {
	ctx, tracker := WithNewTracker(context.Background(), "run-3", nil)
	UpdateCtx(ctx, Delta{Loop: "main", Emitted: 1})

	var seen []int
	tracker.OnChange(func(p Progress) { seen = append(seen, p.Emitted["main"]) })
	UpdateCtx(ctx, Delta{Loop: "main", Emitted: 1})
	tracker.OnChange(nil)
	UpdateCtx(ctx, Delta{Loop: "main", Emitted: 1})

	assert.Equal(t, []int{2}, seen)
	assert.Equal(t, 3, tracker.EmittedBy("main"))
}
