package execution

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/viant/hithread/internal/clock"
)

func TestExecution_Lifecycle(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	now := base
	clock.NowFunc = func() time.Time { return now }
	defer func() { clock.NowFunc = time.Now }()

	anExecution := New("spawned")
	assert.Equal(t, StateNotStarted, anExecution.GetState())
	assert.Contains(t, anExecution.ID, "spawned/")
	assert.EqualValues(t, 0, anExecution.Elapsed())

	// emits before start are ignored
	anExecution.Emit(1)
	assert.Equal(t, 0, anExecution.Snapshot().Emitted)

	assert.True(t, anExecution.Start())
	assert.False(t, anExecution.Start())
	for i := 1; i <= 3; i++ {
		anExecution.Emit(i)
	}
	now = base.Add(5 * time.Millisecond)
	assert.True(t, anExecution.Complete())
	assert.False(t, anExecution.Fail(errors.New("late")))

	snapshot := anExecution.Snapshot()
	assert.Equal(t, StateCompleted, snapshot.State)
	assert.Equal(t, 3, snapshot.Emitted)
	assert.Equal(t, 3, snapshot.Last)
	assert.Empty(t, snapshot.Error)
	assert.Equal(t, 5*time.Millisecond, anExecution.Elapsed())
}

func TestExecution_Fail(t *testing.T) {
	testCases := []struct {
		name   string
		start  bool
		expect State
	}{
		{name: "fail while running", start: true, expect: StateFailed},
		{name: "fail before start", start: false, expect: StateFailed},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			anExecution := New("spawned")
			if tc.start {
				anExecution.Start()
			}
			assert.True(t, anExecution.Fail(errors.New("boom")))
			assert.False(t, anExecution.Complete())
			assert.Equal(t, tc.expect, anExecution.GetState())
			assert.Equal(t, "boom", anExecution.Snapshot().Error)
			assert.True(t, anExecution.GetState().IsTerminal())
		})
	}
}

func TestExecution_ConcurrentReads(t *testing.T) {
	anExecution := New("main")
	anExecution.Start()
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 1; i < 100; i++ {
			anExecution.Emit(i)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			_ = anExecution.Snapshot()
		}
	}()
	wg.Wait()
	assert.Equal(t, 99, anExecution.Snapshot().Emitted)
}
