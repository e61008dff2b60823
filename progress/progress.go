package progress

import (
	"context"
	"sync"
	"time"

	"github.com/viant/hithread/internal/clock"
)

// Delta represents an incremental counter change emitted by a loop worker.
type Delta struct {
	Loop      string
	Emitted   int
	Running   int
	Completed int
	Failed    int
}

// Progress keeps aggregated counters for a single run. It is safe for
// concurrent use.
type Progress struct {
	RunID     string
	StartedAt time.Time

	Emitted   map[string]int
	Running   int
	Completed int
	Failed    int

	sync.Mutex
	onChange func(Progress)
}

// Update applies the supplied delta. The onChange callback, if any, runs
// outside the critical section with a copy of the counters.
func (p *Progress) Update(d Delta) {
	if p == nil {
		return
	}

	p.Lock()
	if d.Emitted != 0 {
		if p.Emitted == nil {
			p.Emitted = map[string]int{}
		}
		p.Emitted[d.Loop] += d.Emitted
	}
	p.Running += d.Running
	p.Completed += d.Completed
	p.Failed += d.Failed
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

// EmittedBy returns the number of lines emitted by the named loop.
func (p *Progress) EmittedBy(loop string) int {
	if p == nil {
		return 0
	}
	p.Lock()
	defer p.Unlock()
	return p.Emitted[loop]
}

// OnChange registers a callback invoked after every Update. Passing nil
// disables it.
func (p *Progress) OnChange(cb func(Progress)) {
	if p == nil {
		return
	}
	p.Lock()
	p.onChange = cb
	p.Unlock()
}

func (p *Progress) copyLocked() Progress {
	emitted := make(map[string]int, len(p.Emitted))
	for k, v := range p.Emitted {
		emitted[k] = v
	}
	return Progress{
		RunID:     p.RunID,
		StartedAt: p.StartedAt,
		Emitted:   emitted,
		Running:   p.Running,
		Completed: p.Completed,
		Failed:    p.Failed,
	}
}

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
		Emitted:   map[string]int{},
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

// UpdateCtx applies d to the tracker carried by ctx, if any.
func UpdateCtx(ctx context.Context, d Delta) {
	if tr, ok := FromContext(ctx); ok {
		tr.Update(d)
	}
}
