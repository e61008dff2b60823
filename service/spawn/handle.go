package spawn

import (
	"context"
	"runtime/debug"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Func is the unit of work run by a spawned goroutine.
type Func func(ctx context.Context) error

// Handle joins a spawned goroutine
type Handle struct {
	name  string
	group errgroup.Group
	done  chan struct{}
	once  sync.Once
	err   error
}

// Spawn starts fn on a new goroutine and returns its handle. The context is
// passed through to fn unchanged.
func Spawn(ctx context.Context, name string, fn Func) *Handle {
	h := &Handle{name: name, done: make(chan struct{})}
	h.group.Go(func() (err error) {
		defer close(h.done)
		defer func() {
			if r := recover(); r != nil {
				err = &PanicError{Name: name, Value: r, Stack: debug.Stack()}
			}
		}()
		return fn(ctx)
	})
	return h
}

// Name returns the name the goroutine was spawned with
func (h *Handle) Name() string {
	return h.name
}

// Done is closed once the spawned work has returned or panicked
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Join blocks until the spawned work has finished. It returns nil on success,
// the work's own error, or a *PanicError if the work panicked. Subsequent
// calls return the same result.
func (h *Handle) Join() error {
	h.once.Do(func() {
		h.err = h.group.Wait()
	})
	return h.err
}
