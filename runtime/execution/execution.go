package execution

import (
	"sync"
	"time"

	"github.com/viant/hithread/internal/clock"
	"github.com/viant/hithread/internal/idgen"
)

// Execution tracks a single loop run
type Execution struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	State       State      `json:"state"`
	Emitted     int        `json:"emitted"`
	Last        int        `json:"last,omitempty"`
	StartedAt   *time.Time `json:"startedAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	Error       string     `json:"error,omitempty"`
	mux         sync.RWMutex
}

// New creates an execution for the named loop
func New(name string) *Execution {
	return &Execution{
		ID:    idgen.WithPrefix(name),
		Name:  name,
		State: StateNotStarted,
	}
}

// Start marks the execution as running
func (e *Execution) Start() bool {
	e.mux.Lock()
	defer e.mux.Unlock()
	if !e.State.canTransition(StateRunning) {
		return false
	}
	now := clock.Now()
	e.StartedAt = &now
	e.State = StateRunning
	return true
}

// Emit records that value has been written out
func (e *Execution) Emit(value int) {
	e.mux.Lock()
	defer e.mux.Unlock()
	if e.State != StateRunning {
		return
	}
	e.Emitted++
	e.Last = value
}

// Complete marks the execution as completed
func (e *Execution) Complete() bool {
	e.mux.Lock()
	defer e.mux.Unlock()
	if !e.State.canTransition(StateCompleted) {
		return false
	}
	now := clock.Now()
	e.CompletedAt = &now
	e.State = StateCompleted
	return true
}

// Fail marks the execution as failed
func (e *Execution) Fail(err error) bool {
	e.mux.Lock()
	defer e.mux.Unlock()
	if !e.State.canTransition(StateFailed) {
		return false
	}
	now := clock.Now()
	e.CompletedAt = &now
	if err != nil {
		e.Error = err.Error()
	}
	e.State = StateFailed
	return true
}

// GetState returns current state
func (e *Execution) GetState() State {
	e.mux.RLock()
	defer e.mux.RUnlock()
	return e.State
}

// Snapshot returns a copy safe for read-only inspection
func (e *Execution) Snapshot() *Execution {
	e.mux.RLock()
	defer e.mux.RUnlock()
	return &Execution{
		ID:          e.ID,
		Name:        e.Name,
		State:       e.State,
		Emitted:     e.Emitted,
		Last:        e.Last,
		StartedAt:   e.StartedAt,
		CompletedAt: e.CompletedAt,
		Error:       e.Error,
	}
}

// Elapsed returns the run duration, zero when the execution never started
func (e *Execution) Elapsed() time.Duration {
	e.mux.RLock()
	defer e.mux.RUnlock()
	if e.StartedAt == nil {
		return 0
	}
	if e.CompletedAt == nil {
		return clock.Now().Sub(*e.StartedAt)
	}
	return e.CompletedAt.Sub(*e.StartedAt)
}
