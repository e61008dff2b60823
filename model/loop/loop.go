package loop

import (
	"fmt"
	"time"
)

const (
	// SpawnedName names the loop that runs on the spawned goroutine.
	SpawnedName = "spawned"
	// MainName names the loop that runs on the calling goroutine.
	MainName = "main"
)

// Loop describes a counted loop that emits the integers 1..Bound-1.
type Loop struct {
	Name  string        `json:"name,omitempty" yaml:"name,omitempty"`
	Label string        `json:"label" yaml:"label"`
	Bound int           `json:"bound" yaml:"bound"`
	Delay time.Duration `json:"delay" yaml:"delay"`
}

// Spawned returns the default spawned loop: 1..9, 1ms apart.
func Spawned() *Loop {
	return &Loop{Name: SpawnedName, Label: "spawned thread", Bound: 10, Delay: time.Millisecond}
}

// Main returns the default main loop: 1..4, 1ms apart.
func Main() *Loop {
	return &Loop{Name: MainName, Label: "main thread", Bound: 5, Delay: time.Millisecond}
}

// Validate checks loop settings.
func (l *Loop) Validate() error {
	if l == nil {
		return ErrLoopMissing
	}
	if l.Label == "" {
		return fmt.Errorf("loop %q: %w", l.Name, ErrLabelMissing)
	}
	if l.Bound < 1 {
		return fmt.Errorf("loop %q: bound %d: %w", l.Name, l.Bound, ErrInvalidBound)
	}
	if l.Delay < 0 {
		return fmt.Errorf("loop %q: delay %v: %w", l.Name, l.Delay, ErrInvalidDelay)
	}
	return nil
}

// Iterations returns how many values the loop emits.
func (l *Loop) Iterations() int {
	if l.Bound <= 1 {
		return 0
	}
	return l.Bound - 1
}

// Line formats the message emitted for i.
func (l *Loop) Line(i int) string {
	return fmt.Sprintf("hi number %d from the %s!", i, l.Label)
}

// Counter returns a fresh sequence over 1..Bound-1.
func (l *Loop) Counter() *Counter {
	return &Counter{bound: l.Bound}
}

// Counter is a lazy, finite sequence of increasing integers. Once exhausted it
// stays exhausted; it cannot be rewound. A Counter is owned by one goroutine.
type Counter struct {
	next  int
	bound int
	done  bool
}

// Next returns the next value, or false when the sequence is exhausted.
func (c *Counter) Next() (int, bool) {
	if c.done {
		return 0, false
	}
	if c.next == 0 {
		c.next = 1
	}
	if c.next >= c.bound {
		c.done = true
		return 0, false
	}
	value := c.next
	c.next++
	return value, true
}
