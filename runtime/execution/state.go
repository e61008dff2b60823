package execution

// State represents the lifecycle state of a loop execution
type State string

const (
	StateNotStarted State = "notStarted"
	StateRunning    State = "running"
	StateCompleted  State = "completed"
	// StateFailed is reached only when the loop goroutine panicked.
	StateFailed State = "failed"
)

// IsTerminal reports whether no further transition is possible.
func (s State) IsTerminal() bool {
	return s == StateCompleted || s == StateFailed
}

// canTransition enforces notStarted -> running -> completed|failed.
func (s State) canTransition(to State) bool {
	switch s {
	case StateNotStarted:
		return to == StateRunning || to == StateFailed
	case StateRunning:
		return to == StateCompleted || to == StateFailed
	default:
		return false
	}
}
