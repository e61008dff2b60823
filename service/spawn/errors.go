package spawn

import (
	"errors"
	"fmt"
)

// ErrPanicked is matched by every error Join returns for a panicked goroutine.
var ErrPanicked = errors.New("spawned goroutine panicked")

// PanicError carries the recovered value and the stack of the panicking
// goroutine.
type PanicError struct {
	Name  string
	Value interface{}
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("%v %q: %v", ErrPanicked, e.Name, e.Value)
}

// Unwrap exposes ErrPanicked and, when the panic value is an error, the value
// itself.
func (e *PanicError) Unwrap() []error {
	if err, ok := e.Value.(error); ok {
		return []error{ErrPanicked, err}
	}
	return []error{ErrPanicked}
}
