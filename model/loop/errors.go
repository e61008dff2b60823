package loop

import "errors"

var (
	ErrLoopMissing  = errors.New("loop is not defined")
	ErrLabelMissing = errors.New("loop label is empty")
	ErrInvalidBound = errors.New("loop bound must be >= 1")
	ErrInvalidDelay = errors.New("loop delay must not be negative")
)
