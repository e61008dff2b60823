package worker

import "go.uber.org/zap"

// Option configures the worker service
type Option func(s *Service)

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithIterationHook registers fn to run before every emitted value. A hook
// that panics terminates the loop abnormally.
func WithIterationHook(fn func(loopName string, value int)) Option {
	return func(s *Service) {
		s.hook = fn
	}
}
