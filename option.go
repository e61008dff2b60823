package hithread

import (
	"io"

	"github.com/viant/hithread/progress"
	"github.com/viant/hithread/tracing"
	"go.uber.org/zap"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Option configures the service
type Option func(s *Service)

// WithConfig sets the run configuration
func WithConfig(cfg *Config) Option {
	return func(s *Service) {
		if cfg != nil {
			s.config = cfg
		}
	}
}

// WithWriter sets where lines are printed, standard output by default
func WithWriter(w io.Writer) Option {
	return func(s *Service) {
		s.writer = w
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithIterationHook registers fn to run before every value of either loop.
// A panicking hook on the spawned loop surfaces as a failed join.
func WithIterationHook(fn func(loopName string, value int)) Option {
	return func(s *Service) {
		s.hook = fn
	}
}

// WithProgressListener registers a callback invoked after every progress
// counter update.
func WithProgressListener(fn func(progress.Progress)) Option {
	return func(s *Service) {
		s.onProgress = fn
	}
}

// WithTracing exports spans with the stdout exporter to outputFile (stderr
// when empty). The first successful initialisation wins.
func WithTracing(serviceName, serviceVersion, outputFile string) Option {
	return func(s *Service) {
		s.tracingErr = tracing.Init(serviceName, serviceVersion, outputFile)
	}
}

// WithTracingExporter exports spans with a custom exporter.
func WithTracingExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) Option {
	return func(s *Service) {
		s.tracingErr = tracing.InitWithExporter(serviceName, serviceVersion, exporter)
	}
}
