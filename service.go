package hithread

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/viant/hithread/internal/idgen"
	"github.com/viant/hithread/progress"
	"github.com/viant/hithread/runtime/execution"
	"github.com/viant/hithread/service/action/printer"
	"github.com/viant/hithread/service/spawn"
	"github.com/viant/hithread/service/worker"
	"github.com/viant/hithread/tracing"
	"go.uber.org/zap"
)

// Service spawns the spawned loop, runs the main loop and joins
type Service struct {
	config     *Config
	writer     io.Writer
	logger     *zap.Logger
	hook       func(loopName string, value int)
	onProgress func(progress.Progress)
	tracingErr error

	printer *printer.Service
	worker  *worker.Service
}

// Report describes a finished run
type Report struct {
	RunID    string               `json:"runId"`
	Spawned  *execution.Execution `json:"spawned"`
	Main     *execution.Execution `json:"main"`
	Progress progress.Progress    `json:"progress"`
}

// New creates a service
func New(options ...Option) (*Service, error) {
	s := &Service{
		config: DefaultConfig(),
		logger: zap.NewNop(),
	}
	for _, opt := range options {
		opt(s)
	}
	if s.tracingErr != nil {
		return nil, fmt.Errorf("failed to initialise tracing: %w", s.tracingErr)
	}
	if err := s.config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if tc := s.config.Tracing; tc.Enabled {
		if err := tracing.Init(tc.ServiceName, tc.ServiceVersion, tc.File); err != nil {
			return nil, fmt.Errorf("failed to initialise tracing: %w", err)
		}
	}
	s.printer = printer.New(s.writer)
	s.worker = worker.New(s.printer, worker.WithLogger(s.logger), worker.WithIterationHook(s.hook))
	return s, nil
}

// Config returns the effective configuration
func (s *Service) Config() *Config {
	return s.config
}

// Run spawns the spawned loop on a new goroutine, runs the main loop on the
// calling goroutine and then blocks until the spawned loop has finished.
// A panic on the spawned goroutine is returned as an error matching
// spawn.ErrPanicked; callers are expected to treat it as fatal.
func (s *Service) Run(ctx context.Context) (report *Report, err error) {
	runID := idgen.New()
	ctx, tracker := progress.WithNewTracker(ctx, runID, nil)
	tracker.OnChange(s.onProgress)
	ctx, span := tracing.StartSpan(ctx, "hithread.Run", "INTERNAL")
	span.WithAttributes(map[string]string{"run.id": runID})
	defer func() { tracing.EndSpan(span, err) }()

	spawnedLoop, mainLoop := s.config.Spawned, s.config.Main
	spawnedExecution := execution.New(spawnedLoop.Name)
	mainExecution := execution.New(mainLoop.Name)
	logger := s.logger.With(zap.String("run", runID))

	handle := spawn.Spawn(ctx, spawnedLoop.Name, func(ctx context.Context) error {
		return s.worker.Run(ctx, &spawnedLoop, spawnedExecution)
	})
	logger.Debug("spawned", zap.String("loop", handle.Name()))

	mainErr := s.worker.Run(ctx, &mainLoop, mainExecution)

	joinErr := handle.Join()
	if joinErr != nil {
		// the worker marks the execution failed before re-panicking; this
		// covers a goroutine that died before it could start the loop
		spawnedExecution.Fail(joinErr)
		joinErr = fmt.Errorf("failed to join %v: %w", handle.Name(), joinErr)
		logger.Error("join failed", zap.Error(joinErr))
	} else {
		logger.Debug("joined", zap.String("loop", handle.Name()), zap.Int("lines", s.printer.Lines()))
	}

	report = &Report{
		RunID:    runID,
		Spawned:  spawnedExecution.Snapshot(),
		Main:     mainExecution.Snapshot(),
		Progress: tracker.Snapshot(),
	}
	return report, errors.Join(joinErr, mainErr)
}
