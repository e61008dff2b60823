package worker

import (
	"context"
	"fmt"
	"strconv"

	"github.com/viant/hithread/internal/clock"
	"github.com/viant/hithread/model/loop"
	"github.com/viant/hithread/progress"
	"github.com/viant/hithread/runtime/execution"
	"github.com/viant/hithread/service/action/printer"
	"github.com/viant/hithread/tracing"
	"go.uber.org/zap"
)

// Service runs counted loops, printing one line per value
type Service struct {
	printer *printer.Service
	logger  *zap.Logger
	hook    func(loopName string, value int)
}

// New creates a worker service writing through p
func New(p *printer.Service, options ...Option) *Service {
	s := &Service{printer: p, logger: zap.NewNop()}
	for _, opt := range options {
		opt(s)
	}
	if s.printer == nil {
		s.printer = printer.New(nil)
	}
	return s
}

// Run drives aLoop to completion on the calling goroutine, pausing for the
// loop delay after every line. A panic raised while iterating marks the
// execution failed and is re-raised to the caller.
func (s *Service) Run(ctx context.Context, aLoop *loop.Loop, anExecution *execution.Execution) (err error) {
	ctx, span := tracing.StartSpan(ctx, "loop "+aLoop.Name, "INTERNAL")
	span.WithAttributes(map[string]string{
		"loop.name":    aLoop.Name,
		"loop.label":   aLoop.Label,
		"loop.bound":   strconv.Itoa(aLoop.Bound),
		"loop.delay":   aLoop.Delay.String(),
		"execution.id": anExecution.ID,
	})
	logger := s.logger.With(zap.String("loop", aLoop.Name), zap.String("execution", anExecution.ID))

	anExecution.Start()
	progress.UpdateCtx(ctx, progress.Delta{Loop: aLoop.Name, Running: 1})
	logger.Debug("loop started", zap.Int("iterations", aLoop.Iterations()), zap.Duration("delay", aLoop.Delay))

	defer func() {
		r := recover()
		if r == nil {
			return
		}
		panicErr := fmt.Errorf("loop %v panicked: %v", aLoop.Name, r)
		s.fail(ctx, aLoop, anExecution, panicErr)
		logger.Debug("loop panicked", zap.Any("value", r), zap.Int("emitted", anExecution.Snapshot().Emitted))
		tracing.EndSpan(span, panicErr)
		panic(r)
	}()

	counter := aLoop.Counter()
	for {
		value, ok := counter.Next()
		if !ok {
			break
		}
		if s.hook != nil {
			s.hook(aLoop.Name, value)
		}
		if err = s.printer.Println(aLoop.Line(value)); err != nil {
			err = fmt.Errorf("loop %v: failed to print %d: %w", aLoop.Name, value, err)
			s.fail(ctx, aLoop, anExecution, err)
			logger.Error("loop failed", zap.Error(err))
			tracing.EndSpan(span, err)
			return err
		}
		anExecution.Emit(value)
		span.AddEvent("emit", map[string]string{"value": strconv.Itoa(value)})
		progress.UpdateCtx(ctx, progress.Delta{Loop: aLoop.Name, Emitted: 1})
		clock.Sleep(aLoop.Delay)
	}

	anExecution.Complete()
	progress.UpdateCtx(ctx, progress.Delta{Loop: aLoop.Name, Running: -1, Completed: 1})
	logger.Debug("loop completed", zap.Int("emitted", anExecution.Snapshot().Emitted), zap.Duration("elapsed", anExecution.Elapsed()))
	tracing.EndSpan(span, nil)
	return nil
}

func (s *Service) fail(ctx context.Context, aLoop *loop.Loop, anExecution *execution.Execution, err error) {
	anExecution.Fail(err)
	progress.UpdateCtx(ctx, progress.Delta{Loop: aLoop.Name, Running: -1, Failed: 1})
}
