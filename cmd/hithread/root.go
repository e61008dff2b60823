package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
	"github.com/viant/hithread"
	"github.com/viant/hithread/internal/logging"
	"github.com/viant/hithread/model/loop"
	"github.com/viant/hithread/tracing"
	"go.uber.org/zap"
)

// fatal terminates the process after running the registered exit handlers.
var fatal = func(err error) { atexit.Fatal(err) }

type options struct {
	configURL string
	traceFile string
	logLevel  string
	panicAt   int
}

func newRootCommand() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "hithread",
		Short: "Spawn a goroutine, print from both sides and join it.",
		Long: `hithread spawns a goroutine that prints "hi number N from the spawned thread!" ` +
			`while the main goroutine prints its own lines, then waits for the spawned ` +
			`goroutine to finish. A panic on the spawned goroutine is fatal.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&opts.configURL, "config", "c", "", "YAML config URL (file path, mem://, gs://, s3:// ...)")
	flags.StringVar(&opts.traceFile, "trace", "", "write OpenTelemetry spans to this file")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.IntVar(&opts.panicAt, "panic-at", 0, "make the spawned loop panic at this value")
	return cmd
}

func run(cmd *cobra.Command, opts *options) error {
	ctx := cmd.Context()
	cfg := hithread.DefaultConfig()
	if opts.configURL != "" {
		var err error
		if cfg, err = hithread.LoadConfig(ctx, opts.configURL); err != nil {
			return err
		}
	}
	if opts.logLevel != "" {
		if cfg.Logging == nil {
			cfg.Logging = logging.DefaultConfig()
		}
		cfg.Logging.Level = opts.logLevel
	}
	if opts.traceFile != "" {
		cfg.Tracing.Enabled = true
		cfg.Tracing.File = opts.traceFile
	}

	logging.Init(cfg.Logging)
	atexit.Register(logging.Sync)
	atexit.Register(func() { _ = tracing.Shutdown(context.Background()) })

	serviceOptions := []hithread.Option{
		hithread.WithConfig(cfg),
		hithread.WithLogger(logging.L()),
		hithread.WithWriter(cmd.OutOrStdout()),
	}
	if opts.panicAt > 0 {
		serviceOptions = append(serviceOptions, hithread.WithIterationHook(panicAt(opts.panicAt)))
	}
	srv, err := hithread.New(serviceOptions...)
	if err != nil {
		return err
	}
	effective := srv.Config()
	logging.L().Debug("starting",
		zap.Int("spawned.bound", effective.Spawned.Bound),
		zap.Int("main.bound", effective.Main.Bound),
		zap.Bool("tracing", effective.Tracing.Enabled))
	if _, err = srv.Run(ctx); err != nil {
		logging.L().Debug("exiting after failed join", zap.Error(err))
		fatal(err)
	}
	return nil
}

// panicAt returns a hook that panics when the spawned loop reaches value.
func panicAt(value int) func(string, int) {
	return func(name string, i int) {
		if name == loop.SpawnedName && i == value {
			panic(fmt.Sprintf("induced panic at %d", i))
		}
	}
}

// Execute runs the root command and exits through atexit so that the
// registered handlers always run.
func Execute() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		atexit.Exit(1)
	}
	atexit.Exit(0)
}
