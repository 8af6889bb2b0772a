// Package app implements the application layer for rustci.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"go.trai.ch/rustci/internal/adapters/detector"
	"go.trai.ch/rustci/internal/adapters/linear"
	"go.trai.ch/rustci/internal/adapters/telemetry"
	"go.trai.ch/rustci/internal/core/domain"
	"go.trai.ch/rustci/internal/core/ports"
	"go.trai.ch/rustci/internal/engine/runner"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// tracerName is the instrumentation scope of invocation spans.
const tracerName = "rustci"

// App is the boundary entry point: it resolves a task, binds arguments,
// snapshots the environment and runs the task to completion.
type App struct {
	registry *domain.Registry
	project  *domain.Project
	executor ports.Executor
	packages ports.PackageManager
	guards   ports.GuardEvaluator
	environ  ports.EnvironmentReader
	dialer   ports.PluginDialer
	logger   ports.Logger

	progress   io.Writer
	detectMode func() detector.OutputMode
}

// New creates a new App instance.
func New(
	registry *domain.Registry,
	project *domain.Project,
	executor ports.Executor,
	packages ports.PackageManager,
	guards ports.GuardEvaluator,
	environ ports.EnvironmentReader,
	dialer ports.PluginDialer,
	logger ports.Logger,
) *App {
	return &App{
		registry:   registry,
		project:    project,
		executor:   executor,
		packages:   packages,
		guards:     guards,
		environ:    environ,
		dialer:     dialer,
		logger:     logger,
		progress:   os.Stderr,
		detectMode: detector.DetectEnvironment,
	}
}

// WithProgressOutput redirects progress rendering, which defaults to stderr.
func (a *App) WithProgressOutput(w io.Writer) *App {
	a.progress = w
	return a
}

// WithModeDetector replaces terminal and CI detection for the auto output mode.
func (a *App) WithModeDetector(detect func() detector.OutputMode) *App {
	a.detectMode = detect
	return a
}

// InvokeOptions configures one invocation.
type InvokeOptions struct {
	// OutputMode is one of auto, linear, ci or quiet.
	OutputMode string
}

// Invoke runs the named task with args and returns its captured output.
// Failures never return partial output; errors.Is(err, domain.ErrTaskExecutionFailed)
// holds and the original kind stays reachable.
func (a *App) Invoke(ctx context.Context, name, args string, opts InvokeOptions) (string, error) {
	res, err := a.Run(ctx, name, args, opts)
	if err != nil {
		return "", err
	}
	return res.CapturedOutput, nil
}

// Run is like Invoke but returns the full execution result.
// The result is nil when the task could not be started.
func (a *App) Run(ctx context.Context, name, args string, opts InvokeOptions) (*domain.ExecutionResult, error) {
	if name == "" {
		return nil, errors.Join(zerr.Wrap(domain.ErrNoTaskSpecified, "cannot invoke task"), domain.ErrTaskExecutionFailed)
	}

	def, err := a.registry.Lookup(name)
	if err != nil {
		return nil, errors.Join(err, domain.ErrTaskExecutionFailed)
	}
	bound := def.Bind(args)

	settings := a.project.Settings
	vars := slices.Concat(settings.Environment, bound.Environment)
	env, err := a.environ.Snapshot(vars, settings.Passthrough)
	if err != nil {
		return nil, errors.Join(zerr.With(err, "task", name), domain.ErrTaskExecutionFailed)
	}

	res, err := a.execute(ctx, bound, env, opts)
	if err != nil {
		return res, errors.Join(err, domain.ErrTaskExecutionFailed)
	}
	for _, artifact := range res.Artifacts {
		a.logger.Info(fmt.Sprintf("%s produced %s", name, artifact))
	}
	return res, nil
}

// execute wires the telemetry stack for one invocation and runs def.
func (a *App) execute(
	ctx context.Context,
	def *domain.TaskDefinition,
	env domain.Environment,
	opts InvokeOptions,
) (*domain.ExecutionResult, error) {
	settings := a.project.Settings
	runOpts := runner.Options{Timeout: settings.Timeout, WorkDir: settings.WorkDir}

	var renderer ports.Renderer
	if detector.ResolveMode(a.detectMode(), opts.OutputMode) == detector.ModeLinear {
		renderer = linear.NewRenderer(a.progress, a.progress)
	}

	exporter, err := telemetry.NewExportProcessor(settings.Telemetry, a.project.Root)
	if err != nil {
		return nil, err
	}

	if renderer == nil && exporter == nil {
		r := runner.New(a.executor, a.packages, a.guards, telemetry.NewNoOpTracer(), a.logger)
		return r.Execute(ctx, def, env, runOpts)
	}

	var tracer *telemetry.OTelTracer
	if renderer != nil {
		tracer = telemetry.NewOTelTracer(tracerName, telemetry.NewBridge(renderer), exporter).WithRenderer(renderer)
	} else {
		tracer = telemetry.NewOTelTracer(tracerName, exporter)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := tracer.Shutdown(shutdownCtx); err != nil {
			a.logger.Warn("failed to flush spans: " + err.Error())
		}
	}()

	r := runner.New(a.executor, a.packages, a.guards, tracer, a.logger)
	if renderer == nil {
		return r.Execute(ctx, def, env, runOpts)
	}

	var res *domain.ExecutionResult
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := renderer.Start(gctx); err != nil {
			return err
		}
		return renderer.Wait()
	})

	g.Go(func() (err error) {
		defer func() {
			if p := recover(); p != nil {
				err = zerr.With(zerr.New("runner panicked"), "panic", fmt.Sprint(p))
			}
			_ = renderer.Stop()
		}()
		res, err = r.Execute(gctx, def, env, runOpts)
		return err
	})

	return res, g.Wait()
}

// Tasks lists the registered tasks in registration order.
func (a *App) Tasks() []ports.OperationInfo {
	defs := a.registry.Tasks()
	ops := make([]ports.OperationInfo, 0, len(defs))
	for _, def := range defs {
		ops = append(ops, ports.OperationInfo{
			Name:        def.Name,
			Description: def.Description,
			AcceptsArgs: def.AcceptsArgs(),
			Fingerprint: def.Fingerprint(),
		})
	}
	return ops
}
