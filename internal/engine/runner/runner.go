// Package runner executes task definitions step by step through the execution engine.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"
	"go.trai.ch/rustci/internal/core/domain"
	"go.trai.ch/rustci/internal/core/ports"
	"go.trai.ch/zerr"
)

// Options configures a single execution.
type Options struct {
	// Timeout bounds the whole execution; zero disables it.
	Timeout time.Duration
	// WorkDir is where artifacts are looked up after a successful run.
	WorkDir string
}

// Runner submits the steps of a task to the execution engine in order and
// stops at the first failure.
type Runner struct {
	executor ports.Executor
	packages ports.PackageManager
	guards   ports.GuardEvaluator
	tracer   ports.Tracer
	logger   ports.Logger
	now      func() time.Time
}

// New creates a new Runner.
func New(
	executor ports.Executor,
	packages ports.PackageManager,
	guards ports.GuardEvaluator,
	tracer ports.Tracer,
	logger ports.Logger,
) *Runner {
	return &Runner{
		executor: executor,
		packages: packages,
		guards:   guards,
		tracer:   tracer,
		logger:   logger,
		now:      time.Now,
	}
}

// Execute runs def with the environment snapshot env.
//
// The returned result is never nil. On failure it carries the failing step
// index and message, and the error is returned as well.
func (r *Runner) Execute(
	ctx context.Context,
	def *domain.TaskDefinition,
	env domain.Environment,
	opts Options,
) (*domain.ExecutionResult, error) {
	started := r.now()
	res := &domain.ExecutionResult{
		RunID:     ulid.Make().String(),
		TaskName:  def.Name,
		StartedAt: started,
	}

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	plan := make([]string, len(def.Steps))
	for i, step := range def.Steps {
		plan[i] = step.Display()
	}
	r.tracer.EmitPlan(ctx, def.Name, plan)

	ctx, span := r.tracer.Start(ctx, def.Name,
		ports.WithAttribute(ports.AttrTask, def.Name),
		ports.WithAttribute(ports.AttrFingerprint, def.Fingerprint()),
		ports.WithAttribute(ports.AttrRunID, res.RunID),
	)
	defer span.End()

	err := r.run(ctx, def, env, res)
	res.Duration = r.now().Sub(started)
	if err != nil {
		span.RecordError(err)
		res.Fail(err)
		return res, err
	}

	res.CapturedOutput = res.Aggregate()
	res.Artifacts = r.collectArtifacts(def, opts.WorkDir)
	return res, nil
}

func (r *Runner) run(ctx context.Context, def *domain.TaskDefinition, env domain.Environment, res *domain.ExecutionResult) error {
	binDirs, err := r.packages.Ensure(ctx, def.Prerequisites, env)
	if err != nil {
		cause := errors.Join(domain.ErrPrerequisitesFailed, err)
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			cause = errors.Join(domain.ErrTimeout, cause)
		}
		return zerr.With(zerr.Wrap(cause, "cannot prepare task"), "packages", def.Prerequisites)
	}

	dirs := make([]string, 0, len(binDirs)+len(def.Paths))
	dirs = append(dirs, binDirs...)
	for _, p := range def.Paths {
		dirs = append(dirs, env.Expand(p))
	}
	stepEnv := env.WithPathPrefix(dirs...)
	environ := stepEnv.Environ()

	for i := range def.Steps {
		trace, err := r.runStep(ctx, i, &def.Steps[i], stepEnv, environ)
		res.Steps = append(res.Steps, trace)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) runStep(
	ctx context.Context,
	index int,
	step *domain.Command,
	stepEnv domain.Environment,
	environ []string,
) (domain.StepTrace, error) {
	trace := domain.StepTrace{Index: index, Command: step.Line()}
	stepErr := func(cause error) *domain.StepError {
		if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(cause, ctxErr) {
			cause = errors.Join(cause, ctxErr)
		}
		return &domain.StepError{
			Index:    index,
			Command:  trace.Command,
			Err:      cause,
			TimedOut: errors.Is(ctx.Err(), context.DeadlineExceeded),
		}
	}

	if err := ctx.Err(); err != nil {
		trace.Status = domain.StepFailed
		return trace, stepErr(err)
	}

	ctx, span := r.tracer.Start(ctx, step.Display(),
		ports.WithAttribute(ports.AttrStepIndex, index),
		ports.WithAttribute(ports.AttrStepCommand, trace.Command),
	)
	defer span.End()

	start := r.now()

	if step.Guard != nil {
		skip, err := r.guards.Satisfied(ctx, step.Guard, stepEnv)
		if err != nil {
			trace.Status = domain.StepFailed
			err = stepErr(errors.Join(domain.ErrGuardEvaluationFailed, err))
			span.RecordError(err)
			trace.Duration = r.now().Sub(start)
			return trace, err
		}
		if skip {
			r.logger.Debug(fmt.Sprintf("skipping step %d of %q: %s is satisfied", index, step.Display(), step.Guard))
			span.SetAttribute(ports.AttrStepSkipped, true)
			trace.Status = domain.StepSkipped
			trace.Duration = r.now().Sub(start)
			return trace, nil
		}
	}

	var out bytes.Buffer
	stdout := io.MultiWriter(&out, span)
	err := r.executor.Execute(ctx, step, environ, stdout, span)
	trace.Output = out.String()
	trace.Duration = r.now().Sub(start)
	if err != nil {
		trace.Status = domain.StepFailed
		se := stepErr(err)
		span.RecordError(se)
		return trace, se
	}

	trace.Status = domain.StepRan
	return trace, nil
}

func (r *Runner) collectArtifacts(def *domain.TaskDefinition, workDir string) []string {
	var found []string
	for _, artifact := range def.Artifacts {
		path := artifact
		if !filepath.IsAbs(path) {
			path = filepath.Join(workDir, artifact)
		}
		if _, err := os.Stat(path); err != nil {
			r.logger.Warn(fmt.Sprintf("task %s did not produce artifact %s", def.Name, artifact))
			continue
		}
		found = append(found, artifact)
	}
	return found
}
