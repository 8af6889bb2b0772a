package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// StepStatus is the outcome of a single step.
type StepStatus string

const (
	// StepRan indicates the step was executed and succeeded.
	StepRan StepStatus = "ran"
	// StepSkipped indicates the step's guard was satisfied.
	StepSkipped StepStatus = "skipped"
	// StepFailed indicates the step was executed and failed.
	StepFailed StepStatus = "failed"
)

// StepTrace records what happened to one step of an invocation.
type StepTrace struct {
	Index    int
	Command  string
	Status   StepStatus
	Output   string
	Duration time.Duration
}

// ExecutionResult is produced once per invocation and owned by the caller.
type ExecutionResult struct {
	RunID          string
	TaskName       string
	CapturedOutput string
	// FailedStepIndex is nil unless a step failed.
	FailedStepIndex *int
	ErrorMessage    string
	Err             error
	Steps           []StepTrace
	Artifacts       []string
	StartedAt       time.Time
	Duration        time.Duration
}

// Failed reports whether the invocation ended in an error.
func (r *ExecutionResult) Failed() bool {
	return r.Err != nil
}

// Fail records err as the outcome of the invocation.
func (r *ExecutionResult) Fail(err error) {
	r.Err = err
	r.ErrorMessage = err.Error()
	var stepErr *StepError
	if errors.As(err, &stepErr) {
		idx := stepErr.Index
		r.FailedStepIndex = &idx
	}
}

// Aggregate concatenates the output of executed steps in declared order.
func (r *ExecutionResult) Aggregate() string {
	var b strings.Builder
	for _, s := range r.Steps {
		if s.Status == StepSkipped {
			continue
		}
		b.WriteString(s.Output)
	}
	return b.String()
}

// StepError reports the step at which an invocation halted.
type StepError struct {
	Index   int
	Command string
	Err     error
	// TimedOut is set when the step was interrupted by the task deadline.
	TimedOut bool
}

// Error implements error.
func (e *StepError) Error() string {
	kind := ErrStepExecutionFailed.Error()
	if e.TimedOut {
		kind = ErrTimeout.Error()
	}
	if e.Err == nil {
		return fmt.Sprintf("%s at step %d (%s)", kind, e.Index, e.Command)
	}
	return fmt.Sprintf("%s at step %d (%s): %v", kind, e.Index, e.Command, e.Err)
}

// Unwrap returns the engine error.
func (e *StepError) Unwrap() error {
	return e.Err
}

// Is matches ErrStepExecutionFailed, and ErrTimeout for timed out steps.
func (e *StepError) Is(target error) bool {
	if target == ErrStepExecutionFailed {
		return true
	}
	return e.TimedOut && target == ErrTimeout
}
