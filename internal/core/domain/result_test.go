package domain_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/rustci/internal/core/domain"
)

func TestStepError(t *testing.T) {
	cause := errors.New("exit status 101")
	err := &domain.StepError{Index: 2, Command: "cargo build", Err: cause}

	assert.ErrorIs(t, err, domain.ErrStepExecutionFailed)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, domain.ErrTimeout)
	assert.Equal(t, "step execution failed at step 2 (cargo build): exit status 101", err.Error())

	timedOut := &domain.StepError{Index: 0, Command: "sleep 10", Err: context.DeadlineExceeded, TimedOut: true}
	assert.ErrorIs(t, timedOut, domain.ErrTimeout)
	assert.ErrorIs(t, timedOut, domain.ErrStepExecutionFailed)
	assert.ErrorIs(t, timedOut, context.DeadlineExceeded)
}

func TestExecutionResult_Fail(t *testing.T) {
	res := &domain.ExecutionResult{}
	res.Fail(errors.Join(domain.ErrTaskExecutionFailed, &domain.StepError{Index: 1, Command: "false"}))

	require.NotNil(t, res.FailedStepIndex)
	assert.Equal(t, 1, *res.FailedStepIndex)
	assert.True(t, res.Failed())
	assert.Contains(t, res.ErrorMessage, "step 1")

	other := &domain.ExecutionResult{}
	other.Fail(domain.ErrPrerequisitesFailed)
	assert.Nil(t, other.FailedStepIndex)
}

func TestExecutionResult_Aggregate(t *testing.T) {
	res := &domain.ExecutionResult{Steps: []domain.StepTrace{
		{Index: 0, Status: domain.StepRan, Output: "A\n"},
		{Index: 1, Status: domain.StepSkipped, Output: "ignored"},
		{Index: 2, Status: domain.StepRan, Output: "B\n"},
	}}
	assert.Equal(t, "A\nB\n", res.Aggregate())
}
