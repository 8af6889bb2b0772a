// Package ports defines the core interfaces for the application.
package ports

import (
	"context"
	"io"

	"go.trai.ch/rustci/internal/core/domain"
)

// Executor defines the interface for executing task steps.
//
//go:generate mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute runs the given command with the specified environment.
	//
	// The env parameter contains environment variables in "KEY=VALUE" format,
	// already extended with the PATH entries the task needs.
	//
	// It returns an error if the command cannot be started or exits non-zero.
	Execute(ctx context.Context, cmd *domain.Command, env []string, stdout, stderr io.Writer) error
}

// GuardEvaluator decides whether a step's skip guard is satisfied.
type GuardEvaluator interface {
	// Satisfied reports whether the step guarded by guard can be skipped.
	// A nil guard is never satisfied.
	Satisfied(ctx context.Context, guard *domain.SkipGuard, env domain.Environment) (bool, error)
}
