package ports

import (
	"context"

	"go.trai.ch/rustci/internal/core/domain"
)

// PackageManager provisions the packages a task declares as prerequisites.
//
//go:generate mockgen -source=package_manager.go -destination=mocks/mock_package_manager.go -package=mocks
type PackageManager interface {
	// Ensure makes every package available and returns the directories that
	// must be prepended to PATH for the task's steps to find them.
	Ensure(ctx context.Context, packages []string, env domain.Environment) (binDirs []string, err error)
}
