package ports

import "go.trai.ch/rustci/internal/core/domain"

// ConfigLoader defines the interface for loading the project configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load discovers the project file from the given working directory.
	// A missing project file yields the default project rooted at cwd.
	Load(cwd string) (*domain.Project, error)
}
