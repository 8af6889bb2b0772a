// Package hostpath checks task prerequisites against the host PATH without installing anything.
package hostpath

import (
	"context"

	"go.trai.ch/rustci/internal/adapters/shell"
	"go.trai.ch/rustci/internal/core/domain"
	"go.trai.ch/zerr"
)

// Manager implements ports.PackageManager for hosts provisioned ahead of time.
type Manager struct {
	lookPath shell.LookPathFunc
}

// NewManager creates a new Manager.
func NewManager() *Manager {
	return &Manager{lookPath: shell.LookPath}
}

// Ensure fails with domain.ErrPrerequisiteMissing on the first package missing from PATH.
func (m *Manager) Ensure(_ context.Context, packages []string, env domain.Environment) ([]string, error) {
	for _, pkg := range packages {
		if _, err := m.lookPath(pkg, env); err != nil {
			missing := zerr.Wrap(domain.ErrPrerequisiteMissing, "host backend cannot install packages")
			return nil, zerr.With(missing, "package", pkg)
		}
	}
	return nil, nil
}
