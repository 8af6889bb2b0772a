// Package pkgx provisions task prerequisites with pkgx.
package pkgx

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"go.trai.ch/rustci/internal/adapters/shell"
	"go.trai.ch/rustci/internal/core/domain"
	"go.trai.ch/rustci/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

// Manager implements ports.PackageManager using the pkgx CLI.
// Packages already on PATH are left alone.
type Manager struct {
	logger   ports.Logger
	output   shell.OutputFunc
	lookPath shell.LookPathFunc
	group    singleflight.Group
}

// NewManager creates a new Manager.
func NewManager(logger ports.Logger) *Manager {
	return &Manager{
		logger:   logger,
		output:   shell.Output,
		lookPath: shell.LookPath,
	}
}

// Ensure installs the packages missing from PATH and returns the pkgx bin directory.
func (m *Manager) Ensure(ctx context.Context, packages []string, env domain.Environment) ([]string, error) {
	binDir, err := installDir(env)
	if err != nil {
		return nil, err
	}
	// Packages installed by an earlier task are visible through the bin directory.
	searchEnv := env.WithPathPrefix(binDir)

	for _, pkg := range packages {
		if _, err := m.lookPath(pkg, searchEnv); err == nil {
			m.logger.Debug("prerequisite already available: " + pkg)
			continue
		}
		if err := m.install(ctx, pkg, env); err != nil {
			return nil, err
		}
	}
	return []string{binDir}, nil
}

// install runs pkgx install once per package, even for concurrent callers.
func (m *Manager) install(ctx context.Context, pkg string, env domain.Environment) error {
	_, err, _ := m.group.Do(pkg, func() (any, error) {
		m.logger.Info("installing " + pkg + " with pkgx")
		_, err := m.output(ctx, env, "pkgx", "install", pkg)
		return nil, err
	})
	if err != nil {
		installErr := zerr.Wrap(errors.Join(domain.ErrPackageInstallFailed, err), "pkgx install failed")
		return zerr.With(installErr, "package", pkg)
	}
	return nil
}

func installDir(env domain.Environment) (string, error) {
	home, ok := env.Get("HOME")
	if !ok || home == "" {
		var err error
		home, err = os.UserHomeDir()
		if err != nil {
			return "", zerr.Wrap(err, "cannot resolve pkgx install directory")
		}
	}
	return filepath.Join(home, ".local", "bin"), nil
}
