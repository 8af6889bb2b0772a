// Package nix provisions task prerequisites from nixpkgs.
package nix

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"

	"go.trai.ch/rustci/internal/adapters/shell"
	"go.trai.ch/rustci/internal/core/domain"
	"go.trai.ch/zerr"
)

// DefaultFlake is the flake packages are built from.
const DefaultFlake = "nixpkgs"

// Manager implements ports.PackageManager using the Nix CLI.
type Manager struct {
	flake  string
	output shell.OutputFunc
}

// NewManager creates a new PackageManager backed by Nix CLI.
func NewManager() *Manager {
	return &Manager{
		flake:  DefaultFlake,
		output: shell.Output,
	}
}

// Ensure builds every package into the Nix store and returns their bin directories.
func (m *Manager) Ensure(ctx context.Context, packages []string, env domain.Environment) ([]string, error) {
	binDirs := make([]string, 0, len(packages))
	for _, pkg := range packages {
		storePath, err := m.install(ctx, pkg, env)
		if err != nil {
			return nil, err
		}
		binDirs = append(binDirs, filepath.Join(storePath, "bin"))
	}
	return binDirs, nil
}

// install ensures pkg is available in the Nix store and returns its store path.
func (m *Manager) install(ctx context.Context, pkg string, env domain.Environment) (string, error) {
	installable := m.flake + "#" + pkg

	// --no-link avoids creating result symlinks in the working directory.
	output, err := m.output(ctx, env, "nix", "build", "--json", "--no-link", installable)
	if err != nil {
		nixErr := zerr.Wrap(errors.Join(domain.ErrPackageInstallFailed, err), "nix build failed")
		return "", zerr.With(nixErr, "package", pkg)
	}

	return parseBuildResults(output, pkg)
}

func parseBuildResults(output []byte, pkg string) (string, error) {
	var results buildResults
	if err := json.Unmarshal(output, &results); err != nil {
		parseErr := zerr.Wrap(errors.Join(domain.ErrPackageInstallFailed, err), "failed to parse nix build JSON output")
		return "", zerr.With(parseErr, "package", pkg)
	}

	if len(results) == 0 {
		emptyErr := zerr.Wrap(domain.ErrPackageInstallFailed, "empty build results from nix build")
		return "", zerr.With(emptyErr, "package", pkg)
	}

	storePath, ok := results[0].Outputs["out"]
	if !ok || storePath == "" {
		outErr := zerr.Wrap(domain.ErrPackageInstallFailed, "no 'out' output found in build results")
		return "", zerr.With(outErr, "package", pkg)
	}

	return storePath, nil
}
