// Package backend selects the package manager configured for the project.
package backend

import (
	"go.trai.ch/rustci/internal/core/domain"
	"go.trai.ch/rustci/internal/core/ports"
	"go.trai.ch/zerr"
)

// Managers holds one package manager per backend.
type Managers struct {
	Pkgx ports.PackageManager
	Nix  ports.PackageManager
	Host ports.PackageManager
}

// Select returns the manager serving b.
func (m Managers) Select(b domain.Backend) (ports.PackageManager, error) {
	switch b {
	case domain.BackendPkgx:
		return m.Pkgx, nil
	case domain.BackendNix:
		return m.Nix, nil
	case domain.BackendHost:
		return m.Host, nil
	default:
		return nil, zerr.With(zerr.Wrap(domain.ErrInvalidBackend, "cannot select package manager"), "backend", string(b))
	}
}
