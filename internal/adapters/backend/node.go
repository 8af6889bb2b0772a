package backend

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/rustci/internal/adapters/config"
	"go.trai.ch/rustci/internal/adapters/hostpath"
	"go.trai.ch/rustci/internal/adapters/nix"
	"go.trai.ch/rustci/internal/adapters/pkgx"
	"go.trai.ch/rustci/internal/core/domain"
	"go.trai.ch/rustci/internal/core/ports"
)

// NodeID is the unique identifier for the package manager Graft node.
const NodeID graft.ID = "adapter.package_manager"

func init() {
	graft.Register(graft.Node[ports.PackageManager]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.ProjectNodeID, pkgx.NodeID, nix.NodeID, hostpath.NodeID},
		Run: func(ctx context.Context) (ports.PackageManager, error) {
			project, err := graft.Dep[*domain.Project](ctx)
			if err != nil {
				return nil, err
			}
			pkgxManager, err := graft.Dep[*pkgx.Manager](ctx)
			if err != nil {
				return nil, err
			}
			nixManager, err := graft.Dep[*nix.Manager](ctx)
			if err != nil {
				return nil, err
			}
			hostManager, err := graft.Dep[*hostpath.Manager](ctx)
			if err != nil {
				return nil, err
			}

			managers := Managers{Pkgx: pkgxManager, Nix: nixManager, Host: hostManager}
			return managers.Select(project.Settings.Backend)
		},
	})
}
