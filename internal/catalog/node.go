package catalog

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/rustci/internal/adapters/config"
	"go.trai.ch/rustci/internal/core/domain"
)

// NodeID is the unique identifier for the task registry Graft node.
const NodeID graft.ID = "catalog.registry"

func init() {
	graft.Register(graft.Node[*domain.Registry]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.ProjectNodeID},
		Run: func(ctx context.Context) (*domain.Registry, error) {
			project, err := graft.Dep[*domain.Project](ctx)
			if err != nil {
				return nil, err
			}
			return NewRegistry(project)
		},
	})
}
