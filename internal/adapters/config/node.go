package config

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/rustci/internal/core/domain"
	"go.trai.ch/rustci/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	// NodeID is the unique identifier for the config loader Graft node.
	NodeID graft.ID = "adapter.config_loader"
	// ProjectNodeID is the unique identifier for the loaded project Graft node.
	ProjectNodeID graft.ID = "adapter.project"
)

func init() {
	graft.Register(graft.Node[ports.ConfigLoader]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ConfigLoader, error) {
			return NewLoader(), nil
		},
	})

	graft.Register(graft.Node[*domain.Project]{
		ID:        ProjectNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{NodeID},
		Run: func(ctx context.Context) (*domain.Project, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}
			cwd, err := os.Getwd()
			if err != nil {
				return nil, zerr.Wrap(err, "cannot determine working directory")
			}
			return loader.Load(cwd)
		},
	})
}
