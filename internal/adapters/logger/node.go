package logger

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/rustci/internal/adapters/config"
	"go.trai.ch/rustci/internal/core/domain"
	"go.trai.ch/rustci/internal/core/ports"
)

// NodeID is the unique identifier for the logger Graft node.
const NodeID graft.ID = "adapter.logger"

func init() {
	graft.Register(graft.Node[ports.Logger]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.ProjectNodeID},
		Run: func(ctx context.Context) (ports.Logger, error) {
			project, err := graft.Dep[*domain.Project](ctx)
			if err != nil {
				return nil, err
			}
			return NewWithOptions(Options{
				JSON:  project.Settings.Log.JSON,
				Level: project.Settings.Log.Level,
			}), nil
		},
	})
}
