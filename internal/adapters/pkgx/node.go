package pkgx

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/rustci/internal/adapters/logger"
	"go.trai.ch/rustci/internal/core/ports"
)

// NodeID is the unique identifier for the pkgx package manager Graft node.
const NodeID graft.ID = "adapter.pkgx"

func init() {
	graft.Register(graft.Node[*Manager]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (*Manager, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewManager(log), nil
		},
	})
}
