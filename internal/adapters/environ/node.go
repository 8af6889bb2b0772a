package environ

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/rustci/internal/core/ports"
)

// NodeID is the unique identifier for the environment reader Graft node.
const NodeID graft.ID = "adapter.environ"

func init() {
	graft.Register(graft.Node[ports.EnvironmentReader]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.EnvironmentReader, error) {
			return NewReader(), nil
		},
	})
}
