package hostpath

import (
	"context"

	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the host package manager Graft node.
const NodeID graft.ID = "adapter.hostpath"

func init() {
	graft.Register(graft.Node[*Manager]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Manager, error) {
			return NewManager(), nil
		},
	})
}
