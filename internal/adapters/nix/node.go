package nix

import (
	"context"

	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the Nix package manager Graft node.
const NodeID graft.ID = "adapter.nix"

func init() {
	graft.Register(graft.Node[*Manager]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Manager, error) {
			return NewManager(), nil
		},
	})
}
