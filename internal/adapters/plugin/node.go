package plugin

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/rustci/internal/core/ports"
)

// DialerNodeID is the unique identifier for the plugin dialer Graft node.
const DialerNodeID graft.ID = "adapter.plugin_dialer"

func init() {
	graft.Register(graft.Node[ports.PluginDialer]{
		ID:        DialerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.PluginDialer, error) {
			return Dialer{}, nil
		},
	})
}
