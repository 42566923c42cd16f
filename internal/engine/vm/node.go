package vm

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/modcache/internal/core/ports"
)

// NodeID is the unique identifier for the engine Graft node.
const NodeID graft.ID = "engine.vm"

func init() {
	graft.Register(graft.Node[ports.Engine]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Engine, error) {
			return New(), nil
		},
	})
}
