package cas

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/modcache/internal/core/ports"
	"go.trai.ch/modcache/internal/engine/vm"
)

// NodeID is the unique identifier for the cache opener Graft node.
const NodeID graft.ID = "adapter.module_cache"

func init() {
	graft.Register(graft.Node[ports.CacheOpener]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{vm.NodeID},
		Run: func(ctx context.Context) (ports.CacheOpener, error) {
			engine, err := graft.Dep[ports.Engine](ctx)
			if err != nil {
				return nil, err
			}
			return NewOpener(engine), nil
		},
	})
}
