package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/modcache/internal/core/ports"
)

// WalkerNodeID is the unique identifier for the program finder Graft node.
const WalkerNodeID graft.ID = "adapter.fs.walker"

func init() {
	graft.Register(graft.Node[ports.ProgramFinder]{
		ID:        WalkerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ProgramFinder, error) {
			return NewWalker(), nil
		},
	})
}
