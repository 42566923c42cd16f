package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/modcache/internal/adapters/cas"       //nolint:depguard // Wired in app layer
	"go.trai.ch/modcache/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/modcache/internal/adapters/fs"        //nolint:depguard // Wired in app layer
	"go.trai.ch/modcache/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/modcache/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/modcache/internal/core/ports"
	"go.trai.ch/modcache/internal/engine/vm"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			cas.NodeID,
			vm.NodeID,
			fs.WalkerNodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	opener, err := graft.Dep[ports.CacheOpener](ctx)
	if err != nil {
		return nil, err
	}

	engine, err := graft.Dep[ports.Engine](ctx)
	if err != nil {
		return nil, err
	}

	finder, err := graft.Dep[ports.ProgramFinder](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, opener, engine, finder, log, tracer), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}

	return NewComponents(app, log, tracer), nil
}
