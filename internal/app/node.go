package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/rustci/internal/adapters/backend" //nolint:depguard // Wired in app layer
	"go.trai.ch/rustci/internal/adapters/config"  //nolint:depguard // Wired in app layer
	"go.trai.ch/rustci/internal/adapters/environ" //nolint:depguard // Wired in app layer
	"go.trai.ch/rustci/internal/adapters/logger"  //nolint:depguard // Wired in app layer
	"go.trai.ch/rustci/internal/adapters/plugin"  //nolint:depguard // Wired in app layer
	"go.trai.ch/rustci/internal/adapters/shell"   //nolint:depguard // Wired in app layer
	"go.trai.ch/rustci/internal/catalog"
	"go.trai.ch/rustci/internal/core/domain"
	"go.trai.ch/rustci/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components contains the initialized application components the CLI needs.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			catalog.NodeID,
			config.ProjectNodeID,
			shell.NodeID,
			shell.GuardNodeID,
			backend.NodeID,
			environ.NodeID,
			plugin.DialerNodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{AppNodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{App: app, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	registry, err := graft.Dep[*domain.Registry](ctx)
	if err != nil {
		return nil, err
	}
	project, err := graft.Dep[*domain.Project](ctx)
	if err != nil {
		return nil, err
	}
	executor, err := graft.Dep[ports.Executor](ctx)
	if err != nil {
		return nil, err
	}
	guards, err := graft.Dep[ports.GuardEvaluator](ctx)
	if err != nil {
		return nil, err
	}
	packages, err := graft.Dep[ports.PackageManager](ctx)
	if err != nil {
		return nil, err
	}
	env, err := graft.Dep[ports.EnvironmentReader](ctx)
	if err != nil {
		return nil, err
	}
	dialer, err := graft.Dep[ports.PluginDialer](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(registry, project, executor, packages, guards, env, dialer, log), nil
}
