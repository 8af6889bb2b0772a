package shell

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/rustci/internal/adapters/config"
	"go.trai.ch/rustci/internal/adapters/logger"
	"go.trai.ch/rustci/internal/core/domain"
	"go.trai.ch/rustci/internal/core/ports"
)

const (
	// NodeID is the unique identifier for the executor Graft node.
	NodeID graft.ID = "adapter.executor"
	// GuardNodeID is the unique identifier for the guard evaluator Graft node.
	GuardNodeID graft.ID = "adapter.guard"
)

func init() {
	graft.Register(graft.Node[ports.Executor]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID, config.ProjectNodeID},
		Run: func(ctx context.Context) (ports.Executor, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			project, err := graft.Dep[*domain.Project](ctx)
			if err != nil {
				return nil, err
			}
			return NewExecutor(log, Options{
				WorkDir: project.Settings.WorkDir,
				PTY:     project.Settings.PTY,
			}), nil
		},
	})

	graft.Register(graft.Node[ports.GuardEvaluator]{
		ID:        GuardNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.ProjectNodeID},
		Run: func(ctx context.Context) (ports.GuardEvaluator, error) {
			project, err := graft.Dep[*domain.Project](ctx)
			if err != nil {
				return nil, err
			}
			return NewGuardEvaluator(project.Settings.WorkDir), nil
		},
	})
}
