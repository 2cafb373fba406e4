package service

import (
	"context"

	"github.com/StephenPCG/xrouter/src/internal/config"
	"github.com/StephenPCG/xrouter/src/internal/container"
	"github.com/StephenPCG/xrouter/src/internal/domain"
	"github.com/StephenPCG/xrouter/src/internal/log"
)

// ContainersService runs the configured podman containers as systemd services.
type ContainersService struct {
	manager *container.Manager
	names   []string
}

// NewContainersService limits itself to opts.Containers when given.
func NewContainersService(deps *domain.AppDependencies, paths config.Paths, opts Options) *ContainersService {
	return &ContainersService{
		manager: container.NewManager(deps.Installer(), deps.CommandRunner(), paths, opts.ShowDiff),
		names:   opts.Containers,
	}
}

func (s *ContainersService) Name() string {
	return "containers"
}

func (s *ContainersService) Enabled(cfg *config.Config) bool {
	return len(cfg.Containers) > 0
}

func (s *ContainersService) Setup(ctx context.Context, cfg *config.Config) error {
	log.Infof("[setup containers]")

	containers, err := container.Select(cfg.Containers, s.names)
	if err != nil {
		return err
	}
	for _, c := range containers {
		log.Debugf("Setting up container %s", c.Name)
		if err := s.manager.Setup(ctx, c); err != nil {
			log.Errorf("Failed to set up container %s: %v", c.Name, err)
			return err
		}
	}
	return nil
}

// Reload restarts the selected containers.
func (s *ContainersService) Reload(ctx context.Context, cfg *config.Config) error {
	containers, err := container.Select(cfg.Containers, s.names)
	if err != nil {
		return err
	}
	for _, c := range containers {
		if err := s.manager.Restart(ctx, c.Name); err != nil {
			return err
		}
	}
	return nil
}
