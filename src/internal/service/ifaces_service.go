package service

import (
	"context"

	"github.com/StephenPCG/xrouter/src/internal/config"
	"github.com/StephenPCG/xrouter/src/internal/domain"
	"github.com/StephenPCG/xrouter/src/internal/log"
	"github.com/StephenPCG/xrouter/src/internal/networkd"
)

// IfacesService renders systemd-networkd units for the configured interfaces.
type IfacesService struct {
	env *networkd.Env
}

func NewIfacesService(deps *domain.AppDependencies, paths config.Paths, showDiff bool) *IfacesService {
	return &IfacesService{env: &networkd.Env{
		Installer: deps.Installer(),
		Runner:    deps.CommandRunner(),
		Paths:     paths,
		ShowDiff:  showDiff,
	}}
}

func (s *IfacesService) Name() string {
	return "ifaces"
}

func (s *IfacesService) Enabled(cfg *config.Config) bool {
	return len(cfg.Interfaces) > 0 || len(cfg.Devgroups) > 0
}

func (s *IfacesService) Setup(ctx context.Context, cfg *config.Config) error {
	log.Infof("[setup ifaces]")

	if err := networkd.Setup(ctx, cfg, s.env); err != nil {
		log.Errorf("Failed to set up interfaces: %v", err)
		return err
	}
	return nil
}

func (s *IfacesService) Reload(ctx context.Context, _ *config.Config) error {
	return networkd.Reload(ctx, s.env)
}

// UpHook runs the up hook of interface name.
func (s *IfacesService) UpHook(ctx context.Context, cfg *config.Config, name string) error {
	return networkd.UpHook(ctx, cfg, name, s.env)
}
