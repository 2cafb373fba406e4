package service

import (
	"context"

	"github.com/StephenPCG/xrouter/src/internal/config"
	"github.com/StephenPCG/xrouter/src/internal/domain"
	"github.com/StephenPCG/xrouter/src/internal/firewall"
	"github.com/StephenPCG/xrouter/src/internal/log"
	"github.com/StephenPCG/xrouter/src/internal/networkd"
)

// FirewallService installs the nftables entry point and loads it.
type FirewallService struct {
	installer domain.Installer
	runner    domain.CommandRunner
	paths     config.Paths
	showDiff  bool
}

func NewFirewallService(deps *domain.AppDependencies, paths config.Paths, showDiff bool) *FirewallService {
	return &FirewallService{
		installer: deps.Installer(),
		runner:    deps.CommandRunner(),
		paths:     paths,
		showDiff:  showDiff,
	}
}

func (s *FirewallService) Name() string {
	return "firewall"
}

func (s *FirewallService) Enabled(cfg *config.Config) bool {
	return cfg.Firewall.Enabled
}

// Setup installs the devgroup names and the entry point, then loads the rules.
func (s *FirewallService) Setup(ctx context.Context, cfg *config.Config) error {
	log.Infof("[setup firewall]")

	env := &networkd.Env{Installer: s.installer, Runner: s.runner, Paths: s.paths, ShowDiff: s.showDiff}
	if err := networkd.InstallDevgroups(cfg, env); err != nil {
		return err
	}

	if _, err := firewall.Apply(cfg, s.installer, s.paths, s.showDiff); err != nil {
		log.Errorf("Failed to install firewall script: %v", err)
		return err
	}

	return s.Reload(ctx, cfg)
}

// Reload runs the installed entry point.
func (s *FirewallService) Reload(ctx context.Context, _ *config.Config) error {
	return firewall.Load(ctx, s.runner, s.paths)
}
