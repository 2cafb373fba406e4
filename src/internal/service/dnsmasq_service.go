package service

import (
	"context"

	"github.com/StephenPCG/xrouter/src/internal/config"
	"github.com/StephenPCG/xrouter/src/internal/dnsmasq"
	"github.com/StephenPCG/xrouter/src/internal/domain"
	"github.com/StephenPCG/xrouter/src/internal/log"
)

// DnsmasqService installs dnsmasq fragments and restarts the service.
type DnsmasqService struct {
	installer domain.Installer
	runner    domain.CommandRunner
	root      string
	showDiff  bool
}

func NewDnsmasqService(deps *domain.AppDependencies, paths config.Paths, showDiff bool) *DnsmasqService {
	return &DnsmasqService{
		installer: deps.Installer(),
		runner:    deps.CommandRunner(),
		root:      paths.DnsmasqRoot,
		showDiff:  showDiff,
	}
}

func (s *DnsmasqService) Name() string {
	return "dnsmasq"
}

func (s *DnsmasqService) Enabled(*config.Config) bool {
	return true
}

// Setup installs dns.conf and dhcp.conf and restarts dnsmasq.
// The restart happens even when nothing changed, matching "reload".
func (s *DnsmasqService) Setup(ctx context.Context, cfg *config.Config) error {
	log.Infof("[setup dnsmasq]")

	if _, err := dnsmasq.Apply(&cfg.Dnsmasq, s.installer, s.root, s.showDiff); err != nil {
		log.Errorf("Failed to install dnsmasq configuration: %v", err)
		return err
	}

	return s.Reload(ctx, cfg)
}

func (s *DnsmasqService) Reload(ctx context.Context, _ *config.Config) error {
	return dnsmasq.Restart(ctx, s.runner)
}
