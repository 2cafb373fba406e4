package service

import (
	"context"

	"github.com/StephenPCG/xrouter/src/internal/config"
	"github.com/StephenPCG/xrouter/src/internal/domain"
	"github.com/StephenPCG/xrouter/src/internal/log"
	"github.com/StephenPCG/xrouter/src/internal/route"
)

// RouteService compiles the policy routing script and runs it.
type RouteService struct {
	compiler   *route.Compiler
	installer  domain.Installer
	runner     domain.CommandRunner
	scriptPath string
}

// NewRouteService creates a route service installing to paths.RouteScript().
func NewRouteService(deps *domain.AppDependencies, paths config.Paths) *RouteService {
	return &RouteService{
		compiler:   route.NewCompiler(deps.ZoneStore()),
		installer:  deps.Installer(),
		runner:     deps.CommandRunner(),
		scriptPath: paths.RouteScript(),
	}
}

func (s *RouteService) Name() string {
	return "route"
}

func (s *RouteService) Enabled(*config.Config) bool {
	return true
}

// Setup compiles and installs the script, then executes it.
func (s *RouteService) Setup(ctx context.Context, cfg *config.Config) error {
	log.Infof("[setup route]")

	if _, err := s.compiler.Apply(&cfg.Route, s.installer, s.scriptPath); err != nil {
		log.Errorf("Failed to install route script: %v", err)
		return err
	}

	return s.Reload(ctx, cfg)
}

// Reload executes the installed script.
func (s *RouteService) Reload(ctx context.Context, _ *config.Config) error {
	return s.runner.Run(ctx, s.scriptPath)
}

// Script returns the compiled script without installing it.
func (s *RouteService) Script(cfg *config.Config) (string, []route.Skipped, error) {
	return s.compiler.Script(&cfg.Route)
}
