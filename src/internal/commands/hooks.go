package commands

import (
	"flag"
	"os"

	"github.com/StephenPCG/xrouter/src/internal/config"
	"github.com/StephenPCG/xrouter/src/internal/log"
	"github.com/StephenPCG/xrouter/src/internal/service"
)

// dispatcherEnv lists the variables networkd-dispatcher passes to its hooks.
var dispatcherEnv = []string{"IFACE", "STATE", "ADDR", "IP_ADDRS", "IP6_ADDRS", "AdministrativeState", "OperationalState"}

func CreateRoutableHookCommand() *RoutableHookCommand {
	return &RoutableHookCommand{
		fs: flag.NewFlagSet("dispatcher-routable-hook", flag.ExitOnError),
	}
}

// RoutableHookCommand runs from the networkd-dispatcher routable hook. It
// runs the up hook of $IFACE, then re-applies routes and firewall rules.
type RoutableHookCommand struct {
	fs    *flag.FlagSet
	ctx   *AppContext
	cfg   *config.Config
	iface string
}

func (g *RoutableHookCommand) Name() string {
	return g.fs.Name()
}

func (g *RoutableHookCommand) Init(args []string, ctx *AppContext) error {
	if err := g.fs.Parse(args); err != nil {
		return err
	}

	if err := ensureRoot(ctx); err != nil {
		return err
	}

	if cfg, err := loadAndValidateConfigOrFail(ctx.ConfigPath); err != nil {
		return err
	} else {
		g.cfg = cfg
	}

	g.iface = os.Getenv("IFACE")
	g.ctx = ctx

	return nil
}

func (g *RoutableHookCommand) Run() error {
	log.Infof("Invoked by networkd-dispatcher routable hook")
	for _, name := range dispatcherEnv {
		log.Debugf("%s: %s", name, os.Getenv(name))
	}

	deps := g.ctx.dependencies()
	if g.iface != "" {
		ifaces := service.NewIfacesService(deps, g.ctx.Paths, false)
		if err := ifaces.UpHook(g.ctx.runContext(), g.cfg, g.iface); err != nil {
			return err
		}
	}

	return applyForwarding(g.ctx, g.cfg)
}

func CreateSystemStartupCommand() *SystemStartupCommand {
	return &SystemStartupCommand{
		fs: flag.NewFlagSet("system-startup", flag.ExitOnError),
	}
}

// SystemStartupCommand re-applies routes and firewall rules at boot.
type SystemStartupCommand struct {
	fs  *flag.FlagSet
	ctx *AppContext
	cfg *config.Config
}

func (g *SystemStartupCommand) Name() string {
	return g.fs.Name()
}

func (g *SystemStartupCommand) Init(args []string, ctx *AppContext) error {
	if err := g.fs.Parse(args); err != nil {
		return err
	}

	if err := ensureRoot(ctx); err != nil {
		return err
	}

	if cfg, err := loadAndValidateConfigOrFail(ctx.ConfigPath); err != nil {
		return err
	} else {
		g.cfg = cfg
	}
	g.ctx = ctx

	return nil
}

func (g *SystemStartupCommand) Run() error {
	log.Infof("Invoked by system startup")
	return applyForwarding(g.ctx, g.cfg)
}

// applyForwarding sets up the route component and, when enabled, the firewall.
func applyForwarding(ctx *AppContext, cfg *config.Config) error {
	deps := ctx.dependencies()
	components := []service.Component{
		service.NewRouteService(deps, ctx.Paths),
		service.NewFirewallService(deps, ctx.Paths, false),
	}
	for _, component := range components {
		if !component.Enabled(cfg) {
			log.Debugf("Skipping disabled component %s", component.Name())
			continue
		}
		if err := component.Setup(ctx.runContext(), cfg); err != nil {
			return err
		}
	}
	return nil
}
