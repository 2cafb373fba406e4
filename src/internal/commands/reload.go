package commands

import (
	"flag"

	"github.com/StephenPCG/xrouter/src/internal/config"
	"github.com/StephenPCG/xrouter/src/internal/log"
	"github.com/StephenPCG/xrouter/src/internal/service"
)

func CreateReloadCommand() *ReloadCommand {
	gc := &ReloadCommand{
		fs: flag.NewFlagSet("reload", flag.ExitOnError),
	}

	gc.fs.Func("container", "Limit the containers component to `name` (repeatable)", func(name string) error {
		gc.Containers = append(gc.Containers, name)
		return nil
	})

	return gc
}

// ReloadCommand re-activates installed components without regenerating them.
type ReloadCommand struct {
	fs         *flag.FlagSet
	ctx        *AppContext
	cfg        *config.Config
	components []service.Component

	Containers []string
}

func (g *ReloadCommand) Name() string {
	return g.fs.Name()
}

func (g *ReloadCommand) Init(args []string, ctx *AppContext) error {
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

	all := service.NewComponents(ctx.dependencies(), ctx.Paths, service.Options{Containers: g.Containers})
	components, err := service.SelectComponents(all, g.cfg, g.fs.Args())
	if err != nil {
		return err
	}
	g.components = components
	g.ctx = ctx

	return nil
}

func (g *ReloadCommand) Run() error {
	for _, component := range g.components {
		log.Infof("[reload %s]", component.Name())
		if err := component.Reload(g.ctx.runContext(), g.cfg); err != nil {
			return err
		}
	}
	return nil
}
