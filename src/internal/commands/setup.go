package commands

import (
	"flag"

	"github.com/StephenPCG/xrouter/src/internal/config"
	"github.com/StephenPCG/xrouter/src/internal/log"
	"github.com/StephenPCG/xrouter/src/internal/service"
)

func CreateSetupCommand() *SetupCommand {
	gc := &SetupCommand{
		fs: flag.NewFlagSet("setup", flag.ExitOnError),
	}

	gc.fs.BoolVar(&gc.ShowDiff, "show-diff", false, "Show a diff for changed files")
	gc.fs.Func("container", "Limit the containers component to `name` (repeatable)", func(name string) error {
		gc.Containers = append(gc.Containers, name)
		return nil
	})

	return gc
}

// SetupCommand generates, installs and activates components.
type SetupCommand struct {
	fs         *flag.FlagSet
	ctx        *AppContext
	cfg        *config.Config
	components []service.Component

	ShowDiff   bool
	Containers []string
}

func (g *SetupCommand) Name() string {
	return g.fs.Name()
}

func (g *SetupCommand) Init(args []string, ctx *AppContext) error {
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

	all := service.NewComponents(ctx.dependencies(), ctx.Paths, service.Options{
		ShowDiff:   g.ShowDiff || log.IsVerbose(),
		Containers: g.Containers,
	})
	components, err := service.SelectComponents(all, g.cfg, g.fs.Args())
	if err != nil {
		return err
	}
	g.components = components
	g.ctx = ctx

	return nil
}

func (g *SetupCommand) Run() error {
	for _, component := range g.components {
		if err := component.Setup(g.ctx.runContext(), g.cfg); err != nil {
			return err
		}
	}
	return nil
}
