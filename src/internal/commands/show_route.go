package commands

import (
	"flag"
	"fmt"

	"github.com/StephenPCG/xrouter/src/internal/config"
	"github.com/StephenPCG/xrouter/src/internal/log"
	"github.com/StephenPCG/xrouter/src/internal/service"
)

func CreateShowRouteCommand() *ShowRouteCommand {
	return &ShowRouteCommand{
		fs: flag.NewFlagSet("show-route", flag.ExitOnError),
	}
}

// ShowRouteCommand prints the compiled routing script without installing it.
type ShowRouteCommand struct {
	fs  *flag.FlagSet
	ctx *AppContext
	cfg *config.Config
}

func (g *ShowRouteCommand) Name() string {
	return g.fs.Name()
}

func (g *ShowRouteCommand) Init(args []string, ctx *AppContext) error {
	// Keep stdout clean for the script
	log.SetForceStdErr(true)

	if err := g.fs.Parse(args); err != nil {
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

func (g *ShowRouteCommand) Run() error {
	svc := service.NewRouteService(g.ctx.dependencies(), g.ctx.Paths)
	script, _, err := svc.Script(g.cfg)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(g.ctx.out(), script)
	return err
}
