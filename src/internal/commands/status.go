package commands

import (
	"flag"
	"fmt"

	"github.com/StephenPCG/xrouter/src/internal/config"
	"github.com/StephenPCG/xrouter/src/internal/log"
	"github.com/StephenPCG/xrouter/src/internal/service"
)

func CreateStatusCommand() *StatusCommand {
	return &StatusCommand{
		fs: flag.NewFlagSet("status", flag.ExitOnError),
	}
}

// StatusCommand shows the kernel routing state of the configured tables.
type StatusCommand struct {
	fs  *flag.FlagSet
	ctx *AppContext
	cfg *config.Config
}

func (g *StatusCommand) Name() string {
	return g.fs.Name()
}

func (g *StatusCommand) Init(args []string, ctx *AppContext) error {
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

func (g *StatusCommand) Run() error {
	deps := g.ctx.dependencies()

	for _, warning := range service.NewValidationService(deps.ZoneStore()).Warnings(g.cfg) {
		log.Warnf("%s", warning)
	}

	status, err := service.NewStatusService(deps.NetworkInspector()).Status(g.cfg)
	if err != nil {
		return fmt.Errorf("failed to inspect routing state: %w", err)
	}

	_, err = fmt.Fprint(g.ctx.out(), status.Format())
	return err
}
