package commands

import (
	"flag"
	"fmt"

	"github.com/StephenPCG/xrouter/src/internal/config"
)

func CreatePrintConfigCommand() *PrintConfigCommand {
	return &PrintConfigCommand{
		fs: flag.NewFlagSet("print-config", flag.ExitOnError),
	}
}

// PrintConfigCommand prints the parsed configuration as YAML.
type PrintConfigCommand struct {
	fs  *flag.FlagSet
	ctx *AppContext
	cfg *config.Config
}

func (g *PrintConfigCommand) Name() string {
	return g.fs.Name()
}

func (g *PrintConfigCommand) Init(args []string, ctx *AppContext) error {
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

func (g *PrintConfigCommand) Run() error {
	buf, err := g.cfg.SerializeConfig()
	if err != nil {
		return fmt.Errorf("failed to serialize configuration: %w", err)
	}
	_, err = g.ctx.out().Write(buf.Bytes())
	return err
}
