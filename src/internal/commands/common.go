package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/StephenPCG/xrouter/src/internal/config"
	"github.com/StephenPCG/xrouter/src/internal/domain"
	"github.com/StephenPCG/xrouter/src/internal/log"
	"github.com/StephenPCG/xrouter/src/internal/utils"
)

type Runner interface {
	Init(args []string, globalArgs *AppContext) error
	Run() error
	Name() string
}

type AppContext struct {
	Context    context.Context
	Paths      config.Paths
	ConfigPath string
	Verbose    bool
	// NoSudo disables re-executing through sudo for privileged commands.
	NoSudo bool
	// DryRun logs external commands instead of running them.
	DryRun bool
	// Args is the full command line (without the program name), replayed
	// when re-executing through sudo.
	Args []string
	// Out receives command output. Defaults to stdout.
	Out io.Writer
	// Deps overrides the production dependencies, used in tests.
	Deps *domain.AppDependencies
}

func (ctx *AppContext) runContext() context.Context {
	if ctx.Context == nil {
		return context.Background()
	}
	return ctx.Context
}

func (ctx *AppContext) out() io.Writer {
	if ctx.Out == nil {
		return os.Stdout
	}
	return ctx.Out
}

func (ctx *AppContext) dependencies() *domain.AppDependencies {
	if ctx.Deps != nil {
		return ctx.Deps
	}
	ctx.Deps = domain.NewAppDependencies(domain.AppConfig{
		ZonesRoot:  ctx.Paths.ZonesRoot,
		BackupRoot: ctx.Paths.BackupRoot,
		DryRun:     ctx.DryRun,
	})
	return ctx.Deps
}

// ensureRoot re-executes the binary through sudo unless disabled. It returns
// only when already root, when disabled, or on failure.
func ensureRoot(ctx *AppContext) error {
	if ctx.NoSudo || ctx.DryRun {
		return nil
	}
	return utils.EnsureRoot(ctx.Args)
}

// loadAndValidateConfigOrFail loads configuration from file and validates it.
func loadAndValidateConfigOrFail(configPath string) (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := cfg.ValidateConfig(); err != nil {
		log.Errorf("Configuration is invalid:\n%v", err)
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	log.Debugf("Loaded configuration from %s", cfg.GetConfigFile())

	return cfg, nil
}
