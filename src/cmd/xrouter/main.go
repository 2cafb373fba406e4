package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/peterbourgon/ff/v2"

	"github.com/StephenPCG/xrouter/src/internal/commands"
	"github.com/StephenPCG/xrouter/src/internal/config"
	"github.com/StephenPCG/xrouter/src/internal/log"
	"github.com/StephenPCG/xrouter/src/internal/utils"
)

var (
	version = "dev"
	commit  = "n/a"
	date    = "n/a"
)

// envPrefix maps --flag-name to XROUTER_FLAG_NAME.
const envPrefix = "XROUTER"

func main() {
	ctx := &commands.AppContext{Args: os.Args[1:]}

	var (
		root  string
		quiet bool
	)
	fs := flag.NewFlagSet("xrouter", flag.ExitOnError)
	fs.StringVar(&root, "root", config.DefaultRoot, "Installation root")
	fs.StringVar(&ctx.ConfigPath, "config", "", "Path to configuration file, relative to <root>/configs (default xrouter.yml)")
	fs.BoolVar(&ctx.Verbose, "verbose", false, "Enable debug logging")
	fs.BoolVar(&ctx.NoSudo, "no-sudo", false, "Do not re-run privileged commands through sudo")
	fs.BoolVar(&ctx.DryRun, "dry-run", false, "Log external commands instead of running them")
	fs.BoolVar(&quiet, "quiet", false, "Disable all logging")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "xrouter: network, firewall, policy routing and dnsmasq configuration for Linux gateways\n")
		fmt.Fprintf(os.Stderr, "Version: %s (Commit: %s, Date: %s)\n\n", version, commit, date)
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <command> [args]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Commands:\n")
		fmt.Fprintf(os.Stderr, "  setup [component]...      Generate, install and activate configuration\n")
		fmt.Fprintf(os.Stderr, "  reload [component]...     Activate installed configuration\n")
		fmt.Fprintf(os.Stderr, "  fetch <source>...         Download zone files and dnsmasq domain lists\n")
		fmt.Fprintf(os.Stderr, "  show-route                Print the compiled routing script\n")
		fmt.Fprintf(os.Stderr, "  print-config              Print the parsed configuration\n")
		fmt.Fprintf(os.Stderr, "  status                    Show kernel state of the configured tables\n")
		fmt.Fprintf(os.Stderr, "  dispatcher-routable-hook  Run from networkd-dispatcher when a link becomes routable\n")
		fmt.Fprintf(os.Stderr, "  system-startup            Re-apply routes and firewall at boot\n\n")
		fmt.Fprintf(os.Stderr, "Components: ifaces, firewall, route, dnsmasq, containers (network = ifaces firewall route).\n")
		fmt.Fprintf(os.Stderr, "Without components, every component enabled by the configuration is used.\n\n")
		fmt.Fprintf(os.Stderr, "Options (also settable as %s_<OPTION> or in <root>/%s):\n", envPrefix, config.EnvFileName)
		fs.PrintDefaults()
	}

	if err := ff.Parse(fs, os.Args[1:], ff.WithEnvVarPrefix(envPrefix)); err != nil {
		log.Fatalf("Failed to parse flags: %v", err)
	}

	// The env file lives below the root, so flags are parsed again once it is loaded.
	// Values already present in the environment win over the file.
	envFile := config.NewPaths(root).EnvFile()
	if err := godotenv.Load(envFile); err == nil {
		if err := ff.Parse(fs, os.Args[1:], ff.WithEnvVarPrefix(envPrefix)); err != nil {
			log.Fatalf("Failed to parse flags: %v", err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		log.Warnf("Failed to load %s: %v", envFile, err)
	}

	if ctx.Verbose {
		log.SetVerbose(true)
	}
	if quiet {
		log.DisableLogs()
	}

	ctx.Paths = config.NewPaths(root)
	if ctx.ConfigPath == "" {
		ctx.ConfigPath = ctx.Paths.ConfigFile()
	} else {
		ctx.ConfigPath = utils.GetAbsolutePath(ctx.ConfigPath, ctx.Paths.ConfigRoot)
	}

	if err := log.SetLogFile(ctx.Paths.LogFile()); err != nil {
		log.Debugf("File logging disabled: %v", err)
	}
	defer log.CloseLogFile()

	signalCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx.Context = signalCtx

	cmds := []commands.Runner{
		commands.CreateSetupCommand(),
		commands.CreateReloadCommand(),
		commands.CreateFetchCommand(),
		commands.CreateShowRouteCommand(),
		commands.CreatePrintConfigCommand(),
		commands.CreateStatusCommand(),
		commands.CreateRoutableHookCommand(),
		commands.CreateSystemStartupCommand(),
	}

	args := fs.Args()

	if len(args) < 1 {
		fs.Usage()
		os.Exit(1)
	}

	subcommand := args[0]
	for _, cmd := range cmds {
		if cmd.Name() == subcommand {
			if err := cmd.Init(args[1:], ctx); err != nil {
				log.Fatalf("Failed to initialize command: %v", err)
			}

			if err := cmd.Run(); err != nil {
				log.Fatalf("Failed to run command: %v", err)
			}

			return
		}
	}

	log.Fatalf("Unknown subcommand: %s", subcommand)
}
