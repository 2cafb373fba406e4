package commands

import (
	"flag"
	"fmt"
	"strings"

	"github.com/StephenPCG/xrouter/src/internal/fetch"
)

func CreateFetchCommand() *FetchCommand {
	gc := &FetchCommand{
		fs: flag.NewFlagSet("fetch", flag.ExitOnError),
	}

	gc.fs.BoolVar(&gc.ShowDiff, "show-diff", false, "Show a diff for changed dnsmasq domain lists")

	return gc
}

// FetchCommand downloads zone files and dnsmasq domain lists.
type FetchCommand struct {
	fs      *flag.FlagSet
	ctx     *AppContext
	fetcher *fetch.Fetcher
	sources []string

	ShowDiff bool
}

func (g *FetchCommand) Name() string {
	return g.fs.Name()
}

func (g *FetchCommand) Init(args []string, ctx *AppContext) error {
	if err := g.fs.Parse(args); err != nil {
		return err
	}

	g.sources = g.fs.Args()
	if len(g.sources) == 0 {
		return fmt.Errorf("no source given, available: %s", strings.Join(fetch.SourceNames(), ", "))
	}

	if err := ensureRoot(ctx); err != nil {
		return err
	}

	deps := ctx.dependencies()
	g.fetcher = fetch.NewFetcher(deps.HTTPClient(), deps.Installer(), ctx.Paths.ZonesRoot, ctx.Paths.DnsmasqRoot)
	g.fetcher.ShowDiff = g.ShowDiff
	g.ctx = ctx

	return nil
}

func (g *FetchCommand) Run() error {
	return g.fetcher.Fetch(g.ctx.runContext(), g.sources...)
}
