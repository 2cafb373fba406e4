package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/StephenPCG/xrouter/src/internal/config"
	"github.com/StephenPCG/xrouter/src/internal/domain"
	xerrors "github.com/StephenPCG/xrouter/src/internal/errors"
)

// Component is a piece of host configuration managed by xrouter.
type Component interface {
	Name() string
	// Enabled reports whether cfg configures the component at all.
	Enabled(cfg *config.Config) bool
	// Setup generates and installs the component's files, then activates them.
	Setup(ctx context.Context, cfg *config.Config) error
	// Reload activates the files already installed.
	Reload(ctx context.Context, cfg *config.Config) error
}

// NetworkAlias selects every component that shapes packet forwarding.
const NetworkAlias = "network"

var networkComponents = []string{"ifaces", "firewall", "route"}

// Options tune how components install files.
type Options struct {
	// ShowDiff logs a diff for every changed file.
	ShowDiff bool
	// Containers limits the containers component to the named containers.
	Containers []string
}

// NewComponents returns all components in the order they are set up.
func NewComponents(deps *domain.AppDependencies, paths config.Paths, opts Options) []Component {
	return []Component{
		NewIfacesService(deps, paths, opts.ShowDiff),
		NewFirewallService(deps, paths, opts.ShowDiff),
		NewRouteService(deps, paths),
		NewDnsmasqService(deps, paths, opts.ShowDiff),
		NewContainersService(deps, paths, opts),
	}
}

// SelectComponents resolves names to components, preserving the order of names.
// No names selects every component enabled by cfg.
func SelectComponents(components []Component, cfg *config.Config, names []string) ([]Component, error) {
	if len(names) == 0 {
		selected := make([]Component, 0, len(components))
		for _, c := range components {
			if c.Enabled(cfg) {
				selected = append(selected, c)
			}
		}
		return selected, nil
	}

	var expanded []string
	for _, name := range names {
		if name == NetworkAlias {
			expanded = append(expanded, networkComponents...)
			continue
		}
		expanded = append(expanded, name)
	}

	selected := make([]Component, 0, len(expanded))
	for _, name := range expanded {
		var found Component
		for _, c := range components {
			if c.Name() == name {
				found = c
				break
			}
		}
		if found == nil {
			return nil, xerrors.New(xerrors.ErrCodeConfig,
				fmt.Sprintf("unknown component %q (available: %s, %s)", name,
					strings.Join(componentNames(components), ", "), NetworkAlias))
		}
		selected = append(selected, found)
	}
	return selected, nil
}

func componentNames(components []Component) []string {
	names := make([]string, 0, len(components))
	for _, c := range components {
		names = append(names, c.Name())
	}
	return names
}
