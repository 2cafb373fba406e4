package domain

import (
	"net/http"
	"time"

	"github.com/StephenPCG/xrouter/src/internal/installer"
	"github.com/StephenPCG/xrouter/src/internal/networking"
	"github.com/StephenPCG/xrouter/src/internal/runner"
	"github.com/StephenPCG/xrouter/src/internal/zones"
)

// DefaultHTTPTimeout bounds every download made by the fetch command.
const DefaultHTTPTimeout = 60 * time.Second

// AppDependencies is a dependency injection container that holds all application dependencies.
//
// Services receive it instead of reaching for global state, so tests can swap
// any collaborator for a mock:
//
//	deps := domain.NewAppDependencies(domain.AppConfig{
//	    ZonesRoot:  paths.ZonesRoot,
//	    BackupRoot: paths.BackupRoot,
//	})
//	changed, err := deps.Installer().Install(path, content, 0644, true)
type AppDependencies struct {
	installer  Installer
	runner     CommandRunner
	zones      ZoneStore
	inspector  NetworkInspector
	httpClient *http.Client
}

// AppConfig holds configuration for creating application dependencies.
type AppConfig struct {
	// ZonesRoot is the directory holding zone files.
	ZonesRoot string

	// BackupRoot receives copies of files before they are overwritten.
	BackupRoot string

	// DryRun logs commands instead of executing them.
	DryRun bool

	// HTTPTimeout overrides DefaultHTTPTimeout when non-zero.
	HTTPTimeout time.Duration
}

// NewAppDependencies creates a new dependency container with production implementations.
func NewAppDependencies(cfg AppConfig) *AppDependencies {
	var commandRunner CommandRunner
	if cfg.DryRun {
		commandRunner = runner.NewDryRun()
	} else {
		commandRunner = runner.New()
	}

	timeout := cfg.HTTPTimeout
	if timeout == 0 {
		timeout = DefaultHTTPTimeout
	}

	return &AppDependencies{
		installer:  installer.New(cfg.BackupRoot),
		runner:     commandRunner,
		zones:      zones.NewFileStore(cfg.ZonesRoot),
		inspector:  networking.NewInspector(),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// NewTestDependencies creates a dependency container with the given implementations.
//
// Nil collaborators stay nil; tests only provide what the code under test uses.
// The HTTP client is http.DefaultClient, which works with httptest servers.
func NewTestDependencies(
	installer Installer,
	runner CommandRunner,
	zones ZoneStore,
	inspector NetworkInspector,
) *AppDependencies {
	return &AppDependencies{
		installer:  installer,
		runner:     runner,
		zones:      zones,
		inspector:  inspector,
		httpClient: http.DefaultClient,
	}
}

// Installer returns the file installer.
func (d *AppDependencies) Installer() Installer {
	return d.installer
}

// CommandRunner returns the external command runner.
func (d *AppDependencies) CommandRunner() CommandRunner {
	return d.runner
}

// ZoneStore returns the zone store used by the route compiler.
func (d *AppDependencies) ZoneStore() ZoneStore {
	return d.zones
}

// NetworkInspector returns the read-only kernel routing inspector.
func (d *AppDependencies) NetworkInspector() NetworkInspector {
	return d.inspector
}

// HTTPClient returns the client used for downloads.
func (d *AppDependencies) HTTPClient() *http.Client {
	return d.httpClient
}
