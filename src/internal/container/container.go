// Package container runs podman containers as systemd services.
package container

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alessio/shellescape"
	"github.com/valyala/fasttemplate"

	"github.com/StephenPCG/xrouter/src/internal/config"
	"github.com/StephenPCG/xrouter/src/internal/domain"
	"github.com/StephenPCG/xrouter/src/internal/errors"
	"github.com/StephenPCG/xrouter/src/internal/log"
)

// UnitMode is the permission of generated service units.
const UnitMode os.FileMode = 0644

const unitTemplate = `# {{unit}}: generated by xrouter, do not edit

[Unit]
Description=Podman container {{name}}
Wants=network-online.target
After=network-online.target
RequiresMountsFor=%t/containers

[Service]
Environment=PODMAN_SYSTEMD_UNIT=%n
Restart=on-failure
TimeoutStopSec=70
ExecStartPre=/bin/rm -f %t/%n.ctr-id
ExecStart={{exec_start}}
ExecStop=/usr/bin/podman stop --ignore -t 10 --cidfile=%t/%n.ctr-id
ExecStopPost=/usr/bin/podman rm -f --ignore -t 10 --cidfile=%t/%n.ctr-id
Type=notify
NotifyAccess=all

[Install]
WantedBy=default.target
`

// UnitName returns the systemd service running container name.
func UnitName(name string) string {
	return "container-" + name + ".service"
}

// Mounts resolves relative mount sources below dataRoot/<name>.
func Mounts(c *config.ContainerConfig, dataRoot string) []string {
	out := make([]string, 0, len(c.Mounts))
	for _, mount := range c.Mounts {
		source, target, _ := strings.Cut(mount, ":")
		if !filepath.IsAbs(source) {
			source = filepath.Join(dataRoot, c.Name, source)
		}
		out = append(out, source+":"+target)
	}
	return out
}

// ExecStart renders the podman command line. Generated arguments are quoted;
// podman_run_args and command are passed through as written.
func ExecStart(c *config.ContainerConfig, dataRoot string) string {
	args := []string{
		"/usr/bin/podman", "run",
		"--cidfile=%t/%n.ctr-id",
		"--cgroups=no-conmon",
		"--rm",
		"--sdnotify=conmon",
		"--replace",
		"--name", c.Name,
		"--network", c.NetworkName(),
	}
	if c.IPv4Address != "" {
		args = append(args, "--ip", c.IPv4Address)
	}
	for _, mount := range Mounts(c, dataRoot) {
		args = append(args, "-v", mount)
	}
	for _, env := range c.Env {
		args = append(args, "-e", env)
	}
	args = append(args, c.Image)

	parts := []string{shellescape.QuoteCommand(args)}
	parts = append(parts, c.PodmanRunArgs...)
	if c.Command != "" {
		parts = append(parts, c.Command)
	}
	return strings.Join(parts, " ")
}

// Unit renders the service unit of c.
func Unit(c *config.ContainerConfig, dataRoot string) string {
	t := fasttemplate.New(unitTemplate, "{{", "}}")
	return t.ExecuteString(map[string]interface{}{
		"unit":       UnitName(c.Name),
		"name":       c.Name,
		"exec_start": ExecStart(c, dataRoot),
	})
}

// Select returns the named containers, or all of them when names is empty.
func Select(containers config.Containers, names []string) (config.Containers, error) {
	if len(names) == 0 {
		return containers, nil
	}
	selected := make(config.Containers, 0, len(names))
	for _, name := range names {
		c := containers.Container(name)
		if c == nil {
			return nil, errors.NewConfigError(fmt.Sprintf("unknown container %q (available: %s)",
				name, strings.Join(containers.Names(), ", ")), nil)
		}
		selected = append(selected, c)
	}
	return selected, nil
}

// Manager installs and controls container services.
type Manager struct {
	installer domain.Installer
	runner    domain.CommandRunner
	paths     config.Paths
	showDiff  bool
}

func NewManager(installer domain.Installer, runner domain.CommandRunner, paths config.Paths, showDiff bool) *Manager {
	return &Manager{installer: installer, runner: runner, paths: paths, showDiff: showDiff}
}

// Setup creates mount sources, installs the unit and starts the service.
func (m *Manager) Setup(ctx context.Context, c *config.ContainerConfig) error {
	for _, mount := range Mounts(c, m.paths.ContainerDataRoot) {
		source, _, _ := strings.Cut(mount, ":")
		if _, err := os.Stat(source); os.IsNotExist(err) {
			if err := m.runner.Run(ctx, "mkdir", "-p", source); err != nil {
				return err
			}
		}
	}

	unitPath := filepath.Join(m.paths.SystemdUnitRoot, UnitName(c.Name))
	changed, err := m.installer.Install(unitPath, []byte(Unit(c, m.paths.ContainerDataRoot)), UnitMode, m.showDiff)
	if err != nil {
		return err
	}
	if changed {
		log.Infof("Container unit updated: %s", unitPath)
		if err := m.runner.Run(ctx, "systemctl", "daemon-reload"); err != nil {
			return err
		}
	}

	if err := m.runner.Run(ctx, "systemctl", "enable", UnitName(c.Name)); err != nil {
		return err
	}
	return m.runner.Run(ctx, "systemctl", "start", UnitName(c.Name))
}

// Restart restarts the service of container name.
func (m *Manager) Restart(ctx context.Context, name string) error {
	return m.runner.Run(ctx, "systemctl", "restart", UnitName(name))
}
