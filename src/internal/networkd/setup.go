package networkd

import (
	"context"
	"fmt"
	"strings"

	"github.com/StephenPCG/xrouter/src/internal/config"
	"github.com/StephenPCG/xrouter/src/internal/errors"
	"github.com/StephenPCG/xrouter/src/internal/log"
)

// GroupFile renders /etc/iproute2/group for the configured devgroups.
func GroupFile(cfg *config.Config) string {
	var sb strings.Builder
	sb.WriteString("# group: generated by xrouter, do not edit\n")
	sb.WriteString("0\tdefault\n")
	for _, name := range cfg.DevgroupNames() {
		fmt.Fprintf(&sb, "%d\t%s\n", cfg.Devgroups[name], name)
	}
	return sb.String()
}

// InstallDevgroups writes the iproute2 group names. Without devgroups the
// system file is left alone.
func InstallDevgroups(cfg *config.Config, env *Env) error {
	if len(cfg.Devgroups) == 0 {
		return nil
	}
	_, err := Install(env, []File{{Path: env.Paths.IPRoute2Group, Content: GroupFile(cfg), Mode: FileMode}})
	return err
}

// Reload asks networkd to pick up changed units.
func Reload(ctx context.Context, env *Env) error {
	return env.Runner.Run(ctx, "networkctl", "reload")
}

// Setup installs every interface, then reloads networkd between the
// interfaces' pre and post reload hooks.
func Setup(ctx context.Context, cfg *config.Config, env *Env) error {
	ifaces, err := NewAll(cfg)
	if err != nil {
		return err
	}

	if err := InstallDevgroups(cfg, env); err != nil {
		return err
	}

	for _, iface := range ifaces {
		log.Debugf("Applying %s interface %s", iface.Type(), iface.Name())
		if err := iface.Apply(ctx, env); err != nil {
			log.Errorf("Failed to apply interface %s: %v", iface.Name(), err)
			return err
		}
	}
	for _, iface := range ifaces {
		if err := iface.PreReload(ctx, env); err != nil {
			return err
		}
	}
	if err := Reload(ctx, env); err != nil {
		return err
	}
	for _, iface := range ifaces {
		if err := iface.PostReload(ctx, env); err != nil {
			return err
		}
	}
	return nil
}

// UpHook runs the up hook of the named interface. Names that are not
// configured interfaces are ignored.
func UpHook(ctx context.Context, cfg *config.Config, name string, env *Env) error {
	ifaceCfg := cfg.Interface(name)
	if ifaceCfg == nil {
		log.Debugf("No configured interface named %q", name)
		return nil
	}
	iface, err := New(cfg, ifaceCfg)
	if err != nil {
		return err
	}
	if err := iface.UpHook(ctx, env); err != nil {
		return errors.NewCommandError(fmt.Sprintf("up hook of %s failed", name), err)
	}
	return nil
}
