package networkd

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/StephenPCG/xrouter/src/internal/config"
	"github.com/StephenPCG/xrouter/src/internal/log"
)

const wgsdServiceTemplate = `# wgsd-client-{{name}}.service: generated by xrouter, do not edit

[Unit]
Description=wgsd peer discovery for {{name}}
Wants=network-online.target
After=network-online.target

[Service]
Type=oneshot
ExecStart=/usr/local/bin/wgsd-client -device={{name}} -dns={{dns}} -zone={{zone}}
`

const wgsdTimerTemplate = `# wgsd-client-{{name}}.timer: generated by xrouter, do not edit

[Unit]
Description=Periodic wgsd peer discovery for {{name}}

[Timer]
OnBootSec=30s
OnUnitActiveSec=30s

[Install]
WantedBy=timers.target
`

// Wireguard is a wireguard tunnel. networkd creates the link and assigns
// addresses; keys and peers live in a wg(8) file synced when the link is up.
type Wireguard struct {
	base
}

// ConfigFile returns the wg(8) configuration path.
func (w *Wireguard) ConfigFile(paths config.Paths) string {
	return filepath.Join(paths.WireguardRoot, w.cfg.Name+".conf")
}

func (w *Wireguard) hasWgsd() bool {
	return w.cfg.WgsdClientDNS != "" && w.cfg.WgsdClientZone != ""
}

func (w *Wireguard) Files(paths config.Paths) ([]File, error) {
	cfg := w.cfg

	netdev := &unit{}
	nd := netdev.section("NetDev")
	nd.set("Name", cfg.Name)
	nd.set("Kind", "wireguard")
	if cfg.Description != "" {
		nd.set("Description", cfg.Description)
	}
	netdev.section("WireGuard").set("ListenPort", cfg.ListenPort)

	files := []File{
		unitFile(paths.NetworkdRoot, "02-"+cfg.Name+".netdev", netdev),
		unitFile(paths.NetworkdRoot, "02-"+cfg.Name+".network", networkUnit(&cfg.InterfaceCommon, w.group(&cfg.InterfaceCommon))),
		{Path: w.ConfigFile(paths), Content: w.wgConf(), Mode: SecretMode},
	}

	if w.hasWgsd() {
		vars := map[string]interface{}{
			"name": cfg.Name,
			"dns":  cfg.WgsdClientDNS,
			"zone": cfg.WgsdClientZone,
		}
		files = append(files,
			File{Path: filepath.Join(paths.SystemdUnitRoot, "wgsd-client-"+cfg.Name+".service"), Content: render(wgsdServiceTemplate, vars), Mode: FileMode},
			File{Path: filepath.Join(paths.SystemdUnitRoot, "wgsd-client-"+cfg.Name+".timer"), Content: render(wgsdTimerTemplate, vars), Mode: FileMode},
		)
	}
	return files, nil
}

func (w *Wireguard) wgConf() string {
	cfg := w.cfg
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s.conf: generated by xrouter, do not edit\n", cfg.Name)
	sb.WriteString("[Interface]\n")
	fmt.Fprintf(&sb, "PrivateKey = %s\n", cfg.PrivateKey)
	fmt.Fprintf(&sb, "ListenPort = %s\n", cfg.ListenPort)
	for _, peer := range cfg.Peers {
		sb.WriteString("\n[Peer]\n")
		fmt.Fprintf(&sb, "# %s\n", peer.Name)
		fmt.Fprintf(&sb, "PublicKey = %s\n", peer.PublicKey)
		if len(peer.AllowedIPs) > 0 {
			fmt.Fprintf(&sb, "AllowedIPs = %s\n", strings.Join(peer.AllowedIPs, ","))
		}
		if peer.Endpoint != "" {
			fmt.Fprintf(&sb, "Endpoint = %s\n", peer.Endpoint)
		}
		if peer.PersistentKeepalive != nil {
			fmt.Fprintf(&sb, "PersistentKeepalive = %d\n", *peer.PersistentKeepalive)
		}
	}
	return sb.String()
}

// Apply installs the files and enables the wgsd timer when configured.
func (w *Wireguard) Apply(ctx context.Context, env *Env) error {
	if err := apply(env, w); err != nil {
		return err
	}
	if w.hasWgsd() {
		return env.Runner.Run(ctx, "systemctl", "enable", "wgsd-client-"+w.cfg.Name+".timer")
	}
	return nil
}

// UpHook loads keys and peers into the running link.
func (w *Wireguard) UpHook(ctx context.Context, env *Env) error {
	log.Infof("Syncing wireguard configuration of %s", w.cfg.Name)
	return env.Runner.Run(ctx, "wg", "syncconf", w.cfg.Name, w.ConfigFile(env.Paths))
}
