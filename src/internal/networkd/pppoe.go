package networkd

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/StephenPCG/xrouter/src/internal/config"
)

const pppdServiceUnit = `# pppd@.service: generated by xrouter, do not edit

[Unit]
Description=PPP link to %I
Before=network.target

[Service]
Type=notify
ExecStart=/usr/sbin/pppd up_sdnotify nolog call %I
Restart=always
RestartSec=5s

[Install]
WantedBy=multi-user.target
`

const pppPeerTemplate = `# {{name}}: generated by xrouter, do not edit
plugin pppoe.so
nic-{{ethport}}
ifname {{name}}
user "{{username}}"
password "{{password}}"
noipdefault
persist
maxfail 0
holdoff 5
lcp-echo-interval 10
lcp-echo-failure 6
{{ipv6}}`

const pppIPUpTemplate = `#!/bin/sh
# 10-reconfigure-{{name}}: generated by xrouter, do not edit
[ "$PPP_IFACE" = "{{name}}" ] || exit 0
networkctl reconfigure {{name}}
`

// PPPoE is a pppd session over an ethernet port, managed as pppd@<name>.
type PPPoE struct {
	base
}

func (p *PPPoE) Files(paths config.Paths) ([]File, error) {
	cfg := p.cfg

	ethport := cfg.EthPort
	if ethport == "" {
		ethport = config.DefaultPPPoEPort
	}

	ipv6 := ""
	if cfg.IPv6 || cfg.EnablePD {
		ipv6 = "+ipv6\n"
	}
	peer := render(pppPeerTemplate, map[string]interface{}{
		"name":     cfg.Name,
		"ethport":  ethport,
		"username": quoteOption(cfg.Username),
		"password": quoteOption(cfg.Password),
		"ipv6":     ipv6,
	})
	ipUp := render(pppIPUpTemplate, map[string]interface{}{"name": cfg.Name})

	// The uplink requests prefixes; it never announces them.
	common := cfg.InterfaceCommon
	common.IPv6 = false
	network := networkUnit(&common, p.group(&common))
	if cfg.EnablePD {
		n := network.find("Network")
		if !cfg.DHCP {
			n.set("DHCP", "ipv6")
		}
		n.set("IPv6AcceptRA", "yes")
		dhcp := network.section("DHCPv6")
		dhcp.set("WithoutRA", "solicit")
		dhcp.set("UseDelegatedPrefix", "yes")
	}

	return []File{
		{Path: filepath.Join(paths.SystemdUnitRoot, "pppd@.service"), Content: pppdServiceUnit, Mode: FileMode},
		{Path: filepath.Join(paths.PPPRoot, "peers", cfg.Name), Content: peer, Mode: SecretMode},
		{Path: filepath.Join(paths.PPPRoot, "ip-up.d", "10-reconfigure-"+cfg.Name), Content: ipUp, Mode: ScriptMode},
		unitFile(paths.NetworkdRoot, "02-"+cfg.Name+".network", network),
	}, nil
}

func (p *PPPoE) Apply(_ context.Context, env *Env) error {
	return apply(env, p)
}

// PreReload starts the pppd session so networkd finds the link.
func (p *PPPoE) PreReload(ctx context.Context, env *Env) error {
	service := "pppd@" + p.cfg.Name + ".service"
	for _, args := range [][]string{
		{"daemon-reload"},
		{"enable", service},
		{"start", "--no-block", service},
	} {
		if err := env.Runner.Run(ctx, "systemctl", args...); err != nil {
			return err
		}
	}
	return nil
}

// quoteOption escapes a value for a double quoted pppd option.
func quoteOption(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
}
