package config

import (
	"path/filepath"
)

// DefaultRoot is the installation root of xrouter.
const DefaultRoot = "/opt/xrouter"

const (
	ConfigFileName  = "xrouter.yml"
	EnvFileName     = "xrouter.env"
	LogFileName     = "cli.log"
	RouteScriptName = "setup-route.sh"

	FirewallScriptName = "setup-firewall.nft"
	FirewallCustomName = "firewall.nft"
)

// Paths holds every directory xrouter reads from or writes to.
type Paths struct {
	Root        string
	ConfigRoot  string
	ZonesRoot   string
	DnsmasqRoot string
	LogRoot     string
	BackupRoot  string
	BinRoot     string

	// WireguardRoot holds wg(8) configuration used to resync peers.
	WireguardRoot string
	// ContainerDataRoot holds relative mount sources, one directory per container.
	ContainerDataRoot string

	// System locations outside of Root.
	NetworkdRoot    string
	SystemdUnitRoot string
	PPPRoot         string
	CNIRoot         string
	IPRoute2Group   string
}

// NewPaths lays out the standard directories below root.
func NewPaths(root string) Paths {
	if root == "" {
		root = DefaultRoot
	}
	root = filepath.Clean(root)
	configRoot := filepath.Join(root, "configs")
	return Paths{
		Root:        root,
		ConfigRoot:  configRoot,
		ZonesRoot:   filepath.Join(configRoot, "zones"),
		DnsmasqRoot: filepath.Join(configRoot, "dnsmasq"),
		LogRoot:     filepath.Join(root, "logs"),
		BackupRoot:  filepath.Join(root, "backups"),
		BinRoot:     filepath.Join(root, "bin"),

		WireguardRoot:     filepath.Join(configRoot, "wireguard"),
		ContainerDataRoot: filepath.Join(root, "containers"),

		NetworkdRoot:    "/etc/systemd/network",
		SystemdUnitRoot: "/etc/systemd/system",
		PPPRoot:         "/etc/ppp",
		CNIRoot:         "/etc/cni/net.d",
		IPRoute2Group:   "/etc/iproute2/group",
	}
}

// ConfigFile is the default xrouter.yml location.
func (p Paths) ConfigFile() string {
	return filepath.Join(p.ConfigRoot, ConfigFileName)
}

// EnvFile holds optional environment overrides for the CLI.
func (p Paths) EnvFile() string {
	return filepath.Join(p.Root, EnvFileName)
}

func (p Paths) LogFile() string {
	return filepath.Join(p.LogRoot, LogFileName)
}

// RouteScript is where the compiled policy routing script is installed.
func (p Paths) RouteScript() string {
	return filepath.Join(p.BinRoot, RouteScriptName)
}

// FirewallScript is the generated nftables entry point.
func (p Paths) FirewallScript() string {
	return filepath.Join(p.BinRoot, FirewallScriptName)
}

// FirewallCustomFile holds operator rules included by the firewall script.
func (p Paths) FirewallCustomFile() string {
	return filepath.Join(p.ConfigRoot, FirewallCustomName)
}
