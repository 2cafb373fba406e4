package config

// Config is the parsed xrouter.yml.
type Config struct {
	// Devgroups maps an interface group name to its number in /etc/iproute2/group.
	Devgroups map[string]int `yaml:"devgroups,omitempty"`
	// Interfaces are rendered into systemd-networkd units.
	Interfaces []*InterfaceConfig `yaml:"interfaces,omitempty"`
	// Route holds gateways, policy routing tables and rules.
	Route RouteConfig `yaml:"route"`
	// Firewall controls the generated nftables entry point.
	Firewall FirewallConfig `yaml:"firewall,omitempty"`
	// Dnsmasq holds the DNS and DHCP sections rendered into dnsmasq configs.
	Dnsmasq DnsmasqConfig `yaml:"dnsmasq"`
	// Containers are podman containers run as systemd services.
	Containers Containers `yaml:"containers,omitempty"`

	_absConfigFilePath string
}

type RouteConfig struct {
	// Gateways maps a gateway name to the next hop passed verbatim to "ip route",
	// e.g. "via 192.0.2.1" or "dev wg0".
	Gateways map[string]string `yaml:"gateways,omitempty" validate:"dive,keys,required,endkeys,required"`
	// Tables are emitted in declaration order.
	Tables Tables `yaml:"tables,omitempty" validate:"dive"`
	// Rules are appended verbatim to "ip rule add".
	Rules []string `yaml:"rules,omitempty" validate:"dive,required"`
}

// Tables is an ordered list of routing tables. In YAML it is written as a
// mapping from table number to entries.
type Tables []*TableConfig

type TableConfig struct {
	ID      int           `yaml:"id" validate:"min=1,max=4294967295"`
	Entries []EntryConfig `yaml:"entries" validate:"dive,len=2,dive,required"`
}

// EntryConfig is a [target, gateway] pair. The target is a CIDR or a zone name.
type EntryConfig []string

// Target returns the CIDR or zone name of the entry.
func (e EntryConfig) Target() string {
	if len(e) < 1 {
		return ""
	}
	return e[0]
}

// Gateway returns the gateway name of the entry.
func (e EntryConfig) Gateway() string {
	if len(e) < 2 {
		return ""
	}
	return e[1]
}

// NewEntry builds an entry from its parts.
func NewEntry(target, gateway string) EntryConfig {
	return EntryConfig{target, gateway}
}

// Table returns the table with the given id, or nil.
func (t Tables) Table(id int) *TableConfig {
	for _, table := range t {
		if table.ID == id {
			return table
		}
	}
	return nil
}

// IDs returns the table numbers in declaration order.
func (t Tables) IDs() []int {
	ids := make([]int, 0, len(t))
	for _, table := range t {
		ids = append(ids, table.ID)
	}
	return ids
}

type FirewallConfig struct {
	// Enabled makes a plain "setup" install and load the nftables ruleset.
	Enabled bool `yaml:"enabled,omitempty"`
}

type DnsmasqConfig struct {
	DNS  DNSConfig  `yaml:"dns"`
	DHCP DHCPConfig `yaml:"dhcp"`
}

type DNSConfig struct {
	// Servers are upstreams: "ip" or [domain, ip].
	Servers []ServerEntry `yaml:"servers,omitempty" validate:"dive"`
	// Locals are domains answered from local data only.
	Locals []string `yaml:"locals,omitempty" validate:"dive,domain_name"`
	// AllServers queries all upstreams in parallel (default: true).
	AllServers *bool `yaml:"all_servers,omitempty"`
	// Hosts are host records: "raw" or [name, ip].
	Hosts []RecordEntry `yaml:"hosts,omitempty" validate:"dive"`
	// CNames are cname records: "raw" or [alias, target].
	CNames []RecordEntry `yaml:"cnames,omitempty" validate:"dive"`
	// SrvHosts are raw srv-host payloads.
	SrvHosts []string `yaml:"srvhosts,omitempty" validate:"dive,required"`
}

// IsAllServers reports the effective all_servers value.
func (d DNSConfig) IsAllServers() bool {
	return d.AllServers == nil || *d.AllServers
}

// ServerEntry is a dnsmasq upstream, optionally restricted to a domain.
type ServerEntry struct {
	Domain  string `yaml:"domain,omitempty" validate:"omitempty,domain_name"`
	Address string `yaml:"address" validate:"required,dns_server"`
}

// RecordEntry is either a raw record payload or a name/value pair.
type RecordEntry struct {
	Raw   string `yaml:"raw,omitempty"`
	Name  string `yaml:"name,omitempty" validate:"omitempty,domain_name"`
	Value string `yaml:"value,omitempty"`
}

type DHCPConfig struct {
	// DNS are the IPv4 DNS servers announced to all ranges.
	DNS []string `yaml:"dns,omitempty" validate:"dive,ipv4"`
	// DNSv6 are the IPv6 DNS servers announced to all ranges.
	DNSv6 []string `yaml:"dns_v6,omitempty" validate:"dive,ipv6"`
	// Domain is the local DHCP domain.
	Domain string       `yaml:"domain,omitempty" validate:"omitempty,domain_name"`
	Ranges []*DHCPRange `yaml:"ranges,omitempty" validate:"dive"`
	Hosts  []*DHCPHost  `yaml:"hosts,omitempty" validate:"dive"`
}

type DHCPRange struct {
	Tag   string `yaml:"tag,omitempty"`
	Start string `yaml:"start" validate:"required,ipv4"`
	End   string `yaml:"end" validate:"required,ipv4"`
	// Router defaults to the first host of start's /24.
	Router string `yaml:"router,omitempty" validate:"omitempty,ipv4"`
	// Lease defaults to 24h.
	Lease string `yaml:"lease,omitempty"`
	// DNS overrides the DNS servers for this range.
	DNS []string `yaml:"dns,omitempty" validate:"dive,ip"`
}

type DHCPHost struct {
	MAC      string `yaml:"mac,omitempty" validate:"omitempty,mac"`
	Hostname string `yaml:"hostname,omitempty" validate:"omitempty,hostname"`
	IP       string `yaml:"ip" validate:"required,ipv4"`
}

// GetConfigFile returns the absolute path the configuration was loaded from.
func (c *Config) GetConfigFile() string {
	return c._absConfigFilePath
}
