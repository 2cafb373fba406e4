package config

import (
	"fmt"
	"net/netip"
	"sort"
	"strconv"
	"strings"
)

// InterfaceType selects how an interface is rendered.
type InterfaceType string

const (
	InterfaceLo           InterfaceType = "lo"
	InterfaceVlanBridge   InterfaceType = "vlan-bridge"
	InterfacePPPoE        InterfaceType = "pppoe"
	InterfaceWireguard    InterfaceType = "wireguard"
	InterfacePodmanBridge InterfaceType = "podman-bridge"
)

// DefaultPPPoEPort is the ethernet port of a pppoe interface without ethport.
const DefaultPPPoEPort = "eth0"

// DefaultAllowedVlans is used when a bridge or port lists no VLANs.
var DefaultAllowedVlans = []string{"1-4094"}

// InterfaceCommon holds the settings shared by every interface kind and by
// the VLAN interfaces of a bridge.
type InterfaceCommon struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description,omitempty"`
	Address     string   `yaml:"address,omitempty"`
	Addresses   []string `yaml:"addresses,omitempty"`
	DHCP        bool     `yaml:"dhcp,omitempty"`
	Devgroup    string   `yaml:"devgroup,omitempty"`

	IPv6 bool `yaml:"ipv6,omitempty"`
	// IPv6SubnetID is the prefix delegation subnet id announced on this link.
	IPv6SubnetID *int `yaml:"ipv6_subnet_id,omitempty"`
}

// AllAddresses returns Address followed by Addresses.
func (c *InterfaceCommon) AllAddresses() []string {
	if c.Address == "" {
		return c.Addresses
	}
	return append([]string{c.Address}, c.Addresses...)
}

// InterfaceConfig is one entry of "interfaces". Type decides which of the
// kind specific fields are used.
type InterfaceConfig struct {
	Type            InterfaceType `yaml:"type" validate:"required,oneof=lo vlan-bridge pppoe wireguard podman-bridge"`
	InterfaceCommon `yaml:",inline"`

	// vlan-bridge
	AllowedVlans   []string          `yaml:"allowed_vlans,omitempty"`
	Ports          []*VlanBridgePort `yaml:"ports,omitempty" validate:"dive"`
	VlanInterfaces []*VlanInterface  `yaml:"vlan_interfaces,omitempty" validate:"dive"`

	// pppoe
	EthPort  string `yaml:"ethport,omitempty"`
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`
	EnablePD bool   `yaml:"enable_pd,omitempty"`

	// wireguard
	PrivateKey     string           `yaml:"private_key,omitempty"`
	ListenPort     string           `yaml:"listen_port,omitempty"`
	Peers          []*WireguardPeer `yaml:"peers,omitempty" validate:"dive"`
	WgsdClientDNS  string           `yaml:"wgsd_client_dns,omitempty"`
	WgsdClientZone string           `yaml:"wgsd_client_zone,omitempty"`

	// podman-bridge
	Ranges []*PodmanBridgeRange `yaml:"ranges,omitempty" validate:"dive"`
}

// Vlans returns AllowedVlans or the full VLAN range.
func (c *InterfaceConfig) Vlans() []string {
	if len(c.AllowedVlans) == 0 {
		return DefaultAllowedVlans
	}
	return c.AllowedVlans
}

type VlanBridgePort struct {
	Name         string   `yaml:"name" validate:"required"`
	PVID         *int     `yaml:"pvid,omitempty" validate:"omitempty,min=1,max=4094"`
	Description  string   `yaml:"description,omitempty"`
	AllowedVlans []string `yaml:"allowed_vlans,omitempty"`
}

// Vlans returns AllowedVlans or the full VLAN range.
func (p *VlanBridgePort) Vlans() []string {
	if len(p.AllowedVlans) == 0 {
		return DefaultAllowedVlans
	}
	return p.AllowedVlans
}

// VlanInterface is a VLAN sub-interface stacked on a vlan-bridge.
type VlanInterface struct {
	InterfaceCommon `yaml:",inline"`
	Vlan            int `yaml:"vlan" validate:"min=1,max=4094"`
}

type WireguardPeer struct {
	Name                string   `yaml:"name" validate:"required"`
	PublicKey           string   `yaml:"public_key" validate:"required"`
	AllowedIPs          []string `yaml:"allowed_ips,omitempty" validate:"dive,cidr"`
	Endpoint            string   `yaml:"endpoint,omitempty"`
	PersistentKeepalive *int     `yaml:"persistent_keepalive,omitempty" validate:"omitempty,min=0"`
}

// PodmanBridgeRange is one host-local IPAM range of a podman bridge.
type PodmanBridgeRange struct {
	Subnet     string `yaml:"subnet" json:"subnet" validate:"required,cidr"`
	Gateway    string `yaml:"gateway,omitempty" json:"gateway,omitempty" validate:"omitempty,ip"`
	RangeStart string `yaml:"rangeStart,omitempty" json:"rangeStart,omitempty" validate:"omitempty,ip"`
	RangeEnd   string `yaml:"rangeEnd,omitempty" json:"rangeEnd,omitempty" validate:"omitempty,ip"`
}

// DevgroupNumber returns the number of the interface's devgroup, or 0 when
// it has none or the group is unknown.
func (c *Config) DevgroupNumber(common *InterfaceCommon) int {
	if common.Devgroup == "" {
		return 0
	}
	return c.Devgroups[common.Devgroup]
}

// DevgroupNames returns the devgroup names ordered by group number.
func (c *Config) DevgroupNames() []string {
	names := make([]string, 0, len(c.Devgroups))
	for name := range c.Devgroups {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if c.Devgroups[names[i]] != c.Devgroups[names[j]] {
			return c.Devgroups[names[i]] < c.Devgroups[names[j]]
		}
		return names[i] < names[j]
	})
	return names
}

// Interface returns the interface with the given name, or nil.
func (c *Config) Interface(name string) *InterfaceConfig {
	for _, iface := range c.Interfaces {
		if iface != nil && iface.Name == name {
			return iface
		}
	}
	return nil
}

func (c *Config) validateInterfaces() ValidationErrors {
	var validationErrors ValidationErrors

	for _, name := range c.DevgroupNames() {
		if number := c.Devgroups[name]; number < 1 || number > 255 {
			validationErrors = append(validationErrors, ValidationError{
				ItemName:  "devgroup " + name,
				FieldPath: "devgroups." + name,
				Message:   "must be between 1 and 255",
			})
		}
	}

	seen := make(map[string]bool)
	checkCommon := func(common *InterfaceCommon, fieldPath string) {
		if common.Name == "" {
			validationErrors = append(validationErrors, ValidationError{
				FieldPath: fieldPath + ".name",
				Message:   "field is required",
			})
			return
		}
		// IFNAMSIZ is 16 including the terminating NUL.
		if len(common.Name) > 15 || strings.ContainsAny(common.Name, "/ \t") {
			validationErrors = append(validationErrors, ValidationError{
				ItemName:  common.Name,
				FieldPath: fieldPath + ".name",
				Message:   "must be a valid interface name",
			})
		}
		if seen[common.Name] {
			validationErrors = append(validationErrors, ValidationError{
				ItemName:  common.Name,
				FieldPath: fieldPath + ".name",
				Message:   fmt.Sprintf("duplicate interface: %s", common.Name),
			})
		}
		seen[common.Name] = true

		for i, address := range common.AllAddresses() {
			if _, err := netip.ParsePrefix(address); err != nil {
				validationErrors = append(validationErrors, ValidationError{
					ItemName:  common.Name,
					FieldPath: fmt.Sprintf("%s.addresses.%d", fieldPath, i),
					Message:   fmt.Sprintf("invalid interface address %q", address),
				})
			}
		}
		if common.Devgroup != "" {
			if _, ok := c.Devgroups[common.Devgroup]; !ok {
				validationErrors = append(validationErrors, ValidationError{
					ItemName:  common.Name,
					FieldPath: fieldPath + ".devgroup",
					Message:   fmt.Sprintf("unknown devgroup %q", common.Devgroup),
				})
			}
		}
		if common.IPv6SubnetID != nil && *common.IPv6SubnetID < 0 {
			validationErrors = append(validationErrors, ValidationError{
				ItemName:  common.Name,
				FieldPath: fieldPath + ".ipv6_subnet_id",
				Message:   "must be >= 0",
			})
		}
	}

	for i, iface := range c.Interfaces {
		fieldPath := fmt.Sprintf("interfaces.%d", i)
		if iface == nil {
			validationErrors = append(validationErrors, ValidationError{
				FieldPath: fieldPath,
				Message:   "interface cannot be empty",
			})
			continue
		}

		if err := validate.Struct(iface); err != nil {
			validationErrors = append(validationErrors, convertValidatorErrors(err, fieldPath, iface.Name)...)
		}
		checkCommon(&iface.InterfaceCommon, fieldPath)

		switch iface.Type {
		case InterfaceVlanBridge:
			for j, svi := range iface.VlanInterfaces {
				if svi != nil {
					checkCommon(&svi.InterfaceCommon, fmt.Sprintf("%s.vlan_interfaces.%d", fieldPath, j))
				}
			}
			for _, vlans := range append([][]string{iface.AllowedVlans}, portVlans(iface.Ports)...) {
				for _, vlan := range vlans {
					if !isVlanRange(vlan) {
						validationErrors = append(validationErrors, ValidationError{
							ItemName:  iface.Name,
							FieldPath: fieldPath + ".allowed_vlans",
							Message:   fmt.Sprintf("invalid VLAN or VLAN range %q", vlan),
						})
					}
				}
			}
		case InterfaceWireguard:
			if iface.PrivateKey == "" || iface.ListenPort == "" {
				validationErrors = append(validationErrors, ValidationError{
					ItemName:  iface.Name,
					FieldPath: fieldPath,
					Message:   "wireguard interface requires private_key and listen_port",
				})
			}
		}
	}

	return validationErrors
}

func portVlans(ports []*VlanBridgePort) [][]string {
	var out [][]string
	for _, port := range ports {
		if port != nil {
			out = append(out, port.AllowedVlans)
		}
	}
	return out
}

// isVlanRange accepts "10" and "10-20" within 1-4094.
func isVlanRange(s string) bool {
	parts := strings.SplitN(s, "-", 2)
	prev := 0
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 1 || n > 4094 || n < prev {
			return false
		}
		prev = n
	}
	return true
}
