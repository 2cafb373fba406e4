package networkd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/valyala/fasttemplate"

	"github.com/StephenPCG/xrouter/src/internal/config"
)

const unitHeader = "# {{file}}: generated by xrouter, do not edit\n"

// section is one [Name] block of a unit file. Keys may repeat.
type section struct {
	name  string
	lines []string
}

func (s *section) set(key string, value interface{}) {
	s.lines = append(s.lines, fmt.Sprintf("%s=%v", key, value))
}

// unit is an ordered list of sections.
type unit struct {
	sections []*section
}

func (u *unit) section(name string) *section {
	s := &section{name: name}
	u.sections = append(u.sections, s)
	return s
}

// find returns the first section with name, creating it when missing.
func (u *unit) find(name string) *section {
	for _, s := range u.sections {
		if s.name == name {
			return s
		}
	}
	return u.section(name)
}

func (u *unit) render(path string) string {
	var sb strings.Builder
	sb.WriteString(render(unitHeader, map[string]interface{}{"file": filepath.Base(path)}))
	for _, s := range u.sections {
		sb.WriteString("\n[" + s.name + "]\n")
		for _, line := range s.lines {
			sb.WriteString(line + "\n")
		}
	}
	return sb.String()
}

func render(template string, vars map[string]interface{}) string {
	return fasttemplate.New(template, "{{", "}}").ExecuteString(vars)
}

// networkUnit renders the .network file settings every interface kind shares.
func networkUnit(common *config.InterfaceCommon, group int) *unit {
	u := &unit{}
	u.section("Match").set("Name", common.Name)

	if group > 0 {
		u.section("Link").set("Group", group)
	}

	network := u.section("Network")
	if common.Description != "" {
		network.set("Description", common.Description)
	}
	if common.DHCP {
		network.set("DHCP", "yes")
	}
	for _, address := range common.AllAddresses() {
		network.set("Address", address)
	}
	if common.IPv6 {
		network.set("IPv6SendRA", "yes")
		network.set("DHCPPrefixDelegation", "yes")
		if common.IPv6SubnetID != nil {
			u.section("DHCPPrefixDelegation").set("SubnetId", *common.IPv6SubnetID)
		}
	}
	return u
}

func unitFile(root, name string, u *unit) File {
	path := filepath.Join(root, name)
	return File{Path: path, Content: u.render(path), Mode: FileMode}
}
