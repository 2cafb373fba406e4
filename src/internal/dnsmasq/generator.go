package dnsmasq

import (
	"fmt"
	"net/netip"
	"strings"

	"github.com/miekg/dns"
	"github.com/valyala/fasttemplate"

	"github.com/StephenPCG/xrouter/src/internal/config"
)

const (
	DNSFileName  = "dns.conf"
	DHCPFileName = "dhcp.conf"

	// DefaultLease is used for ranges without an explicit lease time.
	DefaultLease = "24h"
)

const headerTemplate = "# {{file}}: generated by xrouter, do not edit\n\n"

// Generator renders dnsmasq configuration fragments.
type Generator struct {
	cfg *config.DnsmasqConfig
}

func NewGenerator(cfg *config.DnsmasqConfig) *Generator {
	if cfg == nil {
		cfg = &config.DnsmasqConfig{}
	}
	return &Generator{cfg: cfg}
}

// DNSConf renders upstream servers, local domains and static records.
func (g *Generator) DNSConf() string {
	d := g.cfg.DNS
	var lines []string

	if d.IsAllServers() {
		lines = append(lines, "all-servers")
	}
	for _, server := range d.Servers {
		if server.Domain != "" {
			lines = append(lines, fmt.Sprintf("server=/%s/%s", domainArg(server.Domain), server.Address))
		} else {
			lines = append(lines, "server="+server.Address)
		}
	}
	for _, local := range d.Locals {
		lines = append(lines, fmt.Sprintf("local=/%s/", domainArg(local)))
	}
	for _, host := range d.Hosts {
		lines = append(lines, recordLine("host-record", host))
	}
	for _, cname := range d.CNames {
		lines = append(lines, recordLine("cname", cname))
	}
	for _, srv := range d.SrvHosts {
		lines = append(lines, "srv-host="+srv)
	}

	return render(DNSFileName, lines)
}

// DHCPConf renders global DHCP options, ranges and static leases.
func (g *Generator) DHCPConf() (string, error) {
	d := g.cfg.DHCP
	var lines []string

	if len(d.DNS) > 0 {
		lines = append(lines, "dhcp-option = option:dns-server, "+strings.Join(d.DNS, ","))
	}
	if len(d.DNSv6) > 0 {
		bracketed := make([]string, 0, len(d.DNSv6))
		for _, server := range d.DNSv6 {
			bracketed = append(bracketed, "["+server+"]")
		}
		lines = append(lines, "dhcp-option = option6:dns-server, "+strings.Join(bracketed, ","))
	}
	if d.Domain != "" {
		lines = append(lines, "domain = "+domainArg(d.Domain))
	}

	for _, r := range d.Ranges {
		rangeLines, err := rangeLines(r)
		if err != nil {
			return "", err
		}
		lines = append(lines, rangeLines...)
	}

	for _, host := range d.Hosts {
		line, err := hostLine(host)
		if err != nil {
			return "", err
		}
		lines = append(lines, line)
	}

	return render(DHCPFileName, lines), nil
}

func rangeLines(r *config.DHCPRange) ([]string, error) {
	tag := ""
	if r.Tag != "" {
		tag = r.Tag + ", "
	}

	lease := r.Lease
	if lease == "" {
		lease = DefaultLease
	}

	router := r.Router
	if router == "" {
		var err error
		if router, err = DefaultRouter(r.Start); err != nil {
			return nil, err
		}
	}

	lines := []string{
		fmt.Sprintf("dhcp-range = %s%s, %s, %s", tag, r.Start, r.End, lease),
		fmt.Sprintf("dhcp-option = %soption:router, %s", tag, router),
	}
	if len(r.DNS) > 0 {
		lines = append(lines, fmt.Sprintf("dhcp-option = %soption:dns-server, %s", tag, strings.Join(r.DNS, ",")))
	}
	return lines, nil
}

// DefaultRouter returns the first host address of the /24 containing start.
func DefaultRouter(start string) (string, error) {
	addr, err := netip.ParseAddr(start)
	if err != nil || !addr.Is4() {
		return "", fmt.Errorf("invalid DHCP range start %q", start)
	}
	prefix, _ := addr.Prefix(24)
	return prefix.Addr().Next().String(), nil
}

func hostLine(h *config.DHCPHost) (string, error) {
	switch {
	case h.MAC != "" && h.Hostname != "":
		return fmt.Sprintf("dhcp-host = %s, %s, %s", h.MAC, h.IP, h.Hostname), nil
	case h.MAC != "":
		return fmt.Sprintf("dhcp-host = %s, %s", h.MAC, h.IP), nil
	case h.Hostname != "":
		return fmt.Sprintf("dhcp-host = %s, %s", h.IP, h.Hostname), nil
	default:
		return "", fmt.Errorf("DHCP host %s needs a MAC address or a hostname", h.IP)
	}
}

func recordLine(option string, record config.RecordEntry) string {
	if record.Raw != "" {
		return option + "=" + record.Raw
	}
	return fmt.Sprintf("%s=%s, %s", option, record.Name, record.Value)
}

// domainArg lowercases a domain and drops the root dot, the form dnsmasq expects.
func domainArg(domain string) string {
	return strings.TrimSuffix(dns.CanonicalName(domain), ".")
}

func render(file string, lines []string) string {
	header := fasttemplate.ExecuteString(headerTemplate, "{{", "}}", map[string]interface{}{"file": file})
	if len(lines) == 0 {
		return header
	}
	return header + strings.Join(lines, "\n") + "\n"
}
