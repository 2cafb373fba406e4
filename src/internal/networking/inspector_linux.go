//go:build linux

package networking

import (
	"fmt"
	"net"

	"github.com/vishvananda/netlink"
	"golang.org/x/sys/unix"

	"github.com/StephenPCG/xrouter/src/internal/log"
)

// Inspector reads routes and rules over netlink.
type Inspector struct{}

// NewInspector creates a netlink inspector.
func NewInspector() *Inspector {
	return &Inspector{}
}

// Inspect summarizes tables and lists all IPv4 and IPv6 policy rules.
func (i *Inspector) Inspect(tables []int) (*Status, error) {
	status := &Status{}

	for _, table := range tables {
		tableStatus, err := inspectTable(table)
		if err != nil {
			return nil, err
		}
		status.Tables = append(status.Tables, *tableStatus)
	}

	mainStatus, err := inspectTable(unix.RT_TABLE_MAIN)
	if err != nil {
		return nil, err
	}
	status.MainHasDefault = mainStatus.HasDefault

	for _, family := range []int{netlink.FAMILY_V4, netlink.FAMILY_V6} {
		rules, err := netlink.RuleList(family)
		if err != nil {
			log.Warnf("Failed to list IP rules: %v", err)
			return nil, fmt.Errorf("failed to list rules: %w", err)
		}
		for _, rule := range rules {
			status.Rules = append(status.Rules, toRuleInfo(rule, family == netlink.FAMILY_V6))
		}
	}

	return status, nil
}

func inspectTable(table int) (*TableStatus, error) {
	log.Debugf("Listing all routes in the routing table %d", table)
	routes, err := netlink.RouteListFiltered(netlink.FAMILY_ALL, &netlink.Route{Table: table}, netlink.RT_FILTER_TABLE)
	if err != nil {
		log.Warnf("Failed to list routes for table %d: %v", table, err)
		return nil, fmt.Errorf("failed to list routes of table %d: %w", table, err)
	}

	status := &TableStatus{Table: table}
	for _, route := range routes {
		if route.Type != unix.RTN_UNICAST && route.Type != unix.RTN_BLACKHOLE {
			continue
		}
		if isIPv6Route(route) {
			status.IPv6Routes++
		} else {
			status.IPv4Routes++
		}
		if isDefaultDst(route.Dst) {
			status.HasDefault = true
		}
	}
	return status, nil
}

func isIPv6Route(route netlink.Route) bool {
	if route.Family != 0 {
		return route.Family == netlink.FAMILY_V6
	}
	return route.Dst != nil && route.Dst.IP.To4() == nil
}

func isDefaultDst(dst *net.IPNet) bool {
	if dst == nil {
		return true
	}
	ones, _ := dst.Mask.Size()
	return ones == 0 && dst.IP.IsUnspecified()
}

func toRuleInfo(rule netlink.Rule, ipv6 bool) RuleInfo {
	info := RuleInfo{
		Priority: rule.Priority,
		IPv6:     ipv6,
		Mark:     rule.Mark,
		Invert:   rule.Invert,
		Table:    rule.Table,
	}
	if rule.Src != nil {
		info.From = rule.Src.String()
	}
	if rule.Dst != nil {
		info.To = rule.Dst.String()
	}
	return info
}
