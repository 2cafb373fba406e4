package networking

import (
	"fmt"
	"strconv"
	"strings"
)

// Kernel reserved routing tables.
const (
	TableDefault = 253
	TableMain    = 254
	TableLocal   = 255
)

// TableStatus summarizes one routing table.
type TableStatus struct {
	Table      int
	IPv4Routes int
	IPv6Routes int
	HasDefault bool
}

// RuleInfo is one policy routing rule.
type RuleInfo struct {
	Priority int
	IPv6     bool
	From     string
	To       string
	Mark     uint32
	Invert   bool
	Table    int
}

// Status is a snapshot of policy routing state.
type Status struct {
	Tables []TableStatus
	Rules  []RuleInfo
	// MainHasDefault is true when the main table carries a default route,
	// which would compete with the policy tables.
	MainHasDefault bool
}

// TableName returns the iproute2 name of reserved tables and the number otherwise.
func TableName(table int) string {
	switch table {
	case TableDefault:
		return "default"
	case TableMain:
		return "main"
	case TableLocal:
		return "local"
	default:
		return strconv.Itoa(table)
	}
}

// String renders the rule the way "ip rule show" does.
func (r RuleInfo) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d:\t", r.Priority))
	if r.Invert {
		sb.WriteString("not ")
	}
	from := r.From
	if from == "" {
		from = "all"
	}
	sb.WriteString("from " + from)
	if r.To != "" {
		sb.WriteString(" to " + r.To)
	}
	if r.Mark != 0 {
		sb.WriteString(fmt.Sprintf(" fwmark 0x%x", r.Mark))
	}
	sb.WriteString(" lookup " + TableName(r.Table))
	return sb.String()
}

// Format renders the status for terminal output.
func (s *Status) Format() string {
	var sb strings.Builder

	sb.WriteString("Tables:\n")
	for _, table := range s.Tables {
		sb.WriteString(fmt.Sprintf("  %-8s ipv4=%d ipv6=%d", TableName(table.Table), table.IPv4Routes, table.IPv6Routes))
		if table.HasDefault {
			sb.WriteString(" default")
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Rules:\n")
	for _, rule := range s.Rules {
		family := "ipv4"
		if rule.IPv6 {
			family = "ipv6"
		}
		sb.WriteString(fmt.Sprintf("  [%s] %s\n", family, rule))
	}

	if s.MainHasDefault {
		sb.WriteString("Main table has a default route (run the route script to remove it)\n")
	} else {
		sb.WriteString("Main table has no default route\n")
	}
	return sb.String()
}
