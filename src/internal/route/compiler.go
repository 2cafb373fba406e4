package route

import (
	"fmt"

	"github.com/StephenPCG/xrouter/src/internal/config"
	"github.com/StephenPCG/xrouter/src/internal/domain"
	"github.com/StephenPCG/xrouter/src/internal/log"
)

const (
	// MainRulePref restores the kernel's default "lookup main" rule.
	MainRulePref = 32766
	// LocalRulePref follows the main rule so custom rules still win.
	LocalRulePref = 32767
)

// SkipReason tells why a table entry produced no routes.
type SkipReason int

const (
	SkipUnknownGateway SkipReason = iota + 1
	SkipInvalidTarget
)

func (r SkipReason) String() string {
	switch r {
	case SkipUnknownGateway:
		return "unknown gateway"
	case SkipInvalidTarget:
		return "invalid target"
	default:
		return "unknown"
	}
}

// Skipped is a table entry left out of the script.
type Skipped struct {
	Table   int
	Target  string
	Gateway string
	Reason  SkipReason
}

func (s Skipped) String() string {
	return fmt.Sprintf("table %d: [%s, %s]: %s", s.Table, s.Target, s.Gateway, s.Reason)
}

// Compiler turns route configuration into "ip -batch" commands.
// It only reads the zone store; nothing is written until Apply.
type Compiler struct {
	zones domain.ZoneStore
}

// NewCompiler creates a compiler resolving zone targets against zones.
func NewCompiler(zones domain.ZoneStore) *Compiler {
	return &Compiler{zones: zones}
}

// BatchLines returns the "ip -batch" input for route: every table in
// declaration order, then the rule section. Unusable entries are logged and
// returned as skipped; only a failure to read a zone is an error.
func (c *Compiler) BatchLines(route *config.RouteConfig) ([]string, []Skipped, error) {
	var lines []string
	var skipped []Skipped

	for _, table := range route.Tables {
		if table == nil {
			continue
		}
		tableLines, tableSkipped, err := c.TableLines(table, route.Gateways)
		if err != nil {
			return nil, nil, err
		}
		lines = append(lines, tableLines...)
		skipped = append(skipped, tableSkipped...)
	}

	lines = append(lines, RuleLines(route.Rules)...)
	return lines, skipped, nil
}

// TableLines flushes one table and refills it with one "route replace" per
// resolved network, keeping entry order so later entries override earlier ones.
func (c *Compiler) TableLines(table *config.TableConfig, gateways map[string]string) ([]string, []Skipped, error) {
	lines := []string{fmt.Sprintf("route flush table %d", table.ID)}
	var skipped []Skipped

	for _, entry := range table.Entries {
		targetName, gatewayName := entry.Target(), entry.Gateway()

		gateway := gateways[gatewayName]
		if gateway == "" {
			log.Errorf("Bad gateway name in table %d: %s, skipped", table.ID, gatewayName)
			skipped = append(skipped, Skipped{Table: table.ID, Target: targetName, Gateway: gatewayName, Reason: SkipUnknownGateway})
			continue
		}

		target := ResolveTarget(targetName, c.zones)
		switch target.Kind {
		case TargetCIDR:
			lines = append(lines, replaceLine(table.ID, target.Value, gateway))

		case TargetZone:
			count := 0
			err := c.zones.Entries(target.Value, func(network string) error {
				lines = append(lines, replaceLine(table.ID, network, gateway))
				count++
				return nil
			})
			if err != nil {
				return nil, nil, fmt.Errorf("table %d: zone %s: %w", table.ID, target.Value, err)
			}
			log.Debugf("Table %d: zone %s expanded to %d routes", table.ID, target.Value, count)

		default:
			log.Errorf("Bad route target in table %d: %s, skipped", table.ID, targetName)
			skipped = append(skipped, Skipped{Table: table.ID, Target: targetName, Gateway: gatewayName, Reason: SkipInvalidTarget})
		}
	}

	return lines, skipped, nil
}

// RuleLines flushes all policy rules, restores the default main and local
// lookups and appends the configured rules verbatim.
func RuleLines(rules []string) []string {
	lines := make([]string, 0, len(rules)+3)
	lines = append(lines,
		"rule flush",
		fmt.Sprintf("rule add from all lookup main pref %d", MainRulePref),
		fmt.Sprintf("rule add from all lookup local pref %d", LocalRulePref),
	)
	for _, rule := range rules {
		lines = append(lines, "rule add "+rule)
	}
	return lines
}

func replaceLine(table int, network, gateway string) string {
	return fmt.Sprintf("route replace table %d %s %s", table, network, gateway)
}
