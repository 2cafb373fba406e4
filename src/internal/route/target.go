package route

import (
	"github.com/StephenPCG/xrouter/src/internal/cidr"
	"github.com/StephenPCG/xrouter/src/internal/domain"
)

// TargetKind classifies a table entry target.
type TargetKind int

const (
	// TargetInvalid is neither a network nor a known zone.
	TargetInvalid TargetKind = iota
	// TargetCIDR is a literal network.
	TargetCIDR
	// TargetZone names a zone in the zone store.
	TargetZone
)

func (k TargetKind) String() string {
	switch k {
	case TargetCIDR:
		return "cidr"
	case TargetZone:
		return "zone"
	default:
		return "invalid"
	}
}

// Target is a classified entry target. Value holds the canonical network for
// TargetCIDR and the zone name for TargetZone.
type Target struct {
	Kind  TargetKind
	Value string
}

// ResolveTarget classifies s: a network first, then a zone, else invalid.
// The result depends on which zones exist at call time.
func ResolveTarget(s string, zones domain.ZoneStore) Target {
	if network, ok := cidr.Normalize(s); ok {
		return Target{Kind: TargetCIDR, Value: network}
	}
	if zones != nil && zones.Exists(s) {
		return Target{Kind: TargetZone, Value: s}
	}
	return Target{Kind: TargetInvalid}
}
