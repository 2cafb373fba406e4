package cidr

import (
	"net/netip"

	"go4.org/netipx"
)

// Aggregate merges networks into the minimal set of prefixes covering exactly
// the same addresses, separately for IPv4 and IPv6. Overlapping, duplicate and
// adjacent prefixes collapse; two siblings that fill their parent become the
// parent. Strings that are not networks are ignored. Both outputs are sorted
// ascending by address, and empty input yields two empty (non-nil) slices.
func Aggregate(networks []string) (v4 []string, v6 []string) {
	prefixes := make([]netip.Prefix, 0, len(networks))
	for _, network := range networks {
		if prefix, err := ParsePrefix(network); err == nil {
			prefixes = append(prefixes, prefix)
		}
	}

	v4Prefixes, v6Prefixes := AggregatePrefixes(prefixes)
	return prefixStrings(v4Prefixes), prefixStrings(v6Prefixes)
}

// AggregatePrefixes is Aggregate for already parsed prefixes. IPv4-mapped IPv6
// prefixes stay in the IPv6 family.
func AggregatePrefixes(prefixes []netip.Prefix) (v4 []netip.Prefix, v6 []netip.Prefix) {
	var v4Builder, v6Builder netipx.IPSetBuilder
	for _, prefix := range prefixes {
		if !prefix.IsValid() {
			continue
		}
		prefix = prefix.Masked()
		if prefix.Addr().Is4() {
			v4Builder.AddPrefix(prefix)
		} else {
			v6Builder.AddPrefix(prefix)
		}
	}

	return buildPrefixes(&v4Builder), buildPrefixes(&v6Builder)
}

func buildPrefixes(builder *netipx.IPSetBuilder) []netip.Prefix {
	set, err := builder.IPSet()
	if err != nil || set == nil {
		// IPSetBuilder only reports errors for invalid input, which is filtered above.
		return []netip.Prefix{}
	}
	prefixes := set.Prefixes()
	if prefixes == nil {
		return []netip.Prefix{}
	}
	return prefixes
}

func prefixStrings(prefixes []netip.Prefix) []string {
	out := make([]string, 0, len(prefixes))
	for _, prefix := range prefixes {
		out = append(out, prefix.String())
	}
	return out
}
