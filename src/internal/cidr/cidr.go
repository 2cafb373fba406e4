package cidr

import (
	"fmt"
	"net/netip"
	"strings"
)

// ParsePrefix parses s as an IPv4 or IPv6 network. A bare address becomes a
// host prefix (/32 or /128). Host bits are masked off, so "10.1.2.3/8" yields
// 10.0.0.0/8.
func ParsePrefix(s string) (netip.Prefix, error) {
	if s == "" {
		return netip.Prefix{}, fmt.Errorf("empty network")
	}

	if strings.Contains(s, "/") {
		prefix, err := netip.ParsePrefix(s)
		if err != nil {
			return netip.Prefix{}, err
		}
		return prefix.Masked(), nil
	}

	addr, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Prefix{}, err
	}
	if addr.Zone() != "" {
		return netip.Prefix{}, fmt.Errorf("scoped address is not a network: %s", s)
	}
	return netip.PrefixFrom(addr, addr.BitLen()), nil
}

// Normalize returns the canonical "address/prefixlen" form of s and true, or
// "" and false when s is not a network. It never panics, so it can be used to
// check whether an arbitrary token is a CIDR.
func Normalize(s string) (string, bool) {
	prefix, err := ParsePrefix(s)
	if err != nil {
		return "", false
	}
	return prefix.String(), true
}

// IsIPv4 reports whether the canonical network string belongs to the IPv4 family.
func IsIPv4(network string) bool {
	prefix, err := ParsePrefix(network)
	return err == nil && prefix.Addr().Is4()
}
