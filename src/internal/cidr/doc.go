// Package cidr canonicalizes and aggregates IP networks.
//
// Normalize is tolerant: it reports failure instead of returning an error, so
// callers can use it to decide whether a token is a CIDR at all. Aggregate
// collapses a mixed IPv4/IPv6 list into the minimal covering prefixes per
// family and is used both by the zone fetcher and by tests of zone content.
package cidr
