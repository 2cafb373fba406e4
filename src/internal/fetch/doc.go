// Package fetch downloads published IP range and domain lists.
//
// Operator IP lists are installed verbatim as zone files. Provider range
// feeds (GitHub, Google, Cloudflare, Fastly) are parsed, aggregated and split
// into "<provider>-ipv4.txt" and "<provider>-ipv6.txt" zones. The
// dnsmasq-china-list files are installed into the dnsmasq directory, once per
// upstream resolver. Manual zones ("manual-<name>.txt") are never written here.
package fetch
