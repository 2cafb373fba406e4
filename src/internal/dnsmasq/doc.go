// Package dnsmasq renders the DNS and DHCP fragments of the dnsmasq
// configuration and installs them into the dnsmasq config directory.
package dnsmasq
