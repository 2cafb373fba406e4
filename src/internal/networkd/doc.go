// Package networkd renders network interfaces into systemd-networkd units and
// the helper files some interface kinds need (pppd peers, wg(8) configs, CNI
// network lists).
//
// Every interface kind implements Interface. Kinds are chosen by the "type"
// field of the configuration; New is the only place that switches on it.
package networkd
