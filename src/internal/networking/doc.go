// Package networking reads the kernel's policy routing state.
//
// It is used by the status command to show what the installed routing script
// actually produced: how many routes each configured table holds, which policy
// rules are active and whether the main table still carries a default route.
// Nothing in this package modifies kernel state; routes and rules are only
// ever programmed by the generated "ip -batch" script.
package networking
