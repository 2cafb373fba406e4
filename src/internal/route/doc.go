// Package route compiles policy routing configuration into an "ip -batch"
// shell script.
//
// The compiler takes named gateways, numbered routing tables and raw rules and
// produces a script with a fixed structure:
//
//	#!/bin/bash
//	#set -e
//	sudo ip -batch - <<EOF
//	route flush table 100
//	route replace table 100 10.0.0.0/8 via 192.0.2.1
//	rule flush
//	rule add from all lookup main pref 32766
//	rule add from all lookup local pref 32767
//	rule add from 10.1.0.0/16 table 100
//	EOF
//
//	if ip route show table main | grep -q '^default'; then
//	    sudo ip route del default table main
//	fi
//
//	echo Done!
//
// Every table is flushed and refilled, then the policy rules are flushed and
// rebuilt. A default route left in the main table (e.g. from DHCP or PPP) is
// removed so it cannot take priority over the policy tables.
//
// Table entries target either a CIDR or a zone. A target that parses as a
// network is always a CIDR, even if a zone with the same name exists. Entries
// with an unknown gateway or an unresolvable target are logged and skipped;
// the rest of the table is still emitted.
package route
