package route

import (
	"errors"
	"os"
	"reflect"
	"strings"
	"testing"

	"github.com/StephenPCG/xrouter/src/internal/config"
	"github.com/StephenPCG/xrouter/src/internal/mocks"
	"github.com/StephenPCG/xrouter/src/internal/zones"
)

const exampleScript = `#!/bin/bash
#set -e
sudo ip -batch - <<EOF
route flush table 100
route replace table 100 10.0.0.0/8 192.0.2.1
rule flush
rule add from all lookup main pref 32766
rule add from all lookup local pref 32767
rule add from 10.1.0.0/16 table 100
EOF

if ip route show table main | grep -q '^default'; then
    sudo ip route del default table main
fi

echo Done!
`

func exampleRoute() *config.RouteConfig {
	return &config.RouteConfig{
		Gateways: map[string]string{"wan": "192.0.2.1"},
		Tables: config.Tables{
			{ID: 100, Entries: []config.EntryConfig{config.NewEntry("10.0.0.0/8", "wan")}},
		},
		Rules: []string{"from 10.1.0.0/16 table 100"},
	}
}

func TestScript_Example(t *testing.T) {
	script, skipped, err := NewCompiler(zones.NewMemoryStore()).Script(exampleRoute())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(skipped) != 0 {
		t.Errorf("Expected nothing skipped, got %v", skipped)
	}
	if script != exampleScript {
		t.Errorf("Unexpected script:\n%s\nexpected:\n%s", script, exampleScript)
	}
}

func TestScript_EmptyRoute(t *testing.T) {
	script, _, err := NewCompiler(nil).Script(&config.RouteConfig{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(script, "<<EOF\nrule flush\nrule add from all lookup main pref 32766\nrule add from all lookup local pref 32767\nEOF\n") {
		t.Errorf("Expected only the rule section, got:\n%s", script)
	}
}

func TestBatchLines_MissingGatewaySkipped(t *testing.T) {
	route := exampleRoute()
	route.Tables[0].Entries = []config.EntryConfig{
		config.NewEntry("10.0.0.0/8", "wan"),
		config.NewEntry("172.16.0.0/12", "missing"),
		config.NewEntry("192.168.0.0/16", "wan"),
	}

	lines, skipped, err := NewCompiler(zones.NewMemoryStore()).BatchLines(route)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	want := []string{
		"route flush table 100",
		"route replace table 100 10.0.0.0/8 192.0.2.1",
		"route replace table 100 192.168.0.0/16 192.0.2.1",
	}
	if !reflect.DeepEqual(lines[:3], want) {
		t.Errorf("Expected %v, got %v", want, lines[:3])
	}
	for _, line := range lines {
		if strings.Contains(line, "172.16.0.0/12") {
			t.Errorf("Skipped entry was emitted: %s", line)
		}
	}

	wantSkipped := []Skipped{{Table: 100, Target: "172.16.0.0/12", Gateway: "missing", Reason: SkipUnknownGateway}}
	if !reflect.DeepEqual(skipped, wantSkipped) {
		t.Errorf("Expected %v, got %v", wantSkipped, skipped)
	}
}

func TestBatchLines_InvalidTargetSkipped(t *testing.T) {
	route := exampleRoute()
	route.Tables[0].Entries = []config.EntryConfig{
		config.NewEntry("no-such-zone", "wan"),
		config.NewEntry("no-such-zone", "missing"),
		config.NewEntry("10.0.0.0/8", "wan"),
	}

	lines, skipped, err := NewCompiler(zones.NewMemoryStore()).BatchLines(route)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if lines[1] != "route replace table 100 10.0.0.0/8 192.0.2.1" {
		t.Errorf("Expected valid entry to still be emitted, got %v", lines)
	}

	if len(skipped) != 2 {
		t.Fatalf("Expected 2 skipped entries, got %v", skipped)
	}
	if skipped[0].Reason != SkipInvalidTarget {
		t.Errorf("Expected invalid target, got %s", skipped[0].Reason)
	}
	// The gateway is checked before the target.
	if skipped[1].Reason != SkipUnknownGateway {
		t.Errorf("Expected unknown gateway, got %s", skipped[1].Reason)
	}
}

func TestBatchLines_ZoneExpansion(t *testing.T) {
	store := zones.NewMemoryStore()
	store.Set("china", "# header", "1.0.1.0/24", "garbage", "1.0.2.0/23 AS4134", "", "2400:3200::/32")

	route := &config.RouteConfig{
		Gateways: map[string]string{"wan": "via 192.0.2.1", "vpn": "dev wg0"},
		Tables: config.Tables{
			{ID: 200, Entries: []config.EntryConfig{
				config.NewEntry("china", "wan"),
				config.NewEntry("1.0.1.0/24", "vpn"),
			}},
			{ID: 100, Entries: []config.EntryConfig{
				config.NewEntry("china", "vpn"),
			}},
		},
	}

	lines, _, err := NewCompiler(store).BatchLines(route)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	want := []string{
		"route flush table 200",
		"route replace table 200 1.0.1.0/24 via 192.0.2.1",
		"route replace table 200 1.0.2.0/23 via 192.0.2.1",
		"route replace table 200 2400:3200::/32 via 192.0.2.1",
		"route replace table 200 1.0.1.0/24 dev wg0",
		"route flush table 100",
		"route replace table 100 1.0.1.0/24 dev wg0",
		"route replace table 100 1.0.2.0/23 dev wg0",
		"route replace table 100 2400:3200::/32 dev wg0",
		"rule flush",
		"rule add from all lookup main pref 32766",
		"rule add from all lookup local pref 32767",
	}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("Unexpected lines:\n%s\nexpected:\n%s", strings.Join(lines, "\n"), strings.Join(want, "\n"))
	}
}

func TestBatchLines_CIDRTakesPrecedenceOverZone(t *testing.T) {
	store := zones.NewMemoryStore()
	store.Set("10.0.0.0/8", "192.168.0.0/16")

	lines, _, err := NewCompiler(store).BatchLines(exampleRoute())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if lines[1] != "route replace table 100 10.0.0.0/8 192.0.2.1" {
		t.Errorf("Expected CIDR interpretation, got %s", lines[1])
	}
	for _, line := range lines {
		if strings.Contains(line, "192.168.0.0/16") {
			t.Errorf("Zone content must not be used: %s", line)
		}
	}
}

func TestBatchLines_CIDRIsCanonical(t *testing.T) {
	route := exampleRoute()
	route.Tables[0].Entries = []config.EntryConfig{
		config.NewEntry("10.1.2.3/8", "wan"),
		config.NewEntry("192.0.2.10", "wan"),
	}

	lines, _, err := NewCompiler(nil).BatchLines(route)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if lines[1] != "route replace table 100 10.0.0.0/8 192.0.2.1" ||
		lines[2] != "route replace table 100 192.0.2.10/32 192.0.2.1" {
		t.Errorf("Unexpected lines %v", lines)
	}
}

type failingZones struct{}

func (failingZones) Exists(string) bool { return true }

func (failingZones) Entries(string, func(string) error) error {
	return errors.New("permission denied")
}

func TestBatchLines_ZoneReadErrorIsFatal(t *testing.T) {
	route := exampleRoute()
	route.Tables[0].Entries = []config.EntryConfig{config.NewEntry("china", "wan")}

	_, _, err := NewCompiler(failingZones{}).BatchLines(route)
	if err == nil || !strings.Contains(err.Error(), "permission denied") {
		t.Errorf("Expected zone read error, got %v", err)
	}
}

func TestApply_Deterministic(t *testing.T) {
	store := zones.NewMemoryStore()
	store.Set("china", "1.0.1.0/24", "1.0.2.0/23")
	route := exampleRoute()
	route.Tables[0].Entries = append(route.Tables[0].Entries, config.NewEntry("china", "wan"))

	installer := mocks.NewMockInstaller()
	compiler := NewCompiler(store)

	first, err := compiler.Apply(route, installer, "/opt/xrouter/bin/setup-route.sh")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !first.Changed {
		t.Error("Expected first apply to install the script")
	}
	installed := string(installer.Files["/opt/xrouter/bin/setup-route.sh"])

	second, err := compiler.Apply(route, installer, "/opt/xrouter/bin/setup-route.sh")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if second.Changed {
		t.Error("Expected second apply to be a no-op")
	}

	if installer.InstallCalls != 2 {
		t.Fatalf("Expected 2 install calls, got %d", installer.InstallCalls)
	}
	if string(installer.Calls[0].Content) != string(installer.Calls[1].Content) {
		t.Error("Expected byte-identical scripts")
	}
	if installer.Calls[0].Mode != ScriptMode || installer.Calls[0].ShowDiff {
		t.Errorf("Unexpected install call %+v", installer.Calls[0])
	}
	if !strings.Contains(installed, "route replace table 100 1.0.2.0/23 192.0.2.1\n") {
		t.Errorf("Expected zone routes in script:\n%s", installed)
	}
}

func TestApply_InstallError(t *testing.T) {
	installer := mocks.NewMockInstaller()
	installer.InstallFunc = func(string, []byte, os.FileMode, bool) (bool, error) {
		return false, errors.New("read-only file system")
	}

	if _, err := NewCompiler(nil).Apply(exampleRoute(), installer, "/x"); err == nil {
		t.Error("Expected install error to propagate")
	}
}

func TestRuleLines(t *testing.T) {
	got := RuleLines([]string{"from 10.1.0.0/16 table 100", "fwmark 0x1 table 200 pref 100"})
	want := []string{
		"rule flush",
		"rule add from all lookup main pref 32766",
		"rule add from all lookup local pref 32767",
		"rule add from 10.1.0.0/16 table 100",
		"rule add fwmark 0x1 table 200 pref 100",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestSkipped_String(t *testing.T) {
	s := Skipped{Table: 100, Target: "china", Gateway: "missing", Reason: SkipUnknownGateway}
	if got := s.String(); got != "table 100: [china, missing]: unknown gateway" {
		t.Errorf("Unexpected %s", got)
	}
}
