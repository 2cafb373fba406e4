package networkd

import (
	"context"
	"errors"
	"os"
	"reflect"
	"strings"
	"testing"

	"github.com/StephenPCG/xrouter/src/internal/config"
	xerrors "github.com/StephenPCG/xrouter/src/internal/errors"
	"github.com/StephenPCG/xrouter/src/internal/mocks"
)

func intPtr(v int) *int {
	return &v
}

func newEnv() (*Env, *mocks.MockInstaller, *mocks.MockCommandRunner) {
	installer := mocks.NewMockInstaller()
	runner := mocks.NewMockCommandRunner()
	return &Env{Installer: installer, Runner: runner, Paths: config.NewPaths("/opt/xrouter")}, installer, runner
}

func files(t *testing.T, root *config.Config, cfg *config.InterfaceConfig) map[string]File {
	t.Helper()
	iface, err := New(root, cfg)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	list, err := iface.Files(config.NewPaths("/opt/xrouter"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	out := make(map[string]File, len(list))
	for _, f := range list {
		out[f.Path] = f
	}
	return out
}

func TestLo_Files(t *testing.T) {
	cfg := &config.InterfaceConfig{
		Type:            config.InterfaceLo,
		InterfaceCommon: config.InterfaceCommon{Name: "lo", Address: "10.255.0.1/32"},
	}

	got := files(t, &config.Config{}, cfg)["/etc/systemd/network/01-lo.network"]
	want := `# 01-lo.network: generated by xrouter, do not edit

[Match]
Name=lo

[Network]
Address=10.255.0.1/32
`
	if got.Content != want {
		t.Errorf("Unexpected unit:\n%s\nexpected:\n%s", got.Content, want)
	}
	if got.Mode != FileMode {
		t.Errorf("Unexpected mode %o", got.Mode)
	}
}

func TestNetworkUnit_CommonSettings(t *testing.T) {
	common := &config.InterfaceCommon{
		Name:         "lan",
		Description:  "LAN",
		Address:      "192.168.1.1/24",
		Addresses:    []string{"fd00::1/64"},
		DHCP:         true,
		IPv6:         true,
		IPv6SubnetID: intPtr(1),
	}

	got := networkUnit(common, 10).render("/etc/systemd/network/02-lan.network")
	want := `# 02-lan.network: generated by xrouter, do not edit

[Match]
Name=lan

[Link]
Group=10

[Network]
Description=LAN
DHCP=yes
Address=192.168.1.1/24
Address=fd00::1/64
IPv6SendRA=yes
DHCPPrefixDelegation=yes

[DHCPPrefixDelegation]
SubnetId=1
`
	if got != want {
		t.Errorf("Unexpected unit:\n%s\nexpected:\n%s", got, want)
	}
}

func TestVlanBridge_Files(t *testing.T) {
	root := &config.Config{Devgroups: map[string]int{"lan": 10}}
	cfg := &config.InterfaceConfig{
		Type:            config.InterfaceVlanBridge,
		InterfaceCommon: config.InterfaceCommon{Name: "br0"},
		AllowedVlans:    []string{"10", "20-30"},
		Ports:           []*config.VlanBridgePort{{Name: "eth1", PVID: intPtr(10)}},
		VlanInterfaces: []*config.VlanInterface{{
			InterfaceCommon: config.InterfaceCommon{Name: "lan", Address: "192.168.1.1/24", Devgroup: "lan"},
			Vlan:            10,
		}},
	}

	got := files(t, root, cfg)
	if len(got) != 5 {
		t.Fatalf("Expected 5 files, got %d", len(got))
	}

	tests := []struct {
		path string
		want string
	}{
		{"/etc/systemd/network/01-br0.netdev", `# 01-br0.netdev: generated by xrouter, do not edit

[NetDev]
Name=br0
Kind=bridge

[Bridge]
VLANFiltering=yes
DefaultPVID=none
`},
		{"/etc/systemd/network/01-br0.network", `# 01-br0.network: generated by xrouter, do not edit

[Match]
Name=br0

[Network]
VLAN=lan

[BridgeVLAN]
VLAN=10

[BridgeVLAN]
VLAN=20-30
`},
		{"/etc/systemd/network/02-eth1.network", `# 02-eth1.network: generated by xrouter, do not edit

[Match]
Name=eth1

[Network]
Bridge=br0

[BridgeVLAN]
PVID=10
EgressUntagged=10

[BridgeVLAN]
VLAN=1-4094
`},
		{"/etc/systemd/network/02-lan.netdev", `# 02-lan.netdev: generated by xrouter, do not edit

[NetDev]
Name=lan
Kind=vlan

[VLAN]
Id=10
`},
		{"/etc/systemd/network/02-lan.network", `# 02-lan.network: generated by xrouter, do not edit

[Match]
Name=lan

[Link]
Group=10

[Network]
Address=192.168.1.1/24
`},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got[tt.path].Content != tt.want {
				t.Errorf("Unexpected content:\n%s\nexpected:\n%s", got[tt.path].Content, tt.want)
			}
		})
	}
}

func TestPPPoE_FilesAndPreReload(t *testing.T) {
	cfg := &config.InterfaceConfig{
		Type:            config.InterfacePPPoE,
		InterfaceCommon: config.InterfaceCommon{Name: "ppp0", IPv6: true},
		Username:        "user",
		Password:        `p"ss`,
		EnablePD:        true,
	}

	got := files(t, &config.Config{}, cfg)

	peer := got["/etc/ppp/peers/ppp0"]
	if peer.Mode != SecretMode {
		t.Errorf("Expected secret mode for peer file, got %o", peer.Mode)
	}
	for _, want := range []string{"nic-eth0\n", "ifname ppp0\n", `password "p\"ss"` + "\n", "+ipv6\n"} {
		if !strings.Contains(peer.Content, want) {
			t.Errorf("Expected peer file to contain %q:\n%s", want, peer.Content)
		}
	}

	hook := got["/etc/ppp/ip-up.d/10-reconfigure-ppp0"]
	if hook.Mode != ScriptMode || !strings.Contains(hook.Content, "networkctl reconfigure ppp0\n") {
		t.Errorf("Unexpected ip-up hook %o:\n%s", hook.Mode, hook.Content)
	}

	network := got["/etc/systemd/network/02-ppp0.network"].Content
	if !strings.Contains(network, "DHCP=ipv6\nIPv6AcceptRA=yes\n") || strings.Contains(network, "IPv6SendRA") {
		t.Errorf("Unexpected network unit:\n%s", network)
	}
	if _, ok := got["/etc/systemd/system/pppd@.service"]; !ok {
		t.Error("Expected pppd@.service to be installed")
	}

	env, _, runner := newEnv()
	iface, _ := New(&config.Config{}, cfg)
	if err := iface.PreReload(context.Background(), env); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	want := [][]string{
		{"systemctl", "daemon-reload"},
		{"systemctl", "enable", "pppd@ppp0.service"},
		{"systemctl", "start", "--no-block", "pppd@ppp0.service"},
	}
	if !reflect.DeepEqual(runner.Commands, want) {
		t.Errorf("Expected %v, got %v", want, runner.Commands)
	}
}

func wireguardConfig() *config.InterfaceConfig {
	return &config.InterfaceConfig{
		Type:            config.InterfaceWireguard,
		InterfaceCommon: config.InterfaceCommon{Name: "wg0", Address: "10.8.0.1/24"},
		PrivateKey:      "cHJpdmF0ZQ==",
		ListenPort:      "51820",
		Peers: []*config.WireguardPeer{{
			Name:                "office",
			PublicKey:           "cHVibGlj",
			AllowedIPs:          []string{"10.8.0.2/32", "192.168.2.0/24"},
			Endpoint:            "vpn.example.com:51820",
			PersistentKeepalive: intPtr(25),
		}},
		WgsdClientDNS:  "10.8.0.1:5353",
		WgsdClientZone: "example.com.",
	}
}

func TestWireguard_Files(t *testing.T) {
	got := files(t, &config.Config{}, wireguardConfig())

	wgConf := got["/opt/xrouter/configs/wireguard/wg0.conf"]
	want := `# wg0.conf: generated by xrouter, do not edit
[Interface]
PrivateKey = cHJpdmF0ZQ==
ListenPort = 51820

[Peer]
# office
PublicKey = cHVibGlj
AllowedIPs = 10.8.0.2/32,192.168.2.0/24
Endpoint = vpn.example.com:51820
PersistentKeepalive = 25
`
	if wgConf.Content != want {
		t.Errorf("Unexpected wg.conf:\n%s\nexpected:\n%s", wgConf.Content, want)
	}
	if wgConf.Mode != SecretMode {
		t.Errorf("Expected secret mode, got %o", wgConf.Mode)
	}

	netdev := got["/etc/systemd/network/02-wg0.netdev"].Content
	if strings.Contains(netdev, "cHJpdmF0ZQ==") {
		t.Errorf("Private key must stay out of the world readable netdev:\n%s", netdev)
	}
	if !strings.Contains(netdev, "Kind=wireguard\n") || !strings.Contains(netdev, "ListenPort=51820\n") {
		t.Errorf("Unexpected netdev:\n%s", netdev)
	}

	service := got["/etc/systemd/system/wgsd-client-wg0.service"].Content
	if !strings.Contains(service, "-device=wg0 -dns=10.8.0.1:5353 -zone=example.com.\n") {
		t.Errorf("Unexpected wgsd service:\n%s", service)
	}
	if _, ok := got["/etc/systemd/system/wgsd-client-wg0.timer"]; !ok {
		t.Error("Expected wgsd timer")
	}
}

func TestWireguard_ApplyAndUpHook(t *testing.T) {
	env, installer, runner := newEnv()
	root := &config.Config{Interfaces: []*config.InterfaceConfig{wireguardConfig()}}

	iface, err := New(root, root.Interfaces[0])
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if err := iface.Apply(context.Background(), env); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if installer.InstallCalls != 5 {
		t.Errorf("Expected 5 installs, got %d", installer.InstallCalls)
	}

	if err := UpHook(context.Background(), root, "wg0", env); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if err := UpHook(context.Background(), root, "eth9", env); err != nil {
		t.Fatalf("Unknown interfaces must be ignored, got %v", err)
	}

	want := [][]string{
		{"systemctl", "enable", "wgsd-client-wg0.timer"},
		{"wg", "syncconf", "wg0", "/opt/xrouter/configs/wireguard/wg0.conf"},
	}
	if !reflect.DeepEqual(runner.Commands, want) {
		t.Errorf("Expected %v, got %v", want, runner.Commands)
	}
}

func TestPodmanBridge_ConfList(t *testing.T) {
	cfg := &config.InterfaceConfig{
		Type:            config.InterfacePodmanBridge,
		InterfaceCommon: config.InterfaceCommon{Name: "podman1", Address: "10.88.0.1/16"},
		Ranges:          []*config.PodmanBridgeRange{{Subnet: "10.88.0.0/16", Gateway: "10.88.0.1"}},
	}

	got := files(t, &config.Config{}, cfg)
	want := `{
  "cniVersion": "0.4.0",
  "name": "podman1",
  "plugins": [
    {
      "type": "bridge",
      "bridge": "podman1",
      "isGateway": true,
      "isDefaultGateway": true,
      "ipam": {
        "type": "host-local",
        "ranges": [
          [
            {
              "subnet": "10.88.0.0/16",
              "gateway": "10.88.0.1"
            }
          ]
        ]
      }
    }
  ]
}
`
	if c := got["/etc/cni/net.d/10-podman1.conflist"].Content; c != want {
		t.Errorf("Unexpected conflist:\n%s\nexpected:\n%s", c, want)
	}
	if _, ok := got["/etc/systemd/network/02-podman1.netdev"]; !ok {
		t.Error("Expected bridge netdev")
	}
}

func TestNew_UnknownType(t *testing.T) {
	_, err := New(&config.Config{}, &config.InterfaceConfig{Type: "bond", InterfaceCommon: config.InterfaceCommon{Name: "bond0"}})
	if !xerrors.HasCode(err, xerrors.ErrCodeConfig) {
		t.Errorf("Expected config error, got %v", err)
	}
}

func TestGroupFile(t *testing.T) {
	cfg := &config.Config{Devgroups: map[string]int{"wan": 20, "lan": 10}}
	want := "# group: generated by xrouter, do not edit\n0\tdefault\n10\tlan\n20\twan\n"
	if got := GroupFile(cfg); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestSetup_Order(t *testing.T) {
	env, installer, runner := newEnv()
	cfg := &config.Config{
		Devgroups: map[string]int{"lan": 10},
		Interfaces: []*config.InterfaceConfig{
			{Type: config.InterfaceLo, InterfaceCommon: config.InterfaceCommon{Name: "lo", Address: "10.255.0.1/32"}},
			{Type: config.InterfacePPPoE, InterfaceCommon: config.InterfaceCommon{Name: "ppp0"}},
		},
	}

	if err := Setup(context.Background(), cfg, env); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if installer.Calls[0].Path != "/etc/iproute2/group" {
		t.Errorf("Expected devgroups to be installed first, got %s", installer.Calls[0].Path)
	}
	want := [][]string{
		{"systemctl", "daemon-reload"},
		{"systemctl", "enable", "pppd@ppp0.service"},
		{"systemctl", "start", "--no-block", "pppd@ppp0.service"},
		{"networkctl", "reload"},
	}
	if !reflect.DeepEqual(runner.Commands, want) {
		t.Errorf("Expected %v, got %v", want, runner.Commands)
	}
}

func TestSetup_InstallErrorStops(t *testing.T) {
	env, installer, runner := newEnv()
	installer.InstallFunc = func(path string, _ []byte, _ os.FileMode, _ bool) (bool, error) {
		return false, errors.New("read-only file system")
	}
	cfg := &config.Config{Interfaces: []*config.InterfaceConfig{
		{Type: config.InterfaceLo, InterfaceCommon: config.InterfaceCommon{Name: "lo"}},
	}}

	if err := Setup(context.Background(), cfg, env); err == nil {
		t.Fatal("Expected install error")
	}
	if runner.RunCalls != 0 {
		t.Errorf("networkd must not be reloaded after a failed install, got %v", runner.Commands)
	}
}
