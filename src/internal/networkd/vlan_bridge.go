package networkd

import (
	"context"

	"github.com/StephenPCG/xrouter/src/internal/config"
)

// VlanBridge is a VLAN aware bridge with member ports and VLAN interfaces.
type VlanBridge struct {
	base
}

func (v *VlanBridge) Files(paths config.Paths) ([]File, error) {
	cfg := v.cfg
	root := paths.NetworkdRoot

	netdev := &unit{}
	nd := netdev.section("NetDev")
	nd.set("Name", cfg.Name)
	nd.set("Kind", "bridge")
	bridge := netdev.section("Bridge")
	bridge.set("VLANFiltering", "yes")
	bridge.set("DefaultPVID", "none")

	network := networkUnit(&cfg.InterfaceCommon, v.group(&cfg.InterfaceCommon))
	for _, svi := range cfg.VlanInterfaces {
		network.find("Network").set("VLAN", svi.Name)
	}
	for _, vlan := range cfg.Vlans() {
		network.section("BridgeVLAN").set("VLAN", vlan)
	}

	files := []File{
		unitFile(root, "01-"+cfg.Name+".netdev", netdev),
		unitFile(root, "01-"+cfg.Name+".network", network),
	}

	for _, port := range cfg.Ports {
		u := &unit{}
		u.section("Match").set("Name", port.Name)
		pn := u.section("Network")
		if port.Description != "" {
			pn.set("Description", port.Description)
		}
		pn.set("Bridge", cfg.Name)
		if port.PVID != nil {
			pvid := u.section("BridgeVLAN")
			pvid.set("PVID", *port.PVID)
			pvid.set("EgressUntagged", *port.PVID)
		}
		for _, vlan := range port.Vlans() {
			u.section("BridgeVLAN").set("VLAN", vlan)
		}
		files = append(files, unitFile(root, "02-"+port.Name+".network", u))
	}

	for _, svi := range cfg.VlanInterfaces {
		sviNetdev := &unit{}
		sn := sviNetdev.section("NetDev")
		sn.set("Name", svi.Name)
		sn.set("Kind", "vlan")
		sviNetdev.section("VLAN").set("Id", svi.Vlan)

		files = append(files,
			unitFile(root, "02-"+svi.Name+".netdev", sviNetdev),
			unitFile(root, "02-"+svi.Name+".network", networkUnit(&svi.InterfaceCommon, v.group(&svi.InterfaceCommon))),
		)
	}

	return files, nil
}

func (v *VlanBridge) Apply(_ context.Context, env *Env) error {
	return apply(env, v)
}
