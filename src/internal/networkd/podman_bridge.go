package networkd

import (
	"context"
	"encoding/json"
	"path/filepath"

	"github.com/StephenPCG/xrouter/src/internal/config"
)

// CNIVersion is written into generated network lists.
const CNIVersion = "0.4.0"

// PodmanBridge is a bridge owned by networkd and used by podman through a
// CNI bridge plugin with host-local IPAM.
type PodmanBridge struct {
	base
}

type cniIPAM struct {
	Type   string                         `json:"type"`
	Ranges [][]*config.PodmanBridgeRange `json:"ranges"`
}

type cniBridgePlugin struct {
	Type             string  `json:"type"`
	Bridge           string  `json:"bridge"`
	IsGateway        bool    `json:"isGateway"`
	IsDefaultGateway bool    `json:"isDefaultGateway"`
	IPAM             cniIPAM `json:"ipam"`
}

type cniConfList struct {
	CNIVersion string            `json:"cniVersion"`
	Name       string            `json:"name"`
	Plugins    []cniBridgePlugin `json:"plugins"`
}

// ConfList renders the CNI network list. Each range forms its own range set.
func (p *PodmanBridge) ConfList() (string, error) {
	ranges := make([][]*config.PodmanBridgeRange, 0, len(p.cfg.Ranges))
	for _, r := range p.cfg.Ranges {
		ranges = append(ranges, []*config.PodmanBridgeRange{r})
	}

	content, err := json.MarshalIndent(cniConfList{
		CNIVersion: CNIVersion,
		Name:       p.cfg.Name,
		Plugins: []cniBridgePlugin{{
			Type:             "bridge",
			Bridge:           p.cfg.Name,
			IsGateway:        true,
			IsDefaultGateway: true,
			IPAM:             cniIPAM{Type: "host-local", Ranges: ranges},
		}},
	}, "", "  ")
	if err != nil {
		return "", err
	}
	return string(content) + "\n", nil
}

func (p *PodmanBridge) Files(paths config.Paths) ([]File, error) {
	cfg := p.cfg

	confList, err := p.ConfList()
	if err != nil {
		return nil, err
	}

	netdev := &unit{}
	nd := netdev.section("NetDev")
	nd.set("Name", cfg.Name)
	nd.set("Kind", "bridge")

	return []File{
		{Path: filepath.Join(paths.CNIRoot, "10-"+cfg.Name+".conflist"), Content: confList, Mode: FileMode},
		unitFile(paths.NetworkdRoot, "02-"+cfg.Name+".netdev", netdev),
		unitFile(paths.NetworkdRoot, "02-"+cfg.Name+".network", networkUnit(&cfg.InterfaceCommon, p.group(&cfg.InterfaceCommon))),
	}, nil
}

func (p *PodmanBridge) Apply(_ context.Context, env *Env) error {
	return apply(env, p)
}
