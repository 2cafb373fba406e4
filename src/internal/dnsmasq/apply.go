package dnsmasq

import (
	"context"
	"os"
	"path/filepath"

	"github.com/StephenPCG/xrouter/src/internal/config"
	"github.com/StephenPCG/xrouter/src/internal/domain"
	"github.com/StephenPCG/xrouter/src/internal/log"
)

// FileMode is the permission of generated fragments.
const FileMode os.FileMode = 0644

// ServiceName is the systemd unit restarted after changes.
const ServiceName = "dnsmasq"

// File is one rendered fragment.
type File struct {
	Path    string
	Content string
}

// Files renders both fragments with their destination below root.
func (g *Generator) Files(root string) ([]File, error) {
	dhcpConf, err := g.DHCPConf()
	if err != nil {
		return nil, err
	}
	return []File{
		{Path: filepath.Join(root, DNSFileName), Content: g.DNSConf()},
		{Path: filepath.Join(root, DHCPFileName), Content: dhcpConf},
	}, nil
}

// Apply installs the fragments below root. It reports whether any file changed.
func Apply(cfg *config.DnsmasqConfig, installer domain.Installer, root string, showDiff bool) (bool, error) {
	files, err := NewGenerator(cfg).Files(root)
	if err != nil {
		return false, err
	}

	changed := false
	for _, file := range files {
		fileChanged, err := installer.Install(file.Path, []byte(file.Content), FileMode, showDiff)
		if err != nil {
			return changed, err
		}
		if fileChanged {
			log.Infof("dnsmasq file updated: %s", file.Path)
			changed = true
		}
	}
	return changed, nil
}

// Restart restarts the dnsmasq service.
func Restart(ctx context.Context, runner domain.CommandRunner) error {
	return runner.Run(ctx, "systemctl", "restart", ServiceName)
}
