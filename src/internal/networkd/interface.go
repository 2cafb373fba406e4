package networkd

import (
	"context"
	"fmt"
	"os"

	"github.com/StephenPCG/xrouter/src/internal/config"
	"github.com/StephenPCG/xrouter/src/internal/domain"
	"github.com/StephenPCG/xrouter/src/internal/errors"
	"github.com/StephenPCG/xrouter/src/internal/log"
)

const (
	// FileMode is the permission of units and other public files.
	FileMode os.FileMode = 0644
	// SecretMode is used for files holding passwords or private keys.
	SecretMode os.FileMode = 0600
	// ScriptMode is used for hook scripts.
	ScriptMode os.FileMode = 0755
)

// File is one rendered file with its destination.
type File struct {
	Path    string
	Content string
	Mode    os.FileMode
}

// Env carries what interfaces need to install files and run commands.
type Env struct {
	Installer domain.Installer
	Runner    domain.CommandRunner
	Paths     config.Paths
	ShowDiff  bool
}

// Interface is one configured network interface.
type Interface interface {
	Name() string
	Type() config.InterfaceType
	// Files renders every file the interface owns.
	Files(paths config.Paths) ([]File, error)
	// Apply installs the files and enables helper services.
	Apply(ctx context.Context, env *Env) error
	// PreReload runs before "networkctl reload".
	PreReload(ctx context.Context, env *Env) error
	// PostReload runs after "networkctl reload".
	PostReload(ctx context.Context, env *Env) error
	// UpHook runs when the link becomes routable.
	UpHook(ctx context.Context, env *Env) error
}

// New builds the interface for cfg. Devgroup numbers are resolved against root.
func New(root *config.Config, cfg *config.InterfaceConfig) (Interface, error) {
	b := base{cfg: cfg, root: root}
	switch cfg.Type {
	case config.InterfaceLo:
		return &Lo{base: b}, nil
	case config.InterfaceVlanBridge:
		return &VlanBridge{base: b}, nil
	case config.InterfacePPPoE:
		return &PPPoE{base: b}, nil
	case config.InterfaceWireguard:
		return &Wireguard{base: b}, nil
	case config.InterfacePodmanBridge:
		return &PodmanBridge{base: b}, nil
	default:
		return nil, errors.NewConfigError(fmt.Sprintf("interface %s: unknown type %q", cfg.Name, cfg.Type), nil)
	}
}

// NewAll builds every configured interface in declaration order.
func NewAll(root *config.Config) ([]Interface, error) {
	out := make([]Interface, 0, len(root.Interfaces))
	for _, cfg := range root.Interfaces {
		iface, err := New(root, cfg)
		if err != nil {
			return nil, err
		}
		out = append(out, iface)
	}
	return out, nil
}

// base carries the configuration and the no-op hooks shared by all kinds.
type base struct {
	cfg  *config.InterfaceConfig
	root *config.Config
}

func (b *base) Name() string {
	return b.cfg.Name
}

func (b *base) Type() config.InterfaceType {
	return b.cfg.Type
}

func (b *base) PreReload(context.Context, *Env) error {
	return nil
}

func (b *base) PostReload(context.Context, *Env) error {
	return nil
}

func (b *base) UpHook(context.Context, *Env) error {
	return nil
}

func (b *base) group(common *config.InterfaceCommon) int {
	return b.root.DevgroupNumber(common)
}

// Install writes files through env's installer and reports whether any changed.
func Install(env *Env, files []File) (bool, error) {
	changed := false
	for _, file := range files {
		fileChanged, err := env.Installer.Install(file.Path, []byte(file.Content), file.Mode, env.ShowDiff)
		if err != nil {
			return changed, err
		}
		if fileChanged {
			log.Infof("Interface file updated: %s", file.Path)
			changed = true
		}
	}
	return changed, nil
}

func apply(env *Env, iface Interface) error {
	files, err := iface.Files(env.Paths)
	if err != nil {
		return err
	}
	_, err = Install(env, files)
	return err
}
