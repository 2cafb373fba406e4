package networkd

import (
	"context"

	"github.com/StephenPCG/xrouter/src/internal/config"
)

// Lo adds addresses to the loopback interface.
type Lo struct {
	base
}

func (l *Lo) Files(paths config.Paths) ([]File, error) {
	common := &l.cfg.InterfaceCommon
	return []File{
		unitFile(paths.NetworkdRoot, "01-lo.network", networkUnit(common, l.group(common))),
	}, nil
}

func (l *Lo) Apply(_ context.Context, env *Env) error {
	return apply(env, l)
}
