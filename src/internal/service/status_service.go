package service

import (
	"github.com/StephenPCG/xrouter/src/internal/config"
	"github.com/StephenPCG/xrouter/src/internal/domain"
	"github.com/StephenPCG/xrouter/src/internal/networking"
)

// StatusService reports the kernel state of the configured tables.
type StatusService struct {
	inspector domain.NetworkInspector
}

func NewStatusService(inspector domain.NetworkInspector) *StatusService {
	return &StatusService{inspector: inspector}
}

// Status inspects every table declared in cfg, in declaration order.
func (s *StatusService) Status(cfg *config.Config) (*networking.Status, error) {
	return s.inspector.Inspect(cfg.Route.Tables.IDs())
}
