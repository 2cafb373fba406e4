package service

import (
	"fmt"

	"github.com/StephenPCG/xrouter/src/internal/config"
	"github.com/StephenPCG/xrouter/src/internal/domain"
	"github.com/StephenPCG/xrouter/src/internal/route"
)

// ValidationService checks configuration beyond its structure.
//
// Structural problems are errors. Entries that would be skipped when the
// script is compiled (unknown gateway, target that is neither a network nor
// an existing zone) are reported as warnings so operators see them before
// running setup.
type ValidationService struct {
	zones domain.ZoneStore
}

// NewValidationService creates a validation service resolving zones against zones.
func NewValidationService(zones domain.ZoneStore) *ValidationService {
	return &ValidationService{zones: zones}
}

// ValidateConfig validates the configuration structure.
func (v *ValidationService) ValidateConfig(cfg *config.Config) error {
	return cfg.ValidateConfig()
}

// Warnings lists route entries that would be skipped.
func (v *ValidationService) Warnings(cfg *config.Config) []string {
	var warnings []string
	for _, table := range cfg.Route.Tables {
		for _, entry := range table.Entries {
			if _, ok := cfg.Route.Gateways[entry.Gateway()]; !ok {
				warnings = append(warnings, fmt.Sprintf("table %d: unknown gateway %q", table.ID, entry.Gateway()))
				continue
			}
			if route.ResolveTarget(entry.Target(), v.zones).Kind == route.TargetInvalid {
				warnings = append(warnings, fmt.Sprintf("table %d: %q is neither a network nor a zone", table.ID, entry.Target()))
			}
		}
	}
	return warnings
}
