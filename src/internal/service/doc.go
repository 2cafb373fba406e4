// Package service provides business logic orchestration for xrouter.
//
// The service layer sits between commands (CLI controllers) and domain logic.
// Each managed component (interfaces, firewall, policy routing, dnsmasq,
// containers) implements Component, so
// "setup" and "reload" treat them uniformly:
//
//	deps := domain.NewAppDependencies(domain.AppConfig{...})
//	components := service.NewComponents(deps, paths, service.Options{})
//	for _, c := range components {
//	    if err := c.Setup(ctx, cfg); err != nil {
//	        log.Fatalf("%v", err)
//	    }
//	}
package service
