// Package config handles configuration file parsing and validation for xrouter.
//
// The configuration is YAML (xrouter.yml); a file with a .toml extension is
// decoded as TOML into the same model. It defines:
//   - Route gateways, ordered policy routing tables and ip rules
//   - dnsmasq upstream servers, local records and DHCP ranges/hosts
//
// Validation uses go-playground/validator struct tags plus a few cross-field
// checks, and reports every problem at once as ValidationErrors.
//
// # Example Usage
//
//	cfg, err := config.LoadConfig("/opt/xrouter/configs/xrouter.yml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.ValidateConfig(); err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, table := range cfg.Route.Tables {
//	    fmt.Printf("table %d: %d entries\n", table.ID, len(table.Entries))
//	}
//
// Paths describes the directory layout below the installation root.
package config
