package config

import (
	"errors"
	"fmt"
	"net"

	"github.com/go-playground/validator/v10"
)

// ValidateConfig validates the entire configuration and returns all validation errors.
// Gateway names referenced by tables are not checked here: unknown gateways
// are skipped when the routing script is compiled.
func (c *Config) ValidateConfig() error {
	var validationErrors ValidationErrors

	validationErrors = append(validationErrors, c.validateRoute()...)
	validationErrors = append(validationErrors, c.validateDnsmasq()...)

	if len(validationErrors) > 0 {
		return validationErrors
	}

	return nil
}

func (c *Config) validateRoute() ValidationErrors {
	var validationErrors ValidationErrors

	if err := validate.Struct(c.Route); err != nil {
		validationErrors = append(validationErrors, convertValidatorErrors(err, "route", "")...)
	}

	seenTables := make(map[int]bool)
	for i, table := range c.Route.Tables {
		if table == nil {
			validationErrors = append(validationErrors, ValidationError{
				FieldPath: fmt.Sprintf("route.tables.%d", i),
				Message:   "table cannot be empty",
			})
			continue
		}

		// Check duplicate table number
		if seenTables[table.ID] {
			validationErrors = append(validationErrors, ValidationError{
				ItemName:  fmt.Sprintf("table %d", table.ID),
				FieldPath: fmt.Sprintf("route.tables.%d", i),
				Message:   fmt.Sprintf("duplicate routing table: %d", table.ID),
			})
		}
		seenTables[table.ID] = true
	}

	return validationErrors
}

func (c *Config) validateDnsmasq() ValidationErrors {
	var validationErrors ValidationErrors
	dnsCfg := c.Dnsmasq.DNS
	dhcpCfg := c.Dnsmasq.DHCP

	if err := validate.Struct(dnsCfg); err != nil {
		validationErrors = append(validationErrors, convertValidatorErrors(err, "dnsmasq.dns", "")...)
	}
	if err := validate.Struct(dhcpCfg); err != nil {
		validationErrors = append(validationErrors, convertValidatorErrors(err, "dnsmasq.dhcp", "")...)
	}

	for i, host := range dnsCfg.Hosts {
		if host.Raw != "" {
			continue
		}
		if host.Name == "" || net.ParseIP(host.Value) == nil {
			validationErrors = append(validationErrors, ValidationError{
				ItemName:  host.Name,
				FieldPath: fmt.Sprintf("dnsmasq.dns.hosts.%d", i),
				Message:   "host record must be [name, ip]",
			})
		}
	}

	for i, cname := range dnsCfg.CNames {
		if cname.Raw != "" {
			continue
		}
		if cname.Name == "" || !isDomainName(cname.Value) {
			validationErrors = append(validationErrors, ValidationError{
				ItemName:  cname.Name,
				FieldPath: fmt.Sprintf("dnsmasq.dns.cnames.%d", i),
				Message:   "cname record must be [alias, target domain]",
			})
		}
	}

	for i, host := range dhcpCfg.Hosts {
		if host == nil {
			continue
		}
		// dnsmasq needs at least one of mac and hostname to match a client
		if host.MAC == "" && host.Hostname == "" {
			validationErrors = append(validationErrors, ValidationError{
				ItemName:  host.IP,
				FieldPath: fmt.Sprintf("dnsmasq.dhcp.hosts.%d", i),
				Message:   "must specify mac or hostname",
			})
		}
	}

	return validationErrors
}

// convertValidatorErrors converts go-playground/validator errors to our ValidationError format
func convertValidatorErrors(err error, fieldPrefix string, itemName string) ValidationErrors {
	var validationErrors ValidationErrors

	var validatorErrs validator.ValidationErrors
	if errors.As(err, &validatorErrs) {
		for _, e := range validatorErrs {
			fieldPath := fieldPrefix
			// Namespace starts with the struct type name; drop it and keep yaml names
			if ns := trimNamespace(e.Namespace()); ns != "" {
				if fieldPrefix != "" {
					fieldPath = fieldPrefix + "." + ns
				} else {
					fieldPath = ns
				}
			}

			validationErrors = append(validationErrors, ValidationError{
				ItemName:  itemName,
				FieldPath: fieldPath,
				Message:   getValidationMessage(e),
			})
		}
	}

	return validationErrors
}

// trimNamespace turns "RouteConfig.tables[0].entries[1]" into "tables.0.entries.1".
func trimNamespace(ns string) string {
	out := make([]byte, 0, len(ns))
	skipping := true
	for i := 0; i < len(ns); i++ {
		ch := ns[i]
		if skipping {
			if ch == '.' {
				skipping = false
			}
			continue
		}
		switch ch {
		case '[':
			out = append(out, '.')
		case ']':
		default:
			out = append(out, ch)
		}
	}
	return string(out)
}
