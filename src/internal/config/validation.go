package config

import (
	"fmt"
	"net"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/miekg/dns"
)

// getValidationMessage returns a human-readable message for a validation error
func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "field is required"
	case "min":
		return fmt.Sprintf("must be >= %s", e.Param())
	case "max":
		return fmt.Sprintf("must be <= %s", e.Param())
	case "len":
		return fmt.Sprintf("must have exactly %s elements", e.Param())
	case "ip":
		return "must be a valid IP address"
	case "ipv4":
		return "must be a valid IPv4 address"
	case "ipv6":
		return "must be a valid IPv6 address"
	case "mac":
		return "must be a valid MAC address"
	case "hostname":
		return "must be a valid hostname"
	case "domain_name":
		return "must be a valid domain name"
	case "dns_server":
		return "must be a valid DNS server (ip or ip#port)"
	default:
		return fmt.Sprintf("validation failed: %s", e.Tag())
	}
}

// ValidationError represents a single validation error with context
type ValidationError struct {
	ItemName  string // The item the error belongs to (e.g., "table 100", "range 192.168.1.100")
	FieldPath string // Dot-notation field path (e.g., "route.tables.0.entries.1", "dnsmasq.dhcp.domain")
	Message   string // Human-readable error message
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("validation failed with %d error(s):\n", len(ve)))
	for i, err := range ve {
		if err.ItemName != "" {
			sb.WriteString(fmt.Sprintf("  %d. [%s] %s: %s\n", i+1, err.ItemName, err.FieldPath, err.Message))
		} else {
			sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.FieldPath, err.Message))
		}
	}
	return sb.String()
}

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Register custom validators
	if err := validate.RegisterValidation("domain_name", validateDomainName); err != nil {
		panic(err)
	}
	if err := validate.RegisterValidation("dns_server", validateDNSServerTag); err != nil {
		panic(err)
	}

	// Register function to get field name from "yaml" tag
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Custom validator: fully qualified or relative domain name
func validateDomainName(fl validator.FieldLevel) bool {
	return isDomainName(fl.Field().String())
}

func isDomainName(value string) bool {
	if value == "" || net.ParseIP(value) != nil {
		return false
	}
	_, ok := dns.IsDomainName(value)
	return ok
}

// Custom validator: dnsmasq server address (ip or ip#port)
func validateDNSServerTag(fl validator.FieldLevel) bool {
	return isDNSServer(fl.Field().String())
}

func isDNSServer(value string) bool {
	if portIndex := strings.LastIndex(value, "#"); portIndex != -1 {
		port, err := strconv.Atoi(value[portIndex+1:])
		if err != nil || port < 1 || port > 65535 {
			return false
		}
		value = value[:portIndex]
	}
	return net.ParseIP(value) != nil
}
