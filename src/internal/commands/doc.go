// Package commands implements CLI command handlers for xrouter.
//
// Each command implements the Runner interface and delegates business logic to
// the service layer:
//   - Init(): Parse arguments, escalate to root if needed and load configuration
//   - Run(): Execute command using service layer
//   - Name(): Return command name for routing
//
// # Available Commands
//
//   - setup: Generate, install and activate route and dnsmasq configuration
//   - reload: Activate already installed configuration
//   - fetch: Download zone files and dnsmasq domain lists
//   - show-route: Print the compiled routing script
//   - print-config: Print the parsed configuration
//   - status: Show kernel routing state of the configured tables
package commands
