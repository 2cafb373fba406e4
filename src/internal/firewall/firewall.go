// Package firewall installs the nftables entry point of xrouter.
//
// The generated script flushes the ruleset, defines one variable per
// devgroup and includes the operator's rule file. The rule file is seeded
// once and never overwritten.
package firewall

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/valyala/fasttemplate"

	"github.com/StephenPCG/xrouter/src/internal/config"
	"github.com/StephenPCG/xrouter/src/internal/domain"
	"github.com/StephenPCG/xrouter/src/internal/errors"
	"github.com/StephenPCG/xrouter/src/internal/log"
)

const (
	// ScriptMode makes the entry point executable through its nft shebang.
	ScriptMode os.FileMode = 0755
	// CustomFileMode is the permission of the seeded rule file.
	CustomFileMode os.FileMode = 0644
)

const scriptTemplate = `#!/usr/sbin/nft -f
# {{file}}: generated by xrouter, do not edit

flush ruleset

{{defines}}include "{{custom}}"
`

// CustomTemplate seeds the operator rule file.
const CustomTemplate = `# firewall.nft: included by setup-firewall.nft.
# xrouter creates this file once and never changes it afterwards.
# Devgroups are available as $DEVGROUP_<NAME>.

table inet filter {
	chain input {
		type filter hook input priority filter; policy accept;
	}

	chain forward {
		type filter hook forward priority filter; policy accept;
	}

	chain output {
		type filter hook output priority filter; policy accept;
	}
}

table ip nat {
	chain postrouting {
		type nat hook postrouting priority srcnat; policy accept;
	}
}
`

// DefineName returns the nft variable holding the number of devgroup name.
func DefineName(name string) string {
	return "DEVGROUP_" + strings.ToUpper(strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		}
		return '_'
	}, name))
}

// Script renders the entry point.
func Script(cfg *config.Config, paths config.Paths) string {
	var defines strings.Builder
	for _, name := range cfg.DevgroupNames() {
		fmt.Fprintf(&defines, "define %s = %d\n", DefineName(name), cfg.Devgroups[name])
	}
	if defines.Len() > 0 {
		defines.WriteString("\n")
	}

	t := fasttemplate.New(scriptTemplate, "{{", "}}")
	return t.ExecuteString(map[string]interface{}{
		"file":    config.FirewallScriptName,
		"defines": defines.String(),
		"custom":  paths.FirewallCustomFile(),
	})
}

// Apply installs the entry point and seeds the rule file when it is missing.
// It reports whether the entry point changed.
func Apply(cfg *config.Config, installer domain.Installer, paths config.Paths, showDiff bool) (bool, error) {
	scriptPath := paths.FirewallScript()
	log.Debugf("Firewall script: %s", scriptPath)
	changed, err := installer.Install(scriptPath, []byte(Script(cfg, paths)), ScriptMode, showDiff)
	if err != nil {
		return false, err
	}
	if changed {
		log.Infof("Firewall file updated: %s", scriptPath)
	}

	customPath := paths.FirewallCustomFile()
	log.Debugf("Firewall rule file: %s", customPath)
	switch _, err := os.Stat(customPath); {
	case err == nil:
		log.Infof("Custom firewall file exists, skip updating: %s", customPath)
		return changed, nil
	case !os.IsNotExist(err):
		return changed, errors.NewIOError("failed to stat "+customPath, err)
	}

	if _, err := installer.Install(customPath, []byte(CustomTemplate), CustomFileMode, showDiff); err != nil {
		return changed, err
	}
	return changed, nil
}

// Load runs the installed entry point.
func Load(ctx context.Context, runner domain.CommandRunner, paths config.Paths) error {
	return runner.Run(ctx, paths.FirewallScript())
}
