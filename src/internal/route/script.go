package route

import (
	"os"
	"strings"

	"github.com/valyala/fasttemplate"

	"github.com/StephenPCG/xrouter/src/internal/config"
	"github.com/StephenPCG/xrouter/src/internal/domain"
	"github.com/StephenPCG/xrouter/src/internal/log"
)

// ScriptMode is the permission of the installed script.
const ScriptMode os.FileMode = 0755

const scriptTemplate = `#!/bin/bash
#set -e
sudo ip -batch - <<EOF
{{batch}}
EOF

if ip route show table main | grep -q '^default'; then
    sudo ip route del default table main
fi

echo Done!
`

// RenderScript wraps batch lines into the complete shell script.
func RenderScript(batchLines []string) string {
	t := fasttemplate.New(scriptTemplate, "{{", "}}")
	return t.ExecuteString(map[string]interface{}{
		"batch": strings.Join(batchLines, "\n"),
	})
}

// Script compiles route into the complete shell script text.
func (c *Compiler) Script(route *config.RouteConfig) (string, []Skipped, error) {
	lines, skipped, err := c.BatchLines(route)
	if err != nil {
		return "", nil, err
	}
	return RenderScript(lines), skipped, nil
}

// Result describes one Apply run.
type Result struct {
	// Changed is true when the script on disk was rewritten.
	Changed bool
	// Skipped lists entries left out of the script.
	Skipped []Skipped
}

// Apply compiles route and installs the script at path with mode 0755.
// Running the script is a separate step.
func (c *Compiler) Apply(route *config.RouteConfig, installer domain.Installer, path string) (*Result, error) {
	script, skipped, err := c.Script(route)
	if err != nil {
		return nil, err
	}

	changed, err := installer.Install(path, []byte(script), ScriptMode, false)
	if err != nil {
		return nil, err
	}
	if changed {
		log.Infof("Route file updated: %s", path)
	}
	if len(skipped) > 0 {
		log.Warnf("%d route entries skipped", len(skipped))
	}

	return &Result{Changed: changed, Skipped: skipped}, nil
}
