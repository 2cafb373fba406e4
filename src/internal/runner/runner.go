// Package runner executes external commands on behalf of xrouter.
package runner

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/alessio/shellescape"

	"github.com/StephenPCG/xrouter/src/internal/errors"
	"github.com/StephenPCG/xrouter/src/internal/log"
)

// Runner runs commands synchronously, logging the command line and its
// combined output.
type Runner struct {
	dryRun bool
}

// New creates a command runner.
func New() *Runner {
	return &Runner{}
}

// NewDryRun creates a runner that only logs what it would run.
func NewDryRun() *Runner {
	return &Runner{dryRun: true}
}

// Run executes name with args. A non-zero exit is returned as a COMMAND_ERROR
// carrying the command output.
func (r *Runner) Run(ctx context.Context, name string, args ...string) error {
	line := CommandLine(name, args...)
	log.Infof("> %s", line)
	if r.dryRun {
		return nil
	}

	cmd := exec.CommandContext(ctx, name, args...)
	output, err := cmd.CombinedOutput()
	if out := strings.TrimRight(string(output), "\n"); out != "" {
		log.Infof("%s", out)
	}
	if err != nil {
		return errors.NewCommandError(fmt.Sprintf("command failed: %s", line), err)
	}
	return nil
}

// CommandLine renders a command the way a shell user would type it.
func CommandLine(name string, args ...string) string {
	return shellescape.QuoteCommand(append([]string{name}, args...))
}
