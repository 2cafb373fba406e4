package utils

import (
	"fmt"
	"os"
	"os/exec"

	"golang.org/x/sys/unix"

	"github.com/StephenPCG/xrouter/src/internal/log"
)

var (
	geteuid  = unix.Geteuid
	execFunc = unix.Exec
)

// IsRoot reports whether the process runs with effective uid 0.
func IsRoot() bool {
	return geteuid() == 0
}

// EnsureRoot replaces the current process with "sudo <self> <args...>" when not
// running as root. It only returns on failure, or immediately when already root.
func EnsureRoot(args []string) error {
	if IsRoot() {
		return nil
	}

	sudo, err := exec.LookPath("sudo")
	if err != nil {
		return fmt.Errorf("not running as root and sudo is unavailable: %w", err)
	}
	self, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to locate own executable: %w", err)
	}

	argv := SudoArgv(self, args)
	log.Debugf("Re-executing as root: %v", argv)
	if err := execFunc(sudo, argv, os.Environ()); err != nil {
		return fmt.Errorf("failed to exec sudo: %w", err)
	}
	return nil
}

// SudoArgv builds the argv used to re-run self through sudo.
func SudoArgv(self string, args []string) []string {
	argv := make([]string, 0, len(args)+2)
	argv = append(argv, "sudo", self)
	return append(argv, args...)
}
