// Package domain defines core interfaces for dependency injection and abstraction.
//
// This package contains the fundamental interfaces that enable loose coupling between
// components and facilitate testing through dependency injection.
package domain

import (
	"context"
	"os"

	"github.com/StephenPCG/xrouter/src/internal/networking"
)

// Installer persists generated files.
//
// Implementations compare content and permission bits exactly and leave an
// identical file untouched, so repeated installs are no-ops.
type Installer interface {
	// Install writes content to path with mode unless the file already matches.
	// It reports whether the file was written. When showDiff is set the change
	// is logged as a unified diff.
	Install(path string, content []byte, mode os.FileMode, showDiff bool) (bool, error)
}

// CommandRunner executes external commands.
type CommandRunner interface {
	// Run executes name with args and returns an error on non-zero exit.
	Run(ctx context.Context, name string, args ...string) error
}

// ZoneStore provides read-only access to zones: named lists of networks.
//
// This interface lets the route compiler run against zone files on disk or
// against an in-memory store in tests.
type ZoneStore interface {
	// Exists reports whether zone name has backing data.
	Exists(name string) bool

	// Entries calls fn for every canonical network of zone name, in order.
	// Malformed lines are skipped silently.
	Entries(name string, fn func(network string) error) error
}

// NetworkInspector reads kernel routing state without modifying it.
type NetworkInspector interface {
	// Inspect summarizes the given routing tables and the policy rules.
	Inspect(tables []int) (*networking.Status, error)
}
