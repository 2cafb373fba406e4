package utils

import (
	"path/filepath"
	"strings"
)

// GetAbsolutePath returns path if absolute, otherwise path joined with baseDir.
func GetAbsolutePath(path, baseDir string) string {
	if filepath.IsAbs(path) {
		return path
	}

	return filepath.Clean(filepath.Join(baseDir, path))
}

// RebasePath places an absolute path below root, so "/etc/dnsmasq.conf" under
// "/opt/xrouter/backups/files/x" becomes "/opt/xrouter/backups/files/x/etc/dnsmasq.conf".
// Relative paths are joined unchanged.
func RebasePath(root, path string) string {
	rel := strings.TrimLeft(filepath.Clean(path), string(filepath.Separator))
	return filepath.Join(root, rel)
}
