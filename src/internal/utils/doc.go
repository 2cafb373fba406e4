// Package utils provides small helpers shared across xrouter.
//
//   - Path utilities: resolve relative paths and rebase absolute ones under a
//     backup root
//   - File utilities: close with a logged warning
//   - Privileges: re-exec the binary through sudo when not root
//
// Example:
//
//	absPath := utils.GetAbsolutePath("xrouter.yml", "/opt/xrouter/configs")
//	// Returns: /opt/xrouter/configs/xrouter.yml
package utils
