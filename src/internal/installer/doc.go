// Package installer writes generated files to disk only when they differ.
//
// Install compares the new content and permission bits with what is on disk
// byte for byte. When something changed it optionally logs a unified diff,
// copies the old file into a per-run backup directory and then overwrites the
// file. An unchanged file is never touched, so installing is idempotent.
//
// Backups of one process share a run id:
//
//	/opt/xrouter/backups/files/20240501-100000-000123/etc/dnsmasq.d/dns.conf
package installer
