package utils

import (
	"testing"
)

func TestGetAbsolutePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		baseDir string
		want    string
	}{
		{"Already absolute", "/test/file.txt", "/base/dir", "/test/file.txt"},
		{"Relative", "relative/file.txt", "/base/dir", "/base/dir/relative/file.txt"},
		{"Dot", "./xrouter.yml", "/opt/xrouter/configs", "/opt/xrouter/configs/xrouter.yml"},
		{"Double dot", "../file.txt", "/base/dir", "/base/file.txt"},
		{"Empty path", "", "/base/dir", "/base/dir"},
		{"Empty base", "file.txt", "", "file.txt"},
		{"Cleaning", "a//b/../c/./file.txt", "/base//dir", "/base/dir/a/c/file.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetAbsolutePath(tt.path, tt.baseDir); got != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestRebasePath(t *testing.T) {
	tests := []struct {
		name string
		root string
		path string
		want string
	}{
		{"Absolute", "/backups/files/run", "/etc/dnsmasq.d/dns.conf", "/backups/files/run/etc/dnsmasq.d/dns.conf"},
		{"Relative", "/backups/files/run", "bin/setup-route.sh", "/backups/files/run/bin/setup-route.sh"},
		{"Unclean", "/backups", "//etc//../opt/x", "/backups/opt/x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RebasePath(tt.root, tt.path); got != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
		})
	}
}
