package runner

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/StephenPCG/xrouter/src/internal/errors"
)

func TestCommandLine(t *testing.T) {
	tests := []struct {
		name string
		cmd  string
		args []string
		want string
	}{
		{"Plain", "systemctl", []string{"restart", "dnsmasq"}, "systemctl restart dnsmasq"},
		{"Path", "/opt/xrouter/bin/setup-route.sh", nil, "/opt/xrouter/bin/setup-route.sh"},
		{"Space", "echo", []string{"hello world"}, "echo 'hello world'"},
		{"Quote", "echo", []string{"it's"}, `echo 'it'"'"'s'`},
		{"Empty", "echo", []string{""}, "echo ''"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CommandLine(tt.cmd, tt.args...); got != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
		})
	}
}

func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "script.sh")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0755); err != nil {
		t.Fatalf("Failed to write script: %v", err)
	}
	return path
}

func TestRun_Success(t *testing.T) {
	script := writeScript(t, "echo Done!\n")

	if err := New().Run(context.Background(), script); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
}

func TestRun_NonZeroExit(t *testing.T) {
	script := writeScript(t, "echo failing >&2\nexit 3\n")

	err := New().Run(context.Background(), script)
	if err == nil {
		t.Fatal("Expected error for non-zero exit")
	}
	if !errors.HasCode(err, errors.ErrCodeCommand) {
		t.Errorf("Expected command error, got %v", err)
	}
}

func TestRun_MissingBinary(t *testing.T) {
	err := New().Run(context.Background(), filepath.Join(t.TempDir(), "missing"))
	if !errors.HasCode(err, errors.ErrCodeCommand) {
		t.Errorf("Expected command error, got %v", err)
	}
}

func TestRun_DryRun(t *testing.T) {
	err := NewDryRun().Run(context.Background(), filepath.Join(t.TempDir(), "missing"))
	if err != nil {
		t.Errorf("Dry run must not execute, got %v", err)
	}
}
