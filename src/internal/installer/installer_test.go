package installer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/StephenPCG/xrouter/src/internal/errors"
)

func fileMode(t *testing.T, path string) os.FileMode {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Failed to stat %s: %v", path, err)
	}
	return info.Mode().Perm()
}

func TestNewRunID(t *testing.T) {
	ts := time.Date(2024, 5, 1, 10, 0, 7, 123456789, time.UTC)
	if got := NewRunID(ts); got != "20240501-100007-123456" {
		t.Errorf("Unexpected run id %s", got)
	}
}

func TestInstall_NewFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bin", "setup-route.sh")
	inst := NewWithRunID(filepath.Join(dir, "backups"), "run1")

	changed, err := inst.Install(path, []byte("echo Done!\n"), 0755, true)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !changed {
		t.Error("Expected new file to be reported as changed")
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read installed file: %v", err)
	}
	if string(content) != "echo Done!\n" {
		t.Errorf("Unexpected content %q", content)
	}
	if mode := fileMode(t, path); mode != 0755 {
		t.Errorf("Expected mode 755, got %o", mode)
	}
	if _, err := os.Stat(inst.BackupDir()); !os.IsNotExist(err) {
		t.Error("Expected no backup for a new file")
	}
}

func TestInstall_Unchanged(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dns.conf")
	if err := os.WriteFile(path, []byte("server=1.1.1.1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Chmod(path, 0644); err != nil {
		t.Fatal(err)
	}
	inst := NewWithRunID(filepath.Join(dir, "backups"), "run1")

	changed, err := inst.Install(path, []byte("server=1.1.1.1\n"), 0644, true)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if changed {
		t.Error("Expected identical file to be left alone")
	}
	if _, err := os.Stat(inst.BackupDir()); !os.IsNotExist(err) {
		t.Error("Expected no backup for an unchanged file")
	}
}

func TestInstall_ContentChangeBacksUp(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "etc", "dns.conf")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("old\n"), 0644); err != nil {
		t.Fatal(err)
	}
	inst := NewWithRunID(filepath.Join(dir, "backups"), "20240501-100000-000001")

	changed, err := inst.Install(path, []byte("new\n"), 0644, false)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !changed {
		t.Fatal("Expected change")
	}

	backup := filepath.Join(dir, "backups", "files", "20240501-100000-000001",
		strings.TrimPrefix(path, string(filepath.Separator)))
	if inst.BackupPath(path) != backup {
		t.Errorf("Expected backup path %s, got %s", backup, inst.BackupPath(path))
	}
	saved, err := os.ReadFile(backup)
	if err != nil {
		t.Fatalf("Expected backup file: %v", err)
	}
	if string(saved) != "old\n" {
		t.Errorf("Unexpected backup content %q", saved)
	}

	content, _ := os.ReadFile(path)
	if string(content) != "new\n" {
		t.Errorf("Unexpected content %q", content)
	}
}

func TestInstall_ModeOnlyChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "setup-route.sh")
	if err := os.WriteFile(path, []byte("#!/bin/bash\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Chmod(path, 0644); err != nil {
		t.Fatal(err)
	}
	inst := NewWithRunID(filepath.Join(dir, "backups"), "run1")

	changed, err := inst.Install(path, []byte("#!/bin/bash\n"), 0755, true)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !changed {
		t.Error("Expected mode change to count as change")
	}
	if mode := fileMode(t, path); mode != 0755 {
		t.Errorf("Expected mode 755, got %o", mode)
	}

	// Second run is a no-op.
	changed, err = inst.Install(path, []byte("#!/bin/bash\n"), 0755, true)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if changed {
		t.Error("Expected second install to be a no-op")
	}
}

func TestInstall_DirectoryTarget(t *testing.T) {
	dir := t.TempDir()
	inst := NewWithRunID(filepath.Join(dir, "backups"), "run1")

	_, err := inst.Install(dir, []byte("x"), 0644, false)
	if !errors.HasCode(err, errors.ErrCodeIO) {
		t.Errorf("Expected IO error, got %v", err)
	}
}

func TestDiff(t *testing.T) {
	tests := []struct {
		name        string
		current     []byte
		currentMode os.FileMode
		content     []byte
		mode        os.FileMode
		contains    []string
		empty       bool
	}{
		{
			name:        "Mode only",
			current:     []byte("a\n"),
			currentMode: 0644,
			content:     []byte("a\n"),
			mode:        0755,
			contains:    []string{"mode change 644 -> 755"},
		},
		{
			name:        "Content change",
			current:     []byte("a\nb\n"),
			currentMode: 0644,
			content:     []byte("a\nc\n"),
			mode:        0644,
			contains:    []string{"--- /x (current)", "+++ /x (new)", "-b", "+c"},
		},
		{
			name:     "New file",
			current:  nil,
			content:  []byte("line\n"),
			mode:     0644,
			contains: []string{"+line"},
		},
		{
			name:        "Binary",
			current:     []byte{0, 1, 2},
			currentMode: 0644,
			content:     []byte{0, 1, 3},
			mode:        0644,
			contains:    []string{"Binary files differ"},
		},
		{
			name:        "Identical",
			current:     []byte("same\n"),
			currentMode: 0644,
			content:     []byte("same\n"),
			mode:        0644,
			empty:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diff := Diff("/x", tt.current, tt.currentMode, tt.content, tt.mode)
			if tt.empty {
				if diff != "" {
					t.Errorf("Expected empty diff, got %q", diff)
				}
				return
			}
			for _, want := range tt.contains {
				if !strings.Contains(diff, want) {
					t.Errorf("Expected diff to contain %q, got:\n%s", want, diff)
				}
			}
		})
	}
}
