package utils

import (
	"reflect"
	"testing"
)

func TestSudoArgv(t *testing.T) {
	got := SudoArgv("/usr/local/bin/xrouter", []string{"setup", "route"})
	want := []string{"sudo", "/usr/local/bin/xrouter", "setup", "route"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestEnsureRoot_AlreadyRoot(t *testing.T) {
	origUID, origExec := geteuid, execFunc
	defer func() { geteuid, execFunc = origUID, origExec }()

	geteuid = func() int { return 0 }
	execFunc = func(string, []string, []string) error {
		t.Fatal("exec must not be called when already root")
		return nil
	}

	if err := EnsureRoot([]string{"setup"}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
}

func TestEnsureRoot_ExecsSudo(t *testing.T) {
	origUID, origExec := geteuid, execFunc
	defer func() { geteuid, execFunc = origUID, origExec }()

	var gotArgv []string
	geteuid = func() int { return 1000 }
	execFunc = func(_ string, argv []string, _ []string) error {
		gotArgv = argv
		return nil
	}

	err := EnsureRoot([]string{"reload", "route"})
	if err != nil {
		// No sudo on this host: nothing more to check.
		t.Skipf("sudo not available: %v", err)
	}
	if len(gotArgv) != 4 || gotArgv[0] != "sudo" || gotArgv[2] != "reload" || gotArgv[3] != "route" {
		t.Errorf("Unexpected argv: %v", gotArgv)
	}
}
