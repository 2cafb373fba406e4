package installer

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	xerrors "github.com/StephenPCG/xrouter/src/internal/errors"
	"github.com/StephenPCG/xrouter/src/internal/log"
	"github.com/StephenPCG/xrouter/src/internal/utils"
)

const runIDLayout = "20060102-150405"

// Installer installs files with diff and backup. It is safe for sequential
// use only; the CLI never installs concurrently.
type Installer struct {
	backupRoot string
	runID      string
}

// New creates an installer backing up into <backupRoot>/files/<run id>,
// with the run id taken from the current time.
func New(backupRoot string) *Installer {
	return NewWithRunID(backupRoot, NewRunID(time.Now()))
}

// NewWithRunID creates an installer with a fixed run id.
func NewWithRunID(backupRoot, runID string) *Installer {
	return &Installer{backupRoot: backupRoot, runID: runID}
}

// NewRunID formats t as YYYYMMDD-HHMMSS-micro.
func NewRunID(t time.Time) string {
	return fmt.Sprintf("%s-%06d", t.Format(runIDLayout), t.Nanosecond()/1000)
}

// RunID returns the backup run id of this installer.
func (i *Installer) RunID() string {
	return i.runID
}

// BackupDir returns the directory backups of this run are written to.
func (i *Installer) BackupDir() string {
	return filepath.Join(i.backupRoot, "files", i.runID)
}

// BackupPath returns where the current version of path is backed up.
func (i *Installer) BackupPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return utils.RebasePath(i.BackupDir(), abs)
}

// Install writes content with the given permission bits to path unless the file
// already has exactly that content and mode. It reports whether the file was
// written.
func (i *Installer) Install(path string, content []byte, mode os.FileMode, showDiff bool) (bool, error) {
	current, currentMode, err := readCurrent(path)
	if err != nil {
		return false, xerrors.NewIOError("failed to read "+path, err)
	}

	if current != nil && bytes.Equal(current, content) && currentMode.Perm() == mode.Perm() {
		log.Infof("%s is up to date", path)
		return false, nil
	}

	if showDiff {
		if diff := Diff(path, current, currentMode, content, mode); diff != "" {
			log.Infof("%s", strings.TrimRight(diff, "\n"))
		}
	}

	if current != nil {
		if err := i.backup(path, current, currentMode); err != nil {
			return false, xerrors.NewIOError("failed to back up "+path, err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return false, xerrors.NewIOError("failed to create directory for "+path, err)
	}
	if err := os.WriteFile(path, content, mode.Perm()); err != nil {
		return false, xerrors.NewIOError("failed to write "+path, err)
	}
	// WriteFile only applies the mode on creation.
	if err := os.Chmod(path, mode.Perm()); err != nil {
		return false, xerrors.NewIOError("failed to chmod "+path, err)
	}

	log.Debugf("Installed %s (mode %o, %d bytes)", path, mode.Perm(), len(content))
	return true, nil
}

func (i *Installer) backup(path string, current []byte, mode os.FileMode) error {
	target := i.BackupPath(path)
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(target, current, mode.Perm()); err != nil {
		return err
	}
	log.Debugf("Backed up %s to %s", path, target)
	return nil
}

// readCurrent returns the file content and mode, or a nil content when the
// file does not exist.
func readCurrent(path string) ([]byte, os.FileMode, error) {
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, err
	}
	if !info.Mode().IsRegular() {
		return nil, 0, fmt.Errorf("%s is not a regular file", path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, err
	}
	if content == nil {
		content = []byte{}
	}
	return content, info.Mode(), nil
}
