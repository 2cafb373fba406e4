package zones

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/StephenPCG/xrouter/src/internal/errors"
	"github.com/StephenPCG/xrouter/src/internal/log"
	"github.com/StephenPCG/xrouter/src/internal/utils"
)

const (
	// ManualPrefix marks operator-owned override files.
	ManualPrefix = "manual-"
	// FileExt is appended to the zone name to form its file name.
	FileExt = ".txt"
	// MaxLineLength bounds a zone file line; longer lines are dropped as malformed.
	MaxLineLength = 64 * 1024
)

// FileStore resolves zones to files below a root directory.
// It keeps no state besides the root; every call hits the filesystem.
type FileStore struct {
	root string
}

// NewFileStore creates a store reading zone files from root.
func NewFileStore(root string) *FileStore {
	return &FileStore{root: root}
}

// Root returns the zones directory.
func (s *FileStore) Root() string {
	return s.root
}

// Path returns the path of the default (non-manual) file for name.
func (s *FileStore) Path(name string) string {
	return filepath.Join(s.root, name+FileExt)
}

// Resolve returns the backing file of zone name, trying the manual override
// first. Names that cannot be a single file name never resolve.
func (s *FileStore) Resolve(name string) (string, bool) {
	if !validName(name) {
		return "", false
	}

	for _, candidate := range []string{
		filepath.Join(s.root, ManualPrefix+name+FileExt),
		filepath.Join(s.root, name+FileExt),
	} {
		if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
			return candidate, true
		}
	}
	return "", false
}

// Exists reports whether zone name has a backing file.
func (s *FileStore) Exists(name string) bool {
	_, ok := s.Resolve(name)
	return ok
}

// Entries calls fn for every canonical network in zone name, in file order.
// Each call re-reads the file.
func (s *FileStore) Entries(name string, fn func(string) error) error {
	path, ok := s.Resolve(name)
	if !ok {
		return errors.NewZoneError("zone not found: "+name, nil)
	}
	return ReadFile(path, fn)
}

// ReadFile iterates over the networks in a zone file. Malformed lines are
// skipped; their count is only visible in verbose mode.
func ReadFile(path string, fn func(string) error) error {
	file, err := os.Open(path)
	if err != nil {
		return errors.NewZoneError("failed to read zone file "+path, err)
	}
	defer utils.CloseOrWarn(file)

	reader := bufio.NewReaderSize(file, MaxLineLength)
	var readErr error
	tooLong := 0
	next := func() (string, bool) {
		for {
			line, isPrefix, err := reader.ReadLine()
			if err != nil {
				if err != io.EOF {
					readErr = err
				}
				return "", false
			}
			if !isPrefix {
				return string(line), true
			}
			for isPrefix && err == nil {
				_, isPrefix, err = reader.ReadLine()
			}
			if err != nil && err != io.EOF {
				readErr = err
				return "", false
			}
			tooLong++
			if err == io.EOF {
				return "", false
			}
		}
	}

	dropped, err := filterLines(next, fn)
	if err != nil {
		return err
	}
	if readErr != nil {
		return errors.NewZoneError("failed to read zone file "+path, readErr)
	}
	dropped += tooLong
	if dropped > 0 {
		log.Debugf("Zone file %s: %d malformed lines ignored", path, dropped)
	}
	return nil
}

func validName(name string) bool {
	return name != "" && name != "." && name != ".." &&
		!strings.ContainsRune(name, filepath.Separator) &&
		!strings.ContainsRune(name, 0)
}
