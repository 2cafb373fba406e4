package mocks

import (
	"os"
)

// InstallCall records one Install invocation.
type InstallCall struct {
	Path     string
	Content  []byte
	Mode     os.FileMode
	ShowDiff bool
}

// MockInstaller is a mock implementation of the Installer interface.
//
// By default it keeps installed files in memory and reports a change whenever
// content or mode differ from the previous install of the same path.
type MockInstaller struct {
	// InstallFunc is called by Install if not nil
	InstallFunc func(path string, content []byte, mode os.FileMode, showDiff bool) (bool, error)

	// Files holds the last content installed per path
	Files map[string][]byte
	// Modes holds the last mode installed per path
	Modes map[string]os.FileMode

	// Track calls for verification in tests
	Calls        []InstallCall
	InstallCalls int
}

// NewMockInstaller creates a new mock installer with default behavior.
func NewMockInstaller() *MockInstaller {
	return &MockInstaller{
		Files: make(map[string][]byte),
		Modes: make(map[string]os.FileMode),
	}
}

// Install records the call and stores the content.
func (m *MockInstaller) Install(path string, content []byte, mode os.FileMode, showDiff bool) (bool, error) {
	m.InstallCalls++
	m.Calls = append(m.Calls, InstallCall{Path: path, Content: append([]byte(nil), content...), Mode: mode, ShowDiff: showDiff})
	if m.InstallFunc != nil {
		return m.InstallFunc(path, content, mode, showDiff)
	}

	if m.Files == nil {
		m.Files = make(map[string][]byte)
		m.Modes = make(map[string]os.FileMode)
	}
	previous, exists := m.Files[path]
	if exists && string(previous) == string(content) && m.Modes[path] == mode {
		return false, nil
	}
	m.Files[path] = append([]byte(nil), content...)
	m.Modes[path] = mode
	return true, nil
}
