package mocks

import (
	"context"
)

// MockCommandRunner is a mock implementation of the CommandRunner interface.
type MockCommandRunner struct {
	// RunFunc is called by Run if not nil
	RunFunc func(ctx context.Context, name string, args ...string) error

	// Commands holds every command line run, name first
	Commands [][]string
	RunCalls int
}

// NewMockCommandRunner creates a new mock command runner that always succeeds.
func NewMockCommandRunner() *MockCommandRunner {
	return &MockCommandRunner{}
}

// Run records the command.
func (m *MockCommandRunner) Run(ctx context.Context, name string, args ...string) error {
	m.RunCalls++
	m.Commands = append(m.Commands, append([]string{name}, args...))
	if m.RunFunc != nil {
		return m.RunFunc(ctx, name, args...)
	}
	return nil
}
