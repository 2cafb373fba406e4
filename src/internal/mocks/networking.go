package mocks

import (
	"github.com/StephenPCG/xrouter/src/internal/networking"
)

// MockNetworkInspector is a mock implementation of the NetworkInspector interface.
//
// This allows testing status reporting without netlink access.
type MockNetworkInspector struct {
	// InspectFunc is called by Inspect if not nil
	InspectFunc func(tables []int) (*networking.Status, error)

	// Track calls for verification in tests
	InspectCalls int
}

// NewMockNetworkInspector creates a new mock inspector returning an empty status.
func NewMockNetworkInspector() *MockNetworkInspector {
	return &MockNetworkInspector{}
}

// Inspect returns the configured status.
func (m *MockNetworkInspector) Inspect(tables []int) (*networking.Status, error) {
	m.InspectCalls++
	if m.InspectFunc != nil {
		return m.InspectFunc(tables)
	}
	status := &networking.Status{}
	for _, table := range tables {
		status.Tables = append(status.Tables, networking.TableStatus{Table: table})
	}
	return status, nil
}
