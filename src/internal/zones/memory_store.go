package zones

import (
	"sync"

	"github.com/StephenPCG/xrouter/src/internal/errors"
)

// MemoryStore is an in-memory zone store (useful for tests or embedding).
// Its lines go through the same filtering as zone files.
type MemoryStore struct {
	mu    sync.Mutex
	zones map[string][]string
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{zones: make(map[string][]string)}
}

// Set replaces the raw lines of zone name.
func (s *MemoryStore) Set(name string, lines ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.zones[name] = append([]string(nil), lines...)
}

func (s *MemoryStore) Exists(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.zones[name]
	return ok
}

func (s *MemoryStore) Entries(name string, fn func(string) error) error {
	s.mu.Lock()
	lines, ok := s.zones[name]
	lines = append([]string(nil), lines...)
	s.mu.Unlock()

	if !ok {
		return errors.NewZoneError("zone not found: "+name, nil)
	}

	i := 0
	next := func() (string, bool) {
		if i >= len(lines) {
			return "", false
		}
		i++
		return lines[i-1], true
	}
	_, err := filterLines(next, fn)
	return err
}
