// internal/attr/memstore.go
package attr

import (
	"fmt"
	"sync"
)

// MemStore is an in-memory Store for deterministic tests and dry runs.
// Behaves like the sysfs store: attributes must exist to be written.
type MemStore struct {
	mu    sync.Mutex
	attrs map[string]string

	// Clamp, when set, rewrites a value before it is stored.
	// Models the device silently clamping out-of-range writes.
	Clamp func(name, value string) string
}

// NewMemStore seeds a store with the given attributes.
func NewMemStore(seed map[string]string) *MemStore {
	attrs := make(map[string]string, len(seed))
	for k, v := range seed {
		attrs[k] = v
	}
	return &MemStore{attrs: attrs}
}

func (s *MemStore) Get(name string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.attrs[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return v, nil
}

func (s *MemStore) Set(name, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.attrs[name]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	if s.Clamp != nil {
		value = s.Clamp(name, value)
	}

	s.attrs[name] = value
	return nil
}
