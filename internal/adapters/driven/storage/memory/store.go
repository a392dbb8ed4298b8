// Package memory provides in-memory driven adapters for tests and
// throwaway sessions.
package memory

import (
	"sync"

	"github.com/custodia-labs/prodsearch/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.KeyValueStore = (*Store)(nil)

// Store is an in-memory implementation of driven.KeyValueStore.
// Values live as long as the process.
type Store struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewStore creates a new in-memory key-value store.
func NewStore() *Store {
	return &Store{
		values: make(map[string]string),
	}
}

// Get retrieves the value stored under key.
func (s *Store) Get(key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[key], nil
}

// Set stores a value.
func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

// Delete removes a key.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

// Path returns a marker for the in-memory location.
func (s *Store) Path() string {
	return ":memory:"
}

// Len returns the number of stored keys.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}
