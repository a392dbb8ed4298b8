package services

import (
	"context"
	"errors"
	"sync"

	"github.com/custodia-labs/prodsearch/internal/core/domain"
)

// countingStore implements driven.KeyValueStore and records calls.
type countingStore struct {
	mu     sync.Mutex
	values map[string]string
	gets   int
	sets   int
	getErr error
	setErr error
	delErr error
}

func newCountingStore() *countingStore {
	return &countingStore{values: make(map[string]string)}
}

func (s *countingStore) Get(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gets++
	if s.getErr != nil {
		return "", s.getErr
	}
	return s.values[key], nil
}

func (s *countingStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sets++
	if s.setErr != nil {
		return s.setErr
	}
	s.values[key] = value
	return nil
}

func (s *countingStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.delErr != nil {
		return s.delErr
	}
	delete(s.values, key)
	return nil
}

func (s *countingStore) Path() string {
	return "counting"
}

func (s *countingStore) counts() (gets, sets int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gets, s.sets
}

// mockCatalog implements driven.ProductCatalog for testing.
type mockCatalog struct {
	mu      sync.Mutex
	result  domain.SearchResult
	err     error
	calls   int
	apiKeys []domain.ClientIdentifier
	queries []domain.SearchQuery
}

func (m *mockCatalog) Search(
	_ context.Context, apiKey domain.ClientIdentifier, query domain.SearchQuery,
) (domain.SearchResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.apiKeys = append(m.apiKeys, apiKey)
	m.queries = append(m.queries, query)
	return m.result, m.err
}

// mockThrottle implements driven.Throttle for testing.
type mockThrottle struct {
	waits int
	err   error
}

func (m *mockThrottle) Wait(_ context.Context) error {
	m.waits++
	return m.err
}

// mockIdentity implements driving.IdentityService for testing.
type mockIdentity struct {
	id      domain.ClientIdentifier
	err     error
	lengths []int
}

func (m *mockIdentity) GetOrCreate(length int) (domain.ClientIdentifier, error) {
	m.lengths = append(m.lengths, length)
	return m.id, m.err
}

func (m *mockIdentity) Reset() error {
	return m.err
}

var errMockStore = errors.New("store broken")

// sequence returns an intn source that replays indexes, then repeats the last.
func sequence(indexes ...int) func(n int) int {
	var mu sync.Mutex
	i := 0
	return func(_ int) int {
		mu.Lock()
		defer mu.Unlock()
		v := indexes[i]
		if i < len(indexes)-1 {
			i++
		}
		return v
	}
}
