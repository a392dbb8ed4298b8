package mcp

import (
	"context"

	"github.com/custodia-labs/prodsearch/internal/core/domain"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	result domain.SearchResult
	err    error
	last   domain.SearchQuery
	calls  int
}

func (m *mockSearchService) Search(_ context.Context, query domain.SearchQuery) (domain.SearchResult, error) {
	m.calls++
	m.last = query
	return m.result, m.err
}

// mockIdentityService is a mock implementation of driving.IdentityService.
type mockIdentityService struct {
	id         domain.ClientIdentifier
	err        error
	lastLength int
}

func (m *mockIdentityService) GetOrCreate(length int) (domain.ClientIdentifier, error) {
	m.lastLength = length
	return m.id, m.err
}

func (m *mockIdentityService) Reset() error {
	return m.err
}
