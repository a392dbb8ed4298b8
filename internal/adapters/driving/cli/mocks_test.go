package cli

import (
	"bytes"
	"context"
	"sync"

	"github.com/custodia-labs/prodsearch/internal/config"
	"github.com/custodia-labs/prodsearch/internal/core/domain"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	result  domain.SearchResult
	err     error
	queries []domain.SearchQuery
}

func (m *mockSearchService) Search(_ context.Context, query domain.SearchQuery) (domain.SearchResult, error) {
	m.queries = append(m.queries, query)
	return m.result, m.err
}

func (m *mockSearchService) last() domain.SearchQuery {
	if len(m.queries) == 0 {
		return domain.SearchQuery{}
	}
	return m.queries[len(m.queries)-1]
}

// mockIdentityService is a mock implementation of driving.IdentityService.
type mockIdentityService struct {
	id         domain.ClientIdentifier
	err        error
	resets     int
	lastLength int
}

func (m *mockIdentityService) GetOrCreate(length int) (domain.ClientIdentifier, error) {
	m.lastLength = length
	return m.id, m.err
}

func (m *mockIdentityService) Reset() error {
	if m.err != nil {
		return m.err
	}
	m.resets++
	m.id = ""
	return nil
}

// mockWatcher records Watch calls.
type mockWatcher struct {
	mu      sync.Mutex
	started bool
	err     error
}

func (w *mockWatcher) Watch(ctx context.Context, onChange func()) error {
	w.mu.Lock()
	w.started = true
	w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	onChange()
	<-ctx.Done()
	return nil
}

func (w *mockWatcher) isStarted() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.started
}

func sampleResult() domain.SearchResult {
	return domain.SearchResult{
		Items: []domain.Product{
			{ID: "1", SKU: "SKU-001", Title: "Red Chair", Description: "Solid oak\nchair"},
			{ID: "2", SKU: "SKU-002", Title: "Red Table", Description: "Pine table"},
		},
		Total: 42,
	}
}

// setupTestServices injects mocks and returns them with a cleanup function.
func setupTestServices() (*mockSearchService, *mockIdentityService, func()) {
	cfg := config.Default()
	cfg.BaseURL = "https://api.example.com"

	search := &mockSearchService{result: sampleResult()}
	identity := &mockIdentityService{id: "abcdefghjkABCDEFGH12"}

	SetServices(&Services{
		Config:   cfg,
		Search:   search,
		Identity: identity,
	})

	return search, identity, func() {
		SetServices(nil)
	}
}

// executeCommand runs rootCmd with args and returns its output.
func executeCommand(args ...string) (stdout, stderr string, err error) {
	cfgFile = ""
	envFile = ""
	searchPage = 1
	searchSize = domain.DefaultPageSize
	searchJSON = false
	searchFull = false

	outBuf := new(bytes.Buffer)
	errBuf := new(bytes.Buffer)
	rootCmd.SetOut(outBuf)
	rootCmd.SetErr(errBuf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err = rootCmd.Execute()
	return outBuf.String(), errBuf.String(), err
}
