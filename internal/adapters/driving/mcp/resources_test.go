package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/prodsearch/internal/core/domain"
)

func TestExtractKeyword(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
		ok       bool
	}{
		{"plain keyword", "prodsearch://search/chair", "chair", true},
		{"escaped keyword", "prodsearch://search/red%20chair", "red chair", true},
		{"empty keyword", "prodsearch://search/", "", true},
		{"invalid prefix", "file://search/chair", "", false},
		{"bad escape", "prodsearch://search/%zz", "", false},
		{"empty URI", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			keyword, ok := extractKeyword(tt.uri)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, keyword)
		})
	}
}

func readRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{Params: &mcp.ReadResourceParams{URI: uri}}
}

func TestServer_handleIdentityResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns identifier", func(t *testing.T) {
		identity := &mockIdentityService{id: "abcdefghjkABCDEFGH12"}
		server, err := NewServer(&Ports{
			Search:         &mockSearchService{},
			Identity:       identity,
			IdentityLength: 20,
		})
		require.NoError(t, err)

		res, err := server.handleIdentityResource(ctx, readRequest("prodsearch://identity"))
		require.NoError(t, err)
		require.Len(t, res.Contents, 1)
		assert.Equal(t, "application/json", res.Contents[0].MIMEType)
		assert.Contains(t, res.Contents[0].Text, `"identifier": "abcdefghjkABCDEFGH12"`)
		assert.Contains(t, res.Contents[0].Text, `"length": 20`)
		assert.Equal(t, 20, identity.lastLength)
	})

	t.Run("not found without identity port", func(t *testing.T) {
		server, err := NewServer(&Ports{Search: &mockSearchService{}})
		require.NoError(t, err)

		_, err = server.handleIdentityResource(ctx, readRequest("prodsearch://identity"))
		assert.Error(t, err)
	})

	t.Run("propagates store errors", func(t *testing.T) {
		server, err := NewServer(&Ports{
			Search:   &mockSearchService{},
			Identity: &mockIdentityService{err: domain.ErrStoreUnavailable},
		})
		require.NoError(t, err)

		_, err = server.handleIdentityResource(ctx, readRequest("prodsearch://identity"))
		assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	})
}

func TestServer_handleSearchResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns first page", func(t *testing.T) {
		search := &mockSearchService{
			result: domain.SearchResult{
				Items: []domain.Product{{ID: "7", SKU: "S7", Title: "Lamp"}},
				Total: 1,
			},
		}
		server, err := NewServer(&Ports{Search: search})
		require.NoError(t, err)

		res, err := server.handleSearchResource(ctx, readRequest("prodsearch://search/desk%20lamp"))
		require.NoError(t, err)
		require.Len(t, res.Contents, 1)
		assert.Contains(t, res.Contents[0].Text, `"sku": "S7"`)
		assert.Contains(t, res.Contents[0].Text, `"total": 1`)
		assert.Equal(t, domain.SearchQuery{Keyword: "desk lamp", From: 0, Size: 10}, search.last)
	})

	t.Run("invalid URI", func(t *testing.T) {
		server, err := NewServer(&Ports{Search: &mockSearchService{}})
		require.NoError(t, err)

		_, err = server.handleSearchResource(ctx, readRequest("other://search/x"))
		assert.Error(t, err)
	})

	t.Run("search failure", func(t *testing.T) {
		server, err := NewServer(&Ports{Search: &mockSearchService{err: errors.New("boom")}})
		require.NoError(t, err)

		_, err = server.handleSearchResource(ctx, readRequest("prodsearch://search/x"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "boom")
	})
}
