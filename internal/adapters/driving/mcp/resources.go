package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/prodsearch/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for prodsearch resources.
	uriScheme = "prodsearch://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for the client identifier.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "identity",
		Name:        "identity",
		Description: "Anonymous client identifier sent with every search",
		MIMEType:    "application/json",
	}, s.handleIdentityResource)

	// Template for the first page of a keyword search.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "search/{keyword}",
		Name:        "product-search",
		Description: "First page of products matching a keyword",
		MIMEType:    "application/json",
	}, s.handleSearchResource)
}

// handleIdentityResource returns the client identifier, creating it if needed.
func (s *Server) handleIdentityResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Identity == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	id, err := s.ports.Identity.GetOrCreate(s.ports.IdentityLength)
	if err != nil {
		return nil, fmt.Errorf("getting client identifier: %w", err)
	}

	data, err := json.MarshalIndent(struct {
		Identifier string `json:"identifier"`
		Length     int    `json:"length"`
	}{Identifier: id.String(), Length: len(id)}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling identity: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleSearchResource returns the first page of results for a keyword.
func (s *Server) handleSearchResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	keyword, ok := extractKeyword(req.Params.URI)
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	result, err := s.ports.Search.Search(ctx, domain.NewPager().Query(keyword))
	if err != nil {
		return nil, fmt.Errorf("searching products: %w", err)
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling products: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractKeyword extracts the keyword from a URI like prodsearch://search/{keyword}.
// The keyword is path-unescaped.
func extractKeyword(uri string) (string, bool) {
	const prefix = uriScheme + "search/"

	if !strings.HasPrefix(uri, prefix) {
		return "", false
	}

	keyword, err := url.PathUnescape(strings.TrimPrefix(uri, prefix))
	if err != nil {
		return "", false
	}
	return keyword, true
}
