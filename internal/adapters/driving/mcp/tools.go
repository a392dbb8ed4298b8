package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/prodsearch/internal/core/domain"
)

// SearchInput is the input schema for the search_products tool.
type SearchInput struct {
	Keyword string `json:"keyword" jsonschema:"free-text filter matched against product titles and SKUs"`
	Page    int    `json:"page,omitempty" jsonschema:"1-based page number (default 1)"`
	Size    int    `json:"size,omitempty" jsonschema:"results per page: 10, 20 or 50 (default 10)"`
}

// SearchOutput is the output schema for the search_products tool.
type SearchOutput struct {
	Items     []ProductOutput `json:"items"`
	Total     int64           `json:"total"`
	Page      int             `json:"page"`
	Size      int             `json:"size"`
	PageCount int             `json:"page_count"`
}

// ProductOutput represents a single product.
type ProductOutput struct {
	ID          string `json:"id"`
	SKU         string `json:"sku"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_products",
		Description: "Search the product catalog by keyword, one page at a time",
	}, s.handleSearch)
}

// handleSearch handles the search_products tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	pager := domain.NewPager()
	if input.Size > 0 {
		if !domain.IsPageSizeOption(input.Size) {
			return nil, SearchOutput{}, fmt.Errorf("%w: size must be one of %v",
				domain.ErrInvalidInput, domain.PageSizeOptions)
		}
		pager.SetPageSize(input.Size)
	}
	if input.Page > 0 {
		pager.SetPage(input.Page)
	}

	result, err := s.ports.Search.Search(ctx, pager.Query(input.Keyword))
	if err != nil {
		if te, ok := domain.AsTransportError(err); ok && te.Message != "" {
			return nil, SearchOutput{}, fmt.Errorf("product search failed: %s", te.Message)
		}
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Items:     make([]ProductOutput, len(result.Items)),
		Total:     result.Total,
		Page:      pager.Page,
		Size:      pager.PageSize,
		PageCount: pager.PageCount(result.Total),
	}

	for i, p := range result.Items {
		output.Items[i] = ProductOutput{
			ID:          p.ID,
			SKU:         p.SKU,
			Title:       p.Title,
			Description: p.Description,
		}
	}

	return nil, output, nil
}
