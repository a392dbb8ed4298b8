package domain

import "strings"

// MaxKeywordLength bounds the keyword a caller may send.
const MaxKeywordLength = 128

// SearchQuery is one keyword search request.
// It is built per request and never persisted.
type SearchQuery struct {
	// Keyword is the free-text filter.
	Keyword string `json:"keyword" validate:"max=128"`

	// From is the zero-based offset of the first item.
	From int `json:"from" validate:"min=0"`

	// Size is the number of items requested.
	Size int `json:"size" validate:"min=1"`
}

// Normalize returns a copy of the query with surrounding whitespace removed
// from the keyword.
func (q SearchQuery) Normalize() SearchQuery {
	q.Keyword = strings.TrimSpace(q.Keyword)
	return q
}

// Product is a catalog entry as returned by the search endpoint.
// Its fields are only consumed by presentation code.
type Product struct {
	ID          string `json:"id"`
	SKU         string `json:"sku"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// SearchResult is one page of matches.
type SearchResult struct {
	// Items are the products on this page.
	Items []Product `json:"items"`

	// Total is the number of matches across all pages.
	Total int64 `json:"total"`
}
