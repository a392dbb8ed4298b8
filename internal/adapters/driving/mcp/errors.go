// Package mcp provides an MCP (Model Context Protocol) server adapter for prodsearch.
// It lets AI assistants search the product catalog with the installation's
// client identifier.
package mcp

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")
