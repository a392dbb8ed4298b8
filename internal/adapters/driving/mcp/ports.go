package mcp

import (
	"github.com/custodia-labs/prodsearch/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search runs product searches.
	Search driving.SearchService

	// Identity exposes the client identifier. Optional.
	Identity driving.IdentityService

	// IdentityLength is passed to Identity when an identifier must be created.
	IdentityLength int
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	return nil
}
