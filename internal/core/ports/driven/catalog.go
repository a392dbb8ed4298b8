package driven

import (
	"context"

	"github.com/custodia-labs/prodsearch/internal/core/domain"
)

// ProductCatalog queries the remote product search endpoint.
type ProductCatalog interface {
	// Search issues one request tagged with apiKey.
	// Failures are returned as *domain.TransportError.
	Search(ctx context.Context, apiKey domain.ClientIdentifier, query domain.SearchQuery) (domain.SearchResult, error)
}

// Throttle paces outgoing requests.
type Throttle interface {
	// Wait blocks until a request may be sent or ctx is done.
	Wait(ctx context.Context) error
}
