package driving

import (
	"context"

	"github.com/custodia-labs/prodsearch/internal/core/domain"
)

// SearchService provides product search to external actors.
type SearchService interface {
	// Search runs one paginated keyword search.
	Search(ctx context.Context, query domain.SearchQuery) (domain.SearchResult, error)
}
