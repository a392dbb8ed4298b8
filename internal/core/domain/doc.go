// Package domain defines the core types for prodsearch.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - ClientIdentifier: The anonymous per-installation request key
//   - SearchQuery: A keyword search with from/size paging
//   - SearchResult: One page of products and the total match count
//   - Pager: Caller-side page state that produces SearchQuery offsets
//   - TransportError: The failure kind for the product search exchange
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
