package driving

import "github.com/custodia-labs/prodsearch/internal/core/domain"

// IdentityService manages the anonymous client identifier.
type IdentityService interface {
	// GetOrCreate returns the stored identifier, generating and persisting
	// one of the given length if none exists. length <= 0 selects
	// domain.DefaultIdentifierLength.
	GetOrCreate(length int) (domain.ClientIdentifier, error)

	// Reset forgets the stored identifier.
	Reset() error
}
