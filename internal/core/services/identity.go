package services

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/custodia-labs/prodsearch/internal/core/domain"
	"github.com/custodia-labs/prodsearch/internal/core/ports/driven"
	"github.com/custodia-labs/prodsearch/internal/core/ports/driving"
	"github.com/custodia-labs/prodsearch/internal/logger"
)

// Ensure IdentityService implements the interface.
var _ driving.IdentityService = (*IdentityService)(nil)

// maxFirstCharAttempts bounds the redraws for the first identifier character.
// With 10 of 61 characters rejected, exhausting it is practically impossible.
const maxFirstCharAttempts = 64

// IdentityService produces and persists the anonymous client identifier.
type IdentityService struct {
	store  driven.KeyValueStore
	key    string
	intn   func(n int) int
	flight singleflight.Group
}

// NewIdentityService creates an identity service backed by store.
// The identifier is kept under domain.IdentifierStorageKey.
func NewIdentityService(store driven.KeyValueStore) *IdentityService {
	return &IdentityService{
		store: store,
		key:   domain.IdentifierStorageKey,
		intn:  rand.IntN,
	}
}

// SetRandomSource replaces the source of uniform indexes in [0, n).
func (s *IdentityService) SetRandomSource(intn func(n int) int) {
	if intn == nil {
		intn = rand.IntN
	}
	s.intn = intn
}

// GetOrCreate returns the stored identifier. When none is stored it generates
// one of the given length, persists it and returns it. A stored identifier is
// returned unchanged whatever length is requested.
func (s *IdentityService) GetOrCreate(length int) (domain.ClientIdentifier, error) {
	if s.store == nil {
		return "", domain.ErrStoreUnavailable
	}
	if length <= 0 {
		length = domain.DefaultIdentifierLength
	}

	stored, err := s.store.Get(s.key)
	if err != nil {
		return "", fmt.Errorf("reading client identifier: %w", err)
	}
	if stored != "" {
		return domain.ClientIdentifier(stored), nil
	}

	v, err, shared := s.flight.Do(s.key, func() (any, error) {
		// A flight that finished after our read may already have written one.
		current, err := s.store.Get(s.key)
		if err != nil {
			return domain.ClientIdentifier(""), fmt.Errorf("reading client identifier: %w", err)
		}
		if current != "" {
			return domain.ClientIdentifier(current), nil
		}

		id, err := generateIdentifier(length, s.intn)
		if err != nil {
			return domain.ClientIdentifier(""), err
		}
		if err := s.store.Set(s.key, id.String()); err != nil {
			return domain.ClientIdentifier(""), fmt.Errorf("storing client identifier: %w", err)
		}
		logger.Info("Created client identifier in %s", s.store.Path())
		return id, nil
	})
	if err != nil {
		return "", err
	}
	if shared {
		logger.Debug("Client identifier creation shared with a concurrent caller")
	}
	return v.(domain.ClientIdentifier), nil
}

// Reset removes the stored identifier so the next GetOrCreate generates a
// new one.
func (s *IdentityService) Reset() error {
	if s.store == nil {
		return domain.ErrStoreUnavailable
	}
	if err := s.store.Delete(s.key); err != nil {
		return fmt.Errorf("deleting client identifier: %w", err)
	}
	logger.Info("Client identifier removed from %s", s.store.Path())
	return nil
}

// generateIdentifier draws length characters uniformly from the alphabet.
// A first-position draw in the digit range is rejected and redrawn.
func generateIdentifier(length int, intn func(n int) int) (domain.ClientIdentifier, error) {
	if length <= 0 {
		return "", fmt.Errorf("%w: identifier length must be positive, got %d", domain.ErrInvalidInput, length)
	}

	alphabetLen := len(domain.IdentifierAlphabet)
	var b strings.Builder
	b.Grow(length)

	first := -1
	for attempt := 0; attempt < maxFirstCharAttempts; attempt++ {
		index := intn(alphabetLen)
		if !domain.IsDigitRangeIndex(index) {
			first = index
			break
		}
	}
	if first < 0 {
		return "", fmt.Errorf("%w: no non-digit first character after %d draws",
			domain.ErrIdentifierGeneration, maxFirstCharAttempts)
	}
	b.WriteByte(domain.IdentifierAlphabet[first])

	for i := 1; i < length; i++ {
		b.WriteByte(domain.IdentifierAlphabet[intn(alphabetLen)])
	}

	return domain.ClientIdentifier(b.String()), nil
}
