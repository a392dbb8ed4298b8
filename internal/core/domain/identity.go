package domain

import "strings"

// IdentifierAlphabet is the character set client identifiers are drawn from.
// The leading "aba" duplicates 'a' and the set omits 'i' and 'I'; both quirks
// are part of the identifier format and must be kept.
const IdentifierAlphabet = "abacdefghjklmnopqrstuvwxyzABCDEFGHJKLMNOPQRSTUVWXYZ0123456789"

const (
	// DefaultIdentifierLength is the identifier length used when none is given.
	DefaultIdentifierLength = 20

	// IdentifierStorageKey is the key the identifier is persisted under.
	IdentifierStorageKey = "code"

	// IdentifierDigitCount is the size of the trailing digit range of the
	// alphabet. The first character is never taken from it.
	IdentifierDigitCount = 10
)

// ClientIdentifier tags every search request from one installation.
// It is sent as the X-Newaim-Api-Key header.
type ClientIdentifier string

// String returns the identifier as a plain string.
func (id ClientIdentifier) String() string {
	return string(id)
}

// IsZero reports whether the identifier is empty.
func (id ClientIdentifier) IsZero() bool {
	return id == ""
}

// IsValid reports whether the identifier has exactly length characters, all
// from IdentifierAlphabet, and does not start with a digit-range character.
func (id ClientIdentifier) IsValid(length int) bool {
	if length <= 0 || len(id) != length {
		return false
	}
	for i := 0; i < len(id); i++ {
		if strings.IndexByte(IdentifierAlphabet, id[i]) < 0 {
			return false
		}
	}
	return !IsDigitRangeIndex(strings.IndexByte(IdentifierAlphabet, id[0]))
}

// IsDigitRangeIndex reports whether an alphabet index falls in the final
// IdentifierDigitCount characters.
func IsDigitRangeIndex(index int) bool {
	return index >= len(IdentifierAlphabet)-IdentifierDigitCount
}
