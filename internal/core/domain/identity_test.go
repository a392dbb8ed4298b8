package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentifierAlphabet(t *testing.T) {
	assert.Len(t, IdentifierAlphabet, 61)
	assert.Equal(t, "abac", IdentifierAlphabet[:4])
	assert.NotContains(t, IdentifierAlphabet, "i")
	assert.NotContains(t, IdentifierAlphabet, "I")
	assert.Equal(t, "0123456789", IdentifierAlphabet[len(IdentifierAlphabet)-IdentifierDigitCount:])
}

func TestIsDigitRangeIndex(t *testing.T) {
	assert.False(t, IsDigitRangeIndex(0))
	assert.False(t, IsDigitRangeIndex(50), "index 50 is 'Z'")
	assert.True(t, IsDigitRangeIndex(51))
	assert.True(t, IsDigitRangeIndex(60))
}

func TestClientIdentifier_IsValid(t *testing.T) {
	tests := []struct {
		name   string
		id     ClientIdentifier
		length int
		want   bool
	}{
		{"valid default length", "abcdefghjkABCDEFGH12", 20, true},
		{"valid single char", "Z", 1, true},
		{"wrong length", "abc", 4, false},
		{"digit first", "1bcdefghjkABCDEFGH12", 20, false},
		{"contains i", "abcdefghik", 10, false},
		{"contains I", "Iabcdefghk", 10, false},
		{"contains symbol", "abc-efghjk", 10, false},
		{"empty", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.id.IsValid(tt.length))
		})
	}
}

func TestClientIdentifier_IsZero(t *testing.T) {
	assert.True(t, ClientIdentifier("").IsZero())
	assert.False(t, ClientIdentifier("a").IsZero())
	assert.Equal(t, "abc", ClientIdentifier("abc").String())
}
